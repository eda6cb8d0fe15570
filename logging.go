package unbounded

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// InitLogging configures the global logger from LOG_LEVEL and LOG_FORMAT.
// Terminal play writes over stdout, so output goes to the configured log file
// or stderr. The returned closer releases the log file, if any.
func InitLogging(cfg Config) (io.Closer, error) {
	level, err := log.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	}

	if cfg.LogFile == "" {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil), nil
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	log.SetOutput(file)
	return file, nil
}
