package unbounded

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/gliderlabs/ssh"
	log "github.com/sirupsen/logrus"
	gossh "golang.org/x/crypto/ssh"
)

const sessionFingerprint = "unbounded-fingerprint"

const hostKeyFile = "./host_key"

// Intro is shown before a game starts
const Intro = "UNBOUNDED\r\n\r\n" +
	"  n<seed>d  new dungeon world\r\n" +
	"  n<seed>o  new outside world\r\n" +
	"  l         load saved game\r\n" +
	"  q         quit\r\n\r\n" +
	"In game: wasd move, n interact, m attack, l lamps, :q save and quit\r\n"

// saveFileFor gives every SSH user their own save
func saveFileFor(cfg Config, user string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, user)
	return fmt.Sprintf("%s.%s", cfg.SaveFile, clean)
}

func handleConnection(cfg Config, s ssh.Session) {
	fingerprint, _ := s.Context().Value(sessionFingerprint).(string)
	logger := log.WithFields(log.Fields{"user": s.User(), "remote": s.RemoteAddr(), "key": fingerprint})

	if len(s.Command()) > 0 {
		s.Write([]byte("Commands are not supported.\n"))
		s.Close()
		return
	}

	logger.Infof("Logged in at %s", time.Now().UTC().Format(time.RFC3339))

	cfg.SaveFile = saveFileFor(cfg, s.User())
	screen := NewSSHScreen(s)
	io.WriteString(s, Intro)

	game, err := Play(cfg, NewKeyboardInput(s.Context(), s), screen)
	if err != nil {
		logger.WithError(err).Warn("Game ended with an error")
	} else if game != nil {
		logger.WithField("status", game.Status()).Info("Game finished")
	}

	screen.Reset()
	if game != nil {
		fmt.Fprintf(s, "Game %s.\r\n", game.Status())
	}
	s.Close()
	logger.Info("Disconnected")
}

// makeKeyFiles makes sure there's a host key to serve with, creating one the
// first time
func makeKeyFiles() (string, error) {
	if _, err := os.Stat(hostKeyFile); err == nil {
		return hostKeyFile, nil
	}

	log.Printf("Generating host key %s", hostKeyFile)
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return "", err
	}

	file, err := os.OpenFile(hostKeyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return "", err
	}
	defer file.Close()

	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	if err := pem.Encode(file, block); err != nil {
		return "", err
	}

	return hostKeyFile, nil
}

// ServeSSH runs a game per SSH session until the listener fails
func ServeSSH(cfg Config) error {
	privateKey, err := makeKeyFiles()
	if err != nil {
		return fmt.Errorf("host key: %w", err)
	}

	publicKeyOption := ssh.PublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
		ctx.SetValue(sessionFingerprint, gossh.FingerprintSHA256(key))
		return true
	})

	log.Printf("Starting SSH server on %v", cfg.Listen)
	return ssh.ListenAndServe(cfg.Listen, func(s ssh.Session) {
		handleConnection(cfg, s)
	}, publicKeyOption, ssh.HostKeyFile(privateKey))
}
