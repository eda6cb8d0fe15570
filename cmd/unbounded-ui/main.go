package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/andlabs/ui"
	"github.com/jasonbot/unbounded"
	log "github.com/sirupsen/logrus"
)

var configFile = "./config.json"

func main() {
	log.Println("Starting")
	executable, err := os.Executable()
	if err != nil {
		panic(err)
	}

	if _, err := os.Stat(configFile); err != nil {
		executablePath, err := filepath.Abs(filepath.Dir(executable))
		if err != nil {
			panic(err)
		}

		log.Printf("Going to folder %v...", executablePath)

		os.Chdir(executablePath)
	}

	cfg, err := unbounded.LoadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}
	closer, err := unbounded.InitLogging(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	if err := unbounded.LoadResources(cfg); err != nil {
		log.Fatal(err)
	}

	serverErr := make(chan error, 1)
	go func() { serverErr <- unbounded.ServeSSH(cfg) }()

	uierr := ui.Main(func() {
		status := ui.NewLabel(fmt.Sprintf("Running SSH server on %v", cfg.Listen))
		box := ui.NewVerticalBox()
		box.SetPadded(true)
		box.Append(status, false)
		window := ui.NewWindow("Unbounded SSH Server", 400, 50, false)
		window.SetChild(box)
		window.OnClosing(func(*ui.Window) bool {
			ui.Quit()
			return true
		})
		window.Show()

		go func() {
			err := <-serverErr
			ui.QueueMain(func() {
				status.SetText(fmt.Sprintf("SSH server stopped: %v", err))
			})
		}()
	})
	if uierr != nil {
		panic(uierr)
	}
}
