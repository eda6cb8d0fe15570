package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jasonbot/unbounded"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh/terminal"
)

var (
	configFile = flag.String("config", "./config.json", "JSON config file")
	keys       = flag.String("s", "", "play this string of keys without a screen and print the final grid")
	listen     = flag.String("ssh", "", "serve games over SSH on this address")
)

func playTerminal(cfg unbounded.Config) error {
	fd := int(os.Stdin.Fd())
	if !terminal.IsTerminal(fd) {
		return fmt.Errorf("stdin is not a terminal; use -s to play headless")
	}

	width, height, err := terminal.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return err
	}

	oldState, err := terminal.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer terminal.Restore(fd, oldState)

	screen := unbounded.NewTerminalScreen(os.Stdout, width, height)
	defer screen.Reset()

	io.WriteString(os.Stdout, unbounded.Intro)

	game, err := unbounded.Play(cfg, unbounded.NewKeyboardInput(context.Background(), os.Stdin), screen)
	if game != nil {
		log.WithField("status", game.Status()).Info("Game finished")
	}
	return err
}

func main() {
	flag.Parse()

	executable, err := os.Executable()
	if err != nil {
		panic(err)
	}

	if _, err := os.Stat(*configFile); err != nil {
		executablePath, err := filepath.Abs(filepath.Dir(executable))
		if err != nil {
			panic(err)
		}

		log.Printf("Going to folder %v...", executablePath)

		os.Chdir(executablePath)
	}

	cfg, err := unbounded.LoadConfig(*configFile)
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

	switch {
	case *keys != "":
		tiles, err := unbounded.PlayString(cfg, *keys)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(unbounded.RenderTiles(tiles))
	case *listen != "":
		cfg.Listen = *listen
		log.Fatal(unbounded.ServeSSH(cfg))
	default:
		if err := playTerminal(cfg); err != nil {
			log.Fatal(err)
		}
	}
}
