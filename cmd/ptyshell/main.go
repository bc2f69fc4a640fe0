// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/ptyshell/main.go
// Summary: Runs a command under a pty and composites its output to PNGs.

package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/framegrace/texelpad/config"
	"github.com/framegrace/texelpad/engine"
	"github.com/framegrace/texelpad/internal/pngdump"
)

func main() {
	out := flag.String("out", "frames", "output directory for PNG frames")
	width := flag.Int("width", 720, "surface width in pixels")
	height := flag.Int("height", 1280, "surface height in pixels")
	shell := flag.String("shell", defaultShell(), "command to run under the pty")
	flag.Parse()

	cfg := config.LoadDefault()

	surface, err := pngdump.New(*out, *width, *height)
	if err != nil {
		log.Fatalf("surface: %v", err)
	}

	app := newPtyApp(*shell)
	eng, err := engine.New(app, surface, engine.Options{Config: cfg})
	if err != nil {
		log.Fatalf("engine: %v", err)
	}
	app.refresh = eng.Refresh

	// Forward local stdin to the pty when run from a real terminal.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
		if err != nil {
			log.Printf("raw mode unavailable: %v", err)
		} else {
			defer term.Restore(int(os.Stdin.Fd()), oldState)
			go forwardStdin(app)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		eng.Stop()
	}()

	if err := eng.Run(); err != nil {
		log.Fatalf("run: %v", err)
	}
	log.Printf("wrote %d frames to %s", surface.Frames(), *out)
}

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

func forwardStdin(app *ptyApp) {
	buf := make([]byte, 1024)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			app.writeInput(buf[:n])
		}
		if err != nil {
			return
		}
	}
}
