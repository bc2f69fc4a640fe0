// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/ptyshell/ptyapp.go
// Summary: Minimal line-oriented terminal backed by a pty.

package main

import (
	"log"
	"os"
	"os/exec"
	"sync"
	"unicode/utf8"

	"github.com/creack/pty"
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpad/grid"
)

// ptyApp feeds pty output into a rune buffer the engine composites. It is
// a dumb terminal: newline, carriage return, tab and backspace are
// honored, escape sequences are skipped, everything else prints.
type ptyApp struct {
	command string
	refresh func()

	mu         sync.Mutex
	cmd        *exec.Cmd
	ptmx       *os.File
	cols, rows int
	screen     [][]rune
	curCol     int
	curRow     int
	pending    []byte
	inEscape   bool
	stop       chan struct{}
}

func newPtyApp(command string) *ptyApp {
	return &ptyApp{
		command: command,
		cols:    80,
		rows:    24,
		stop:    make(chan struct{}),
	}
}

func (a *ptyApp) Run() error {
	a.mu.Lock()
	cmd := exec.Command(a.command)
	cmd.Env = append(os.Environ(), "TERM=dumb")
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Cols: uint16(a.cols),
		Rows: uint16(a.rows),
	})
	if err != nil {
		a.mu.Unlock()
		return err
	}
	a.cmd = cmd
	a.ptmx = ptmx
	a.mu.Unlock()

	buf := make([]byte, 4096)
	for {
		select {
		case <-a.stop:
			return nil
		default:
		}
		n, err := ptmx.Read(buf)
		if n > 0 {
			a.feed(buf[:n])
			if a.refresh != nil {
				a.refresh()
			}
		}
		if err != nil {
			return nil
		}
	}
}

func (a *ptyApp) Stop() {
	close(a.stop)
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ptmx != nil {
		a.ptmx.Close()
	}
	if a.cmd != nil && a.cmd.Process != nil {
		a.cmd.Process.Kill()
	}
}

func (a *ptyApp) Resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cols, a.rows = cols, rows
	a.screen = nil
	a.curCol, a.curRow = 0, 0
	if a.ptmx != nil {
		if err := pty.Setsize(a.ptmx, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)}); err != nil {
			log.Printf("ptyshell: setsize: %v", err)
		}
	}
}

// HandleEvent translates terminal key events back into pty input bytes.
func (a *ptyApp) HandleEvent(ev tcell.Event) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}
	var data []byte
	switch key.Key() {
	case tcell.KeyRune:
		r := key.Rune()
		if key.Modifiers()&tcell.ModCtrl != 0 && r >= 'a' && r <= 'z' {
			data = []byte{byte(r - 'a' + 1)}
		} else {
			data = []byte(string(r))
		}
	case tcell.KeyEnter:
		data = []byte{'\r'}
	case tcell.KeyTab:
		data = []byte{'\t'}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		data = []byte{0x7f}
	case tcell.KeyEscape:
		data = []byte{0x1b}
	case tcell.KeyUp:
		data = []byte("\x1b[A")
	case tcell.KeyDown:
		data = []byte("\x1b[B")
	case tcell.KeyRight:
		data = []byte("\x1b[C")
	case tcell.KeyLeft:
		data = []byte("\x1b[D")
	case tcell.KeyDelete:
		data = []byte("\x1b[3~")
	}
	if len(data) > 0 {
		a.writeInput(data)
	}
}

func (a *ptyApp) writeInput(data []byte) {
	a.mu.Lock()
	ptmx := a.ptmx
	a.mu.Unlock()
	if ptmx != nil {
		if _, err := ptmx.Write(data); err != nil {
			log.Printf("ptyshell: write: %v", err)
		}
	}
}

func (a *ptyApp) Draw(g *grid.Grid) {
	a.mu.Lock()
	defer a.mu.Unlock()

	g.Clear(tcell.ColorDefault, tcell.ColorDefault)
	for row, line := range a.screen {
		if row >= g.Rows() {
			break
		}
		col := 0
		for _, r := range line {
			if col >= g.Cols() {
				break
			}
			col = g.SetString(col, row, string(r), tcell.ColorDefault, tcell.ColorDefault, 0)
		}
	}
	g.SetCursor(a.curCol, a.curRow)
	g.CursorVisible = true
}

// feed consumes raw pty bytes, carrying partial runes and escape state
// between reads.
func (a *ptyApp) feed(data []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending = append(a.pending, data...)
	for len(a.pending) > 0 {
		b := a.pending[0]

		if a.inEscape {
			a.pending = a.pending[1:]
			// CSI parameters continue; a final byte in @..~ ends the
			// sequence.
			if b >= 0x40 && b <= 0x7e && b != '[' {
				a.inEscape = false
			}
			continue
		}

		switch b {
		case 0x1b:
			a.pending = a.pending[1:]
			a.inEscape = true
			continue
		case '\n':
			a.pending = a.pending[1:]
			a.lineFeed()
			continue
		case '\r':
			a.pending = a.pending[1:]
			a.curCol = 0
			continue
		case '\t':
			a.pending = a.pending[1:]
			a.curCol = (a.curCol/8 + 1) * 8
			if a.curCol >= a.cols {
				a.lineFeed()
				a.curCol = 0
			}
			continue
		case '\b', 0x7f:
			a.pending = a.pending[1:]
			if a.curCol > 0 {
				a.curCol--
				a.setRune(a.curRow, a.curCol, ' ')
			}
			continue
		}

		if b < 0x20 {
			a.pending = a.pending[1:]
			continue
		}

		r, size := utf8.DecodeRune(a.pending)
		if r == utf8.RuneError && !utf8.FullRune(a.pending) {
			// Partial rune; wait for the next read.
			return
		}
		a.pending = a.pending[size:]
		a.printRune(r)
	}
}

func (a *ptyApp) printRune(r rune) {
	if a.curCol >= a.cols {
		a.lineFeed()
		a.curCol = 0
	}
	a.setRune(a.curRow, a.curCol, r)
	a.curCol++
}

func (a *ptyApp) setRune(row, col int, r rune) {
	for len(a.screen) <= row {
		a.screen = append(a.screen, nil)
	}
	line := a.screen[row]
	for len(line) <= col {
		line = append(line, ' ')
	}
	line[col] = r
	a.screen[row] = line
}

func (a *ptyApp) lineFeed() {
	a.curRow++
	if a.curRow >= a.rows {
		// Scroll one line.
		if len(a.screen) > 0 {
			a.screen = a.screen[1:]
		}
		a.curRow = a.rows - 1
	}
}
