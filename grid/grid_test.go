// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/grid_test.go
// Summary: Exercises grid invariants around wide cells and resizing.

package grid

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestSetWidePlacesContinuation(t *testing.T) {
	g := New(10, 2)
	g.Set(3, 0, Cell{Grapheme: "漢", Wide: true})

	if !g.At(3, 0).Wide {
		t.Fatal("wide cell not stored")
	}
	cont := g.At(4, 0)
	if !cont.Cont {
		t.Fatal("continuation placeholder missing at col+1")
	}
	if cont.Grapheme != "" {
		t.Fatalf("continuation carries a grapheme: %q", cont.Grapheme)
	}
}

func TestSetWideAtLastColumnDropped(t *testing.T) {
	g := New(4, 1)
	g.Set(3, 0, Cell{Grapheme: "漢", Wide: true})
	if g.At(3, 0).Grapheme != "" {
		t.Fatal("wide cell must not dangle at the last column")
	}
}

func TestOverwriteWideHalfClearsPair(t *testing.T) {
	g := New(10, 1)
	g.Set(2, 0, Cell{Grapheme: "漢", Wide: true})
	g.Set(3, 0, Cell{Grapheme: "x"})

	if g.At(2, 0).Grapheme != "" {
		t.Fatalf("stale wide half left behind: %q", g.At(2, 0).Grapheme)
	}
	if g.At(3, 0).Grapheme != "x" {
		t.Fatal("overwrite lost")
	}
}

func TestWideOverContinuationClearsOldHead(t *testing.T) {
	g := New(10, 1)
	g.Set(0, 0, Cell{Grapheme: "漢", Wide: true})
	g.Set(1, 0, Cell{Grapheme: "字", Wide: true})

	if got := g.At(0, 0); got.Wide || got.Grapheme != "" {
		t.Fatalf("old head at col 0 not blanked: %+v", got)
	}
	if got := g.At(1, 0); !got.Wide || got.Grapheme != "字" {
		t.Fatalf("new head wrong: %+v", got)
	}
	if !g.At(2, 0).Cont {
		t.Fatal("continuation missing at col 2")
	}
}

func TestWideOverHeadClearsOldContinuation(t *testing.T) {
	g := New(10, 1)
	g.Set(1, 0, Cell{Grapheme: "漢", Wide: true})
	g.Set(0, 0, Cell{Grapheme: "字", Wide: true})

	if got := g.At(2, 0); got.Cont {
		t.Fatalf("dangling continuation at col 2: %+v", got)
	}
	if got := g.At(0, 0); !got.Wide || got.Grapheme != "字" {
		t.Fatalf("new head wrong: %+v", got)
	}
	if !g.At(1, 0).Cont {
		t.Fatal("continuation missing at col 1")
	}
}

func TestSetStringAdvances(t *testing.T) {
	g := New(10, 1)
	end := g.SetString(0, 0, "a漢b", tcell.ColorWhite, tcell.ColorBlack, 0)
	if end != 4 {
		t.Fatalf("end col = %d, want 4", end)
	}
	if g.At(0, 0).Grapheme != "a" || g.At(1, 0).Grapheme != "漢" || g.At(3, 0).Grapheme != "b" {
		t.Fatalf("unexpected layout: %q %q %q", g.At(0, 0).Grapheme, g.At(1, 0).Grapheme, g.At(3, 0).Grapheme)
	}
	if !g.At(2, 0).Cont {
		t.Fatal("continuation missing after wide cluster")
	}
}

func TestSetStringClipsAtEdge(t *testing.T) {
	g := New(3, 1)
	g.SetString(0, 0, "abcdef", tcell.ColorWhite, tcell.ColorBlack, 0)
	if g.At(2, 0).Grapheme != "c" {
		t.Fatalf("last column = %q, want %q", g.At(2, 0).Grapheme, "c")
	}
}

func TestSetStringGraphemeCluster(t *testing.T) {
	g := New(5, 1)
	// é as e + combining acute: one cluster, one cell.
	end := g.SetString(0, 0, "éx", tcell.ColorWhite, tcell.ColorBlack, 0)
	if end != 2 {
		t.Fatalf("end col = %d, want 2", end)
	}
	if g.At(0, 0).Grapheme != "é" {
		t.Fatalf("cluster split: %q", g.At(0, 0).Grapheme)
	}
}

func TestResizeClipsAndPads(t *testing.T) {
	g := New(4, 2)
	g.SetString(0, 0, "abcd", tcell.ColorWhite, tcell.ColorBlack, 0)
	g.SetCursor(3, 1)

	small := g.Resize(2, 1)
	if small.Cols() != 2 || small.Rows() != 1 {
		t.Fatalf("size = %dx%d", small.Cols(), small.Rows())
	}
	if small.At(0, 0).Grapheme != "a" || small.At(1, 0).Grapheme != "b" {
		t.Fatal("overlap not copied")
	}
	if small.CursorCol != 1 || small.CursorRow != 0 {
		t.Fatalf("cursor not clamped: (%d,%d)", small.CursorCol, small.CursorRow)
	}

	big := small.Resize(4, 2)
	if big.At(3, 1).Grapheme != "" {
		t.Fatal("new cells must be blank")
	}
}

func TestResizeDropsClippedWide(t *testing.T) {
	g := New(4, 1)
	g.Set(2, 0, Cell{Grapheme: "漢", Wide: true})
	ng := g.Resize(3, 1)
	if ng.At(2, 0).Wide {
		t.Fatal("wide cell survived without its continuation column")
	}
}

func TestMinimumDimensions(t *testing.T) {
	g := New(0, -3)
	if g.Cols() != 1 || g.Rows() != 1 {
		t.Fatalf("size = %dx%d, want 1x1", g.Cols(), g.Rows())
	}
}
