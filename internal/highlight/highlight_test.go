package highlight

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpad/grid"
)

const goSample = `package main

func main() {
	println("hi")
}
`

func TestDetectLanguage(t *testing.T) {
	if lang := DetectLanguage("main.go", []byte(goSample)); lang != "Go" {
		t.Fatalf("lang = %q, want Go", lang)
	}
}

func TestSourceLineCount(t *testing.T) {
	lines := Source("main.go", goSample, "")
	want := strings.Count(goSample, "\n")
	if len(lines) != want {
		t.Fatalf("len = %d, want %d", len(lines), want)
	}
	if len(lines[1]) != 0 {
		t.Fatalf("blank line has spans: %+v", lines[1])
	}
}

func TestSourceTextPreserved(t *testing.T) {
	lines := Source("main.go", goSample, "")
	var got strings.Builder
	for _, line := range lines {
		for _, span := range line {
			got.WriteString(span.Text)
		}
		got.WriteByte('\n')
	}
	if got.String() != goSample {
		t.Fatalf("reassembled text differs:\n%q\nwant\n%q", got.String(), goSample)
	}
}

func TestSourceStylesKeyword(t *testing.T) {
	lines := Source("main.go", goSample, "")
	first := lines[0]
	if len(first) == 0 {
		t.Fatal("first line has no spans")
	}
	if first[0].Text != "package" {
		t.Fatalf("first span = %q, want package", first[0].Text)
	}
	if first[0].Fg == tcell.ColorDefault && first[0].Attrs == 0 {
		t.Fatal("keyword carries no styling")
	}
}

func TestDrawClipsToGrid(t *testing.T) {
	g := grid.New(20, 2)
	lines := Source("main.go", goSample, "")
	next := Draw(g, lines, 0)
	if next != 2 {
		t.Fatalf("next row = %d, want clip at 2", next)
	}
	if g.At(0, 0).Grapheme != "p" {
		t.Fatalf("cell (0,0) = %q", g.At(0, 0).Grapheme)
	}
}

func TestUnknownFileStillRenders(t *testing.T) {
	lines := Source("notes.xyzzy", "plain text here\n", "")
	if len(lines) != 1 {
		t.Fatalf("len = %d, want 1", len(lines))
	}
	var got strings.Builder
	for _, span := range lines[0] {
		got.WriteString(span.Text)
	}
	if got.String() != "plain text here" {
		t.Fatalf("got %q", got.String())
	}
}
