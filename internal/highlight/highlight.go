// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/highlight/highlight.go
// Summary: Tokenizes source text into styled spans for the cell grid.

package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"

	"github.com/framegrace/texelpad/grid"
)

const defaultStyleName = "catppuccin-mocha"

// Span is a run of text sharing one style.
type Span struct {
	Text  string
	Fg    tcell.Color
	Attrs tcell.AttrMask
}

// Line is one source line as styled spans, newline stripped.
type Line []Span

// DetectLanguage names the language of the file, or "" when unknown.
func DetectLanguage(filename string, content []byte) string {
	return enry.GetLanguage(filename, content)
}

// Source tokenizes source text into styled lines. The language is
// detected from the filename and content; unknown languages fall back to
// content analysis and finally to an unstyled lexer, so the result is
// always usable.
func Source(filename, source, styleName string) []Line {
	lexer := getLexer(DetectLanguage(filename, []byte(source)), source)
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	if styleName == "" || style == styles.Fallback {
		style = styles.Get(defaultStyleName)
	}

	tokens, err := chroma.Tokenise(lexer, nil, source)
	if err != nil {
		return plainLines(source)
	}

	baseColour := style.Get(chroma.Text).Colour

	lines := []Line{nil}
	cur := len(lines) - 1
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		fg, attrs := resolveTokenStyle(style.Get(tok.Type), baseColour)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
				cur++
			}
			if part == "" {
				continue
			}
			lines[cur] = append(lines[cur], Span{Text: part, Fg: fg, Attrs: attrs})
		}
	}
	// Chroma emits a trailing newline token for most inputs.
	if len(lines) > 1 && len(lines[len(lines)-1]) == 0 && !strings.HasSuffix(source, "\n\n") {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Draw writes lines into the grid starting at startRow, clipping to the
// grid bounds. Returns the first unused row.
func Draw(g *grid.Grid, lines []Line, startRow int) int {
	row := startRow
	for _, line := range lines {
		if row >= g.Rows() {
			break
		}
		col := 0
		for _, span := range line {
			if col >= g.Cols() {
				break
			}
			col = g.SetString(col, row, span.Text, span.Fg, tcell.ColorDefault, span.Attrs)
		}
		row++
	}
	return row
}

func resolveTokenStyle(entry chroma.StyleEntry, baseColour chroma.Colour) (tcell.Color, tcell.AttrMask) {
	var attrs tcell.AttrMask
	if entry.Bold == chroma.Yes {
		attrs |= tcell.AttrBold
	}
	if entry.Italic == chroma.Yes {
		attrs |= tcell.AttrItalic
	}
	if entry.Underline == chroma.Yes {
		attrs |= tcell.AttrUnderline
	}

	fg := tcell.ColorDefault
	if entry.Colour.IsSet() && entry.Colour != baseColour {
		fg = tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue()),
		)
	}
	return fg, attrs
}

func getLexer(language, text string) chroma.Lexer {
	if language != "" {
		if l := lexers.Get(language); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

func plainLines(source string) []Line {
	raw := strings.Split(strings.TrimSuffix(source, "\n"), "\n")
	lines := make([]Line, len(raw))
	for i, text := range raw {
		if text != "" {
			lines[i] = Line{{Text: text, Fg: tcell.ColorDefault}}
		}
	}
	return lines
}
