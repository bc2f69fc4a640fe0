// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: glyph/classify.go
// Summary: Codepoint-range classification for grapheme clusters.

package glyph

// Class describes how a grapheme cluster behaves on the cell grid.
type Class struct {
	// EmojiOrSpecial marks clusters that need the symbol font and the
	// reduced render size.
	EmojiOrSpecial bool
	// Wide marks clusters that occupy two terminal columns.
	Wide bool
}

type codeRange struct {
	lo, hi         rune
	emojiOrSpecial bool
}

// Ranges are evaluated in order on the first codepoint of the cluster.
// Every listed range implies Wide; the emoji/symbol ranges additionally
// imply EmojiOrSpecial. Anything outside the table is narrow text.
var classRanges = []codeRange{
	{0x2600, 0x26FF, true},    // Miscellaneous Symbols
	{0x2700, 0x27BF, true},    // Dingbats
	{0x1F1E0, 0x1F1FF, true},  // Regional indicators (flag pairs)
	{0x1F300, 0x1F9FF, true},  // Misc Symbols and Pictographs, Emoticons, Supplemental
	{0x1FA00, 0x1FAFF, true},  // Symbols and Pictographs Extended-A
	{0x1100, 0x115F, false},   // Hangul Jamo
	{0x2E80, 0x9FFF, false},   // CJK Radicals through Unified Ideographs
	{0xAC00, 0xD7A3, false},   // Hangul Syllables
	{0xF900, 0xFAFF, false},   // CJK Compatibility Ideographs
	{0xFE10, 0xFE1F, false},   // Vertical Forms
	{0xFF00, 0xFFEF, false},   // Halfwidth and Fullwidth Forms
}

// Classify reports emoji/symbol membership and display width for a single
// grapheme cluster. The decision is made on the cluster's first codepoint.
// It is a pure function: empty or invalid input yields the zero Class.
func Classify(cluster string) Class {
	if cluster == "" {
		return Class{}
	}
	var first rune
	for _, r := range cluster {
		first = r
		break
	}
	for _, cr := range classRanges {
		if first >= cr.lo && first <= cr.hi {
			return Class{EmojiOrSpecial: cr.emojiOrSpecial, Wide: true}
		}
	}
	return Class{}
}

// IsWide is a convenience wrapper over Classify.
func IsWide(cluster string) bool {
	return Classify(cluster).Wide
}
