// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: glyph/classify_test.go
// Summary: Exercises grapheme classification against the documented ranges.

package glyph

import "testing"

func TestClassifyEmojiRanges(t *testing.T) {
	emoji := []string{"🎉", "😀", "🧪", "🪐", "☀", "✂", "🇩"}
	for _, s := range emoji {
		c := Classify(s)
		if !c.EmojiOrSpecial {
			t.Errorf("Classify(%q).EmojiOrSpecial = false, want true", s)
		}
		if !c.Wide {
			t.Errorf("Classify(%q).Wide = false, want true", s)
		}
	}
}

func TestClassifyCJKWideButNotSpecial(t *testing.T) {
	cjk := []string{"漢", "中", "日", "한", "ア", "全", "！"}
	for _, s := range cjk {
		c := Classify(s)
		if !c.Wide {
			t.Errorf("Classify(%q).Wide = false, want true", s)
		}
		if c.EmojiOrSpecial {
			t.Errorf("Classify(%q).EmojiOrSpecial = true, want false", s)
		}
	}
}

func TestClassifyNarrow(t *testing.T) {
	narrow := []string{"a", "1", "Z", "~", " ", "é", "ß"}
	for _, s := range narrow {
		if c := Classify(s); c.Wide || c.EmojiOrSpecial {
			t.Errorf("Classify(%q) = %+v, want narrow non-special", s, c)
		}
	}
}

func TestClassifyEmptyAndCluster(t *testing.T) {
	if c := Classify(""); c.Wide || c.EmojiOrSpecial {
		t.Fatalf("Classify(\"\") = %+v, want zero", c)
	}
	// Multi-codepoint cluster: decision rides on the first codepoint.
	if c := Classify("é"); c.Wide {
		t.Fatalf("combining cluster classified wide: %+v", c)
	}
	if c := Classify("🇩🇪"); !c.Wide || !c.EmojiOrSpecial {
		t.Fatalf("flag pair not wide/special: %+v", c)
	}
}
