// Package script classifies input text as Japanese or English by Unicode
// code-point ranges and maps the result to a translation direction.
package script

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// japanese holds the ranges that mark text as Japanese: hiragana, katakana,
// common CJK ideographs and fullwidth forms.
var japanese = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3040, Hi: 0x309F, Stride: 1},
		{Lo: 0x30A0, Hi: 0x30FF, Stride: 1},
		{Lo: 0x4E00, Hi: 0x9FAF, Stride: 1},
		{Lo: 0xFF00, Hi: 0xFFEF, Stride: 1},
	},
}

// ContainsJapanese reports whether any rune of text falls in a Japanese range.
func ContainsJapanese(text string) bool {
	for _, r := range text {
		if unicode.Is(japanese, r) {
			return true
		}
	}
	return false
}

// GrammarCheckAllowed reports whether text may be sent to the grammar checker.
// Only non-empty English input qualifies.
func GrammarCheckAllowed(text string) bool {
	text = strings.TrimSpace(text)
	return text != "" && !ContainsJapanese(text)
}

// Direction is the translation direction chosen for an input.
type Direction int

const (
	EnglishToJapanese Direction = iota
	JapaneseToEnglish
)

// Detect picks the direction for text.
func Detect(text string) Direction {
	if ContainsJapanese(text) {
		return JapaneseToEnglish
	}
	return EnglishToJapanese
}

func (d Direction) Source() language.Tag {
	if d == JapaneseToEnglish {
		return language.Japanese
	}
	return language.English
}

func (d Direction) Target() language.Tag {
	if d == JapaneseToEnglish {
		return language.English
	}
	return language.Japanese
}

// SourceLabel is the source language's name in that language ("日本語", "English").
func (d Direction) SourceLabel() string { return Label(d.Source()) }

// TargetLabel is the target language's name in that language.
func (d Direction) TargetLabel() string { return Label(d.Target()) }

func (d Direction) String() string {
	return d.Source().String() + "->" + d.Target().String()
}

// Label returns the self-name of tag, e.g. "日本語" for Japanese.
func Label(tag language.Tag) string {
	return display.Self.Name(tag)
}
