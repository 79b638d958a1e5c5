// Package grammar scrapes the grammar checker's sectioned reply.
//
// The checker is asked to answer in a fixed template of bracketed headers,
// but the model does not always follow it. Nothing here validates the
// template; extraction is best effort with a fallback.
package grammar

import (
	"regexp"
	"strings"

	"github.com/valpere/jetrans/internal/prompt"
)

// sectionPattern captures the text after header up to a blank line, the next
// header, or the end of the string.
func sectionPattern(header string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)` + regexp.QuoteMeta(header) + `\s*\n(.+?)(?:\n\n|\n【|$)`)
}

var (
	correctRe    = sectionPattern(prompt.HeaderCorrect)
	suggestionRe = sectionPattern(prompt.HeaderSuggestion)
)

// Source names where ExtractCorrected found its answer.
type Source int

const (
	FromFallback Source = iota
	FromCorrect
	FromSuggestion
)

func (s Source) String() string {
	switch s {
	case FromCorrect:
		return "correct"
	case FromSuggestion:
		return "suggestion"
	default:
		return "fallback"
	}
}

// Extract returns the corrected sentence and the section it came from.
func Extract(response, fallback string) (string, Source) {
	if m := correctRe.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1]), FromCorrect
	}
	if m := suggestionRe.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1]), FromSuggestion
	}
	return fallback, FromFallback
}

// ExtractCorrected returns the final corrected sentence from response, or
// fallback unchanged when neither the correct-sentence nor the suggestion
// section is present.
func ExtractCorrected(response, fallback string) string {
	s, _ := Extract(response, fallback)
	return s
}
