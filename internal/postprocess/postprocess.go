// Package postprocess strips common LLM artifacts from translation output.
//
// Only translations go through Clean. Grammar-check replies are kept raw
// because the correction extractor depends on their section layout.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean removes, in order, reasoning blocks, echoed preambles such as
// "Translation:" or "翻訳:", and a pair of wrapping quotes or brackets.
func Clean(text string) string {
	return CleanFor(text, "")
}

// CleanFor is Clean for a translation of source. Wrapping quotes are kept
// when source itself is quoted, since the translation then carries them on
// purpose.
func CleanFor(text, source string) string {
	text = removeThinkingBlocks(text)
	text = removePreamble(text)
	if _, quoted := wrapper(strings.TrimSpace(source)); !quoted {
		text = unwrap(text)
	}
	return strings.TrimSpace(text)
}

// RE2 has no backreferences, so each tag pair is spelled out.
var thinkingBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>`,
)

// An opening tag with no close means the model was cut off mid-thought.
var truncatedThinkingRe = regexp.MustCompile(`(?is)(?:<thinking>|<think>|<reasoning>).*$`)

func removeThinkingBlocks(text string) string {
	text = thinkingBlockRe.ReplaceAllString(text, "")
	text = truncatedThinkingRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// preambleRes are anchored at the start and require a colon (ASCII or
// fullwidth) so ordinary sentences are left alone.
var preambleRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:(?:certainly|sure|of course)[,.!]?\s*)?here(?:'s| is)(?: the)? (?:english |japanese )?(?:translation|translated text)\s*[:：]`),
	regexp.MustCompile(`(?i)^(?:the )?(?:english |japanese )?(?:translation|translated text)\s*[:：]`),
	regexp.MustCompile(`^(?:翻訳結果|翻訳|訳文|英訳|和訳)\s*[:：]`),
}

func removePreamble(text string) string {
	for _, re := range preambleRes {
		if loc := re.FindStringIndex(text); loc != nil {
			text = strings.TrimSpace(text[loc[1]:])
		}
	}
	return text
}

var wrappers = [][2]rune{
	{'"', '"'},
	{'\'', '\''},
	{'“', '”'},
	{'‘', '’'},
	{'「', '」'},
	{'『', '』'},
}

// unwrap drops one outer pair of matching quotes when they enclose the whole
// text and do not occur inside it.
func unwrap(text string) string {
	inner, ok := wrapper(text)
	if !ok {
		return text
	}
	return strings.TrimSpace(inner)
}

// wrapper reports whether text is enclosed in exactly one pair of wrappers
// and returns what is inside.
func wrapper(text string) (string, bool) {
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return "", false
	}
	for _, w := range wrappers {
		if runes[0] != w[0] || runes[n-1] != w[1] {
			continue
		}
		inner := string(runes[1 : n-1])
		if strings.ContainsRune(inner, w[0]) || strings.ContainsRune(inner, w[1]) {
			return "", false
		}
		return inner, true
	}
	return "", false
}
