/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/valpere/jetrans/internal/grammar"
	"github.com/valpere/jetrans/internal/session"
)

const timeLayout = "15:04:05"

func renderTranslation(w io.Writer, r session.TranslationRecord) {
	fmt.Fprintf(w, "[%s] %s  %s → %s  (%s)\n", shortID(r.ID), r.Timestamp.Format(timeLayout),
		r.SourceLanguageLabel, r.TargetLanguageLabel, r.Model)
	fmt.Fprintf(w, "  原文: %s\n", indent(r.OriginalText))
	fmt.Fprintf(w, "  翻訳: %s\n", indent(r.TranslatedText))
}

func renderGrammarCheck(w io.Writer, r session.GrammarCheckRecord) {
	fmt.Fprintf(w, "[%s] %s  文法チェック  (%s)\n", shortID(r.ID), r.Timestamp.Format(timeLayout), r.Model)
	fmt.Fprintf(w, "  原文: %s\n", indent(r.OriginalText))

	report := grammar.Parse(r.CheckResultText)
	if report.Empty() {
		fmt.Fprintf(w, "  結果: %s\n", indent(r.CheckResultText))
	} else {
		for _, s := range []struct{ label, text string }{
			{"結果", report.Result},
			{"修正提案", report.Suggestion},
			{"説明", report.Explanation},
		} {
			if s.text != "" {
				fmt.Fprintf(w, "  %s: %s\n", s.label, indent(s.text))
			}
		}
	}
	fmt.Fprintf(w, "  正しい英文: %s\n", indent(r.CorrectedText))
}

// renderHistory prints entries newest first.
func renderHistory(w io.Writer, entries []session.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "履歴はありません。")
		return
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.Translation != nil {
			renderTranslation(w, *e.Translation)
		} else {
			renderGrammarCheck(w, *e.GrammarCheck)
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n    ")
}
