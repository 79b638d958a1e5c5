package grammar

import (
	"strings"

	"github.com/valpere/jetrans/internal/prompt"
)

// Report is the grammar reply split into its four sections. Sections the
// model left out are empty.
type Report struct {
	Result      string
	Suggestion  string
	Explanation string
	Correct     string
}

// Parse splits response on header lines. Text before the first header is
// dropped; a repeated header keeps its last occurrence.
func Parse(response string) Report {
	var r Report
	var current *string
	var buf []string

	flush := func() {
		if current != nil {
			*current = strings.TrimSpace(strings.Join(buf, "\n"))
		}
		buf = buf[:0]
	}

	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		if target := r.field(trimmed); target != nil {
			flush()
			current = target
			continue
		}
		if current != nil {
			buf = append(buf, line)
		}
	}
	flush()
	return r
}

func (r *Report) field(header string) *string {
	switch header {
	case prompt.HeaderResult:
		return &r.Result
	case prompt.HeaderSuggestion:
		return &r.Suggestion
	case prompt.HeaderExplanation:
		return &r.Explanation
	case prompt.HeaderCorrect:
		return &r.Correct
	}
	return nil
}

// Empty reports whether no section was found.
func (r Report) Empty() bool {
	return r == Report{}
}
