// Package validator checks that a translation is written in the script of its
// target language.
package validator

import (
	"fmt"
	"strings"

	"github.com/valpere/jetrans/internal/script"
)

// minValidationLength is the rune count below which output is accepted
// unchecked. Short replies are often names or numbers.
const minValidationLength = 4

// Check returns an error when translated does not look like the target of dir:
// English output must contain no Japanese characters and Japanese output must
// contain some.
func Check(translated string, dir script.Direction) error {
	text := strings.TrimSpace(translated)
	if text == "" {
		return fmt.Errorf("translation is empty")
	}
	if len([]rune(text)) < minValidationLength {
		return nil
	}

	hasJapanese := script.ContainsJapanese(text)
	switch dir {
	case script.JapaneseToEnglish:
		if hasJapanese {
			return fmt.Errorf("expected %s but output contains Japanese", dir.Target())
		}
	case script.EnglishToJapanese:
		if !hasJapanese {
			return fmt.Errorf("expected %s but output has no Japanese characters", dir.Target())
		}
	}
	return nil
}
