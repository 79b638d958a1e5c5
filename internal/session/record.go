package session

import "time"

type TranslationRecord struct {
	ID                  string    `json:"id"`
	OriginalText        string    `json:"original_text"`
	TranslatedText      string    `json:"translated_text"`
	RawTranslatedText   string    `json:"raw_translated_text"`
	SourceLanguageLabel string    `json:"source_language_label"`
	TargetLanguageLabel string    `json:"target_language_label"`
	Model               string    `json:"model"`
	Timestamp           time.Time `json:"timestamp"`
}

type GrammarCheckRecord struct {
	ID              string    `json:"id"`
	OriginalText    string    `json:"original_text"`
	CheckResultText string    `json:"check_result_text"`
	CorrectedText   string    `json:"corrected_text"`
	Model           string    `json:"model"`
	Timestamp       time.Time `json:"timestamp"`
}

// Entry is one history item of either kind. Exactly one of the pointers is set.
type Entry struct {
	Translation  *TranslationRecord
	GrammarCheck *GrammarCheckRecord
}

func (e Entry) clone() Entry {
	if e.Translation != nil {
		t := *e.Translation
		return Entry{Translation: &t}
	}
	g := *e.GrammarCheck
	return Entry{GrammarCheck: &g}
}

func (e Entry) ID() string {
	if e.Translation != nil {
		return e.Translation.ID
	}
	return e.GrammarCheck.ID
}

func (e Entry) Timestamp() time.Time {
	if e.Translation != nil {
		return e.Translation.Timestamp
	}
	return e.GrammarCheck.Timestamp
}

// Field returns the named text field for copying. Translation fields are
// "original", "translated" and "raw"; grammar fields are "original", "result" and
// "corrected". An empty name selects the output field.
func (e Entry) Field(name string) (string, bool) {
	if t := e.Translation; t != nil {
		switch name {
		case "", "translated":
			return t.TranslatedText, true
		case "original":
			return t.OriginalText, true
		case "raw":
			return t.RawTranslatedText, true
		}
		return "", false
	}
	g := e.GrammarCheck
	switch name {
	case "", "corrected":
		return g.CorrectedText, true
	case "result":
		return g.CheckResultText, true
	case "original":
		return g.OriginalText, true
	}
	return "", false
}
