package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/valpere/jetrans/internal/chat"
	"github.com/valpere/jetrans/internal/models"
	"github.com/valpere/jetrans/internal/prompt"
)

type call struct {
	system string
	user   string
	model  string
}

type fakeCompleter struct {
	calls    []call
	reply    string
	err      error
	complete func(ctx context.Context) (string, error)
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt, userText, model string) (string, error) {
	f.calls = append(f.calls, call{system: systemPrompt, user: userText, model: model})
	if f.complete != nil {
		return f.complete(ctx)
	}
	return f.reply, f.err
}

func TestSession_New_Defaults(t *testing.T) {
	s := New(&fakeCompleter{})

	if s.Model() != models.Default() {
		t.Errorf("expected default model, got %+v", s.Model())
	}
	if s.Busy() {
		t.Error("expected idle session")
	}
	if len(s.Entries()) != 0 {
		t.Error("expected empty history")
	}
}

func TestSession_Translate_JapaneseToEnglish(t *testing.T) {
	fc := &fakeCompleter{reply: "Hello"}
	s := New(fc)

	rec, err := s.Translate(context.Background(), "こんにちは")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fc.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(fc.calls))
	}
	c := fc.calls[0]
	if c.model != "gpt-4o" {
		t.Errorf("expected default model 'gpt-4o', got %q", c.model)
	}
	if !strings.Contains(c.system, "日本語から英語") {
		t.Errorf("expected Japanese->English prompt, got %q", c.system)
	}
	if c.user != "こんにちは" {
		t.Errorf("expected user text 'こんにちは', got %q", c.user)
	}

	if rec.SourceLanguageLabel != "日本語" || rec.TargetLanguageLabel != "English" {
		t.Errorf("unexpected labels %q -> %q", rec.SourceLanguageLabel, rec.TargetLanguageLabel)
	}
	if rec.TranslatedText != "Hello" {
		t.Errorf("expected 'Hello', got %q", rec.TranslatedText)
	}
	if rec.ID == "" {
		t.Error("expected record id")
	}

	got := s.Translations()
	if len(got) != 1 || got[0] != rec {
		t.Errorf("expected history to hold the record, got %+v", got)
	}
}

func TestSession_Translate_EnglishToJapanese(t *testing.T) {
	fc := &fakeCompleter{reply: "「おはよう」"}
	s := New(fc, WithModel("gpt-4o-mini"))

	rec, err := s.Translate(context.Background(), "  Good morning \n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fc.calls[0].model != "gpt-4o-mini" {
		t.Errorf("expected 'gpt-4o-mini', got %q", fc.calls[0].model)
	}
	if !strings.Contains(fc.calls[0].system, "英語から日本語") {
		t.Errorf("expected English->Japanese prompt")
	}
	if fc.calls[0].user != "Good morning" {
		t.Errorf("expected trimmed input, got %q", fc.calls[0].user)
	}
	if rec.SourceLanguageLabel != "English" || rec.TargetLanguageLabel != "日本語" {
		t.Errorf("unexpected labels %q -> %q", rec.SourceLanguageLabel, rec.TargetLanguageLabel)
	}
	if rec.TranslatedText != "おはよう" {
		t.Errorf("expected cleaned translation, got %q", rec.TranslatedText)
	}
	if rec.RawTranslatedText != "「おはよう」" {
		t.Errorf("expected raw model output to be kept, got %q", rec.RawTranslatedText)
	}
}

func TestSession_Translate_KeepsQuotesOfQuotedInput(t *testing.T) {
	fc := &fakeCompleter{reply: "\"Good morning\""}
	s := New(fc)

	rec, err := s.Translate(context.Background(), "「おはよう」")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.TranslatedText != "\"Good morning\"" {
		t.Errorf("expected quotes to be kept, got %q", rec.TranslatedText)
	}
}

func TestSession_Translate_EmptyInput(t *testing.T) {
	fc := &fakeCompleter{}
	s := New(fc)

	_, err := s.Translate(context.Background(), "   ")
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if len(fc.calls) != 0 {
		t.Error("expected no call for empty input")
	}
}

func TestSession_Translate_HTTPFailureLeavesNoRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key"}}`))
	}))
	defer server.Close()

	s := New(chat.NewHTTPClient(chat.Config{APIKey: "YOUR_OPENAI_API_KEY", BaseURL: server.URL}, nil))

	_, err := s.Translate(context.Background(), "こんにちは")

	var httpErr *chat.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *chat.HTTPError, got %T: %v", err, err)
	}
	if httpErr.Status != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", httpErr.Status)
	}
	if len(s.Entries()) != 0 {
		t.Error("expected no history record after failure")
	}
	if s.Busy() {
		t.Error("expected control re-enabled after failure")
	}
}

func TestSession_CheckGrammar(t *testing.T) {
	fc := &fakeCompleter{reply: "【文法チェック結果】\n❌ 主語と動詞が一致していません\n\n【正しい英文】\nI am happy.\n"}
	s := New(fc)

	rec, err := s.CheckGrammar(context.Background(), "I are happy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fc.calls[0].system != prompt.GrammarCheck() {
		t.Error("expected grammar-check prompt")
	}
	if rec.CorrectedText != "I am happy." {
		t.Errorf("expected 'I am happy.', got %q", rec.CorrectedText)
	}
	if rec.CheckResultText != fc.reply {
		t.Error("expected raw reply kept in record")
	}
	if rec.OriginalText != "I are happy" {
		t.Errorf("unexpected original %q", rec.OriginalText)
	}
	if len(s.GrammarChecks()) != 1 {
		t.Errorf("expected 1 grammar record")
	}
}

func TestSession_CheckGrammar_FallsBackToInput(t *testing.T) {
	fc := &fakeCompleter{reply: "Looks correct."}
	s := New(fc)

	rec, err := s.CheckGrammar(context.Background(), "It is fine.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.CorrectedText != "It is fine." {
		t.Errorf("expected fallback to input, got %q", rec.CorrectedText)
	}
}

func TestSession_CheckGrammar_RefusesJapanese(t *testing.T) {
	fc := &fakeCompleter{reply: "unused"}
	s := New(fc)

	_, err := s.CheckGrammar(context.Background(), "私は happy です")
	if !errors.Is(err, ErrJapaneseInput) {
		t.Errorf("expected ErrJapaneseInput, got %v", err)
	}
	if len(fc.calls) != 0 {
		t.Error("expected no call for Japanese input")
	}
	if len(s.Entries()) != 0 {
		t.Error("expected no record")
	}
}

func TestSession_CheckGrammar_MalformedResponse(t *testing.T) {
	fc := &fakeCompleter{err: chat.ErrMalformedResponse}
	s := New(fc)

	_, err := s.CheckGrammar(context.Background(), "I are happy")
	if !errors.Is(err, chat.ErrMalformedResponse) {
		t.Errorf("expected ErrMalformedResponse, got %v", err)
	}
	if len(s.Entries()) != 0 {
		t.Error("expected no record")
	}
	if s.Busy() {
		t.Error("expected idle after failure")
	}
}

func TestSession_Busy(t *testing.T) {
	started := make(chan struct{})
	unblock := make(chan struct{})
	fc := &fakeCompleter{complete: func(ctx context.Context) (string, error) {
		close(started)
		<-unblock
		return "Hello", nil
	}}
	s := New(fc)

	done := make(chan error, 1)
	go func() {
		_, err := s.Translate(context.Background(), "こんにちは")
		done <- err
	}()

	<-started
	if !s.Busy() {
		t.Error("expected busy during call")
	}
	if _, err := s.CheckGrammar(context.Background(), "I are happy"); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}

	close(unblock)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Busy() {
		t.Error("expected idle after call")
	}
	if len(s.Entries()) != 1 {
		t.Errorf("expected 1 entry, got %d", len(s.Entries()))
	}
}

func TestSession_TimestampsNonDecreasing(t *testing.T) {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	stamps := []time.Time{base, base.Add(-time.Minute), base.Add(time.Second)}
	var i atomic.Int32
	clock := func() time.Time {
		return stamps[int(i.Add(1))-1]
	}

	s := New(&fakeCompleter{reply: "ok"}, WithClock(clock))
	for _, in := range []string{"one", "二", "three"} {
		if _, err := s.Translate(context.Background(), in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entries := s.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for j := 1; j < len(entries); j++ {
		if entries[j].Timestamp().Before(entries[j-1].Timestamp()) {
			t.Errorf("timestamp %d went backwards", j)
		}
	}
	if !entries[1].Timestamp().Equal(base) {
		t.Errorf("expected clamped timestamp %v, got %v", base, entries[1].Timestamp())
	}
	if entries[0].Translation.OriginalText != "one" || entries[2].Translation.OriginalText != "three" {
		t.Error("expected chronological order")
	}
}

func TestSession_SetModel(t *testing.T) {
	fc := &fakeCompleter{reply: "ok"}
	s := New(fc)

	if err := s.SetModel("gpt-3.5-turbo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SetModel("nope"); !errors.Is(err, models.ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
	if s.Model().ID != "gpt-3.5-turbo" {
		t.Errorf("expected model kept after failed change, got %q", s.Model().ID)
	}

	rec, _ := s.Translate(context.Background(), "hi")
	if fc.calls[0].model != "gpt-3.5-turbo" || rec.Model != "gpt-3.5-turbo" {
		t.Errorf("expected selected model used, got %q", fc.calls[0].model)
	}
}

func TestSession_Find(t *testing.T) {
	s := New(&fakeCompleter{reply: "【正しい英文】\nI am happy.\n"})

	tr, _ := s.Translate(context.Background(), "hello")
	gc, _ := s.CheckGrammar(context.Background(), "I are happy")

	e, err := s.Find(tr.ID[:8])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Translation == nil || e.Translation.ID != tr.ID {
		t.Errorf("expected translation entry, got %+v", e)
	}
	if v, ok := e.Field("raw"); !ok || v != tr.RawTranslatedText {
		t.Errorf("expected raw translation, got %q", v)
	}

	e, err = s.Find(strings.ToUpper(gc.ID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := e.Field(""); !ok || v != "I am happy." {
		t.Errorf("expected corrected text, got %q", v)
	}
	if v, ok := e.Field("result"); !ok || v != gc.CheckResultText {
		t.Errorf("expected result text, got %q", v)
	}
	if _, ok := e.Field("translated"); ok {
		t.Error("expected unknown field for grammar entry")
	}

	if _, err := s.Find("zzzz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Find(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty prefix, got %v", err)
	}
}

func TestSession_EntriesAreCopies(t *testing.T) {
	s := New(&fakeCompleter{reply: "Hello"})
	s.Translate(context.Background(), "こんにちは")

	e := s.Entries()[0]
	e.Translation.TranslatedText = "mutated"

	if s.Translations()[0].TranslatedText != "Hello" {
		t.Error("history must not be mutable through Entries")
	}
}
