// Package session owns the state of one interactive translator session: the
// selected model and the in-memory history. History is append-only and
// chronological; newest-first ordering is left to the renderer.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/valpere/jetrans/internal/chat"
	"github.com/valpere/jetrans/internal/grammar"
	"github.com/valpere/jetrans/internal/models"
	"github.com/valpere/jetrans/internal/postprocess"
	"github.com/valpere/jetrans/internal/prompt"
	"github.com/valpere/jetrans/internal/script"
	"github.com/valpere/jetrans/internal/validator"
)

var (
	ErrEmptyInput    = errors.New("input is empty")
	ErrJapaneseInput = errors.New("grammar check accepts English input only")
	ErrBusy          = errors.New("another request is in progress")
	ErrNotFound      = errors.New("history entry not found")
	ErrAmbiguousID   = errors.New("history id prefix is ambiguous")
)

type Session struct {
	completer chat.Completer
	log       *zap.Logger
	now       func() time.Time

	inFlight atomic.Bool

	mu        sync.RWMutex
	model     models.Model
	entries   []Entry
	lastStamp time.Time
}

type Option func(*Session)

// WithModel selects the initial model. Unknown ids are ignored and the
// default is kept; use SetModel to get an error instead.
func WithModel(id string) Option {
	return func(s *Session) {
		if m, err := models.Lookup(id); err == nil {
			s.model = m
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

func New(completer chat.Completer, opts ...Option) *Session {
	s := &Session{
		completer: completer,
		log:       zap.NewNop(),
		now:       time.Now,
		model:     models.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Model() models.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

func (s *Session) SetModel(id string) error {
	m, err := models.Lookup(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.model = m
	s.mu.Unlock()
	s.log.Info("model changed", zap.String("model", m.ID))
	return nil
}

// Busy reports whether a call is in flight. While true, the triggering
// controls are disabled and further calls fail with ErrBusy.
func (s *Session) Busy() bool {
	return s.inFlight.Load()
}

func (s *Session) acquire() error {
	if !s.inFlight.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (s *Session) release() {
	s.inFlight.Store(false)
}

// Translate translates input in the direction picked by the script classifier
// and appends the result to the history. On failure nothing is recorded.
func (s *Session) Translate(ctx context.Context, input string) (TranslationRecord, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return TranslationRecord{}, ErrEmptyInput
	}
	if err := s.acquire(); err != nil {
		return TranslationRecord{}, err
	}
	defer s.release()

	dir := script.Detect(text)
	model := s.Model()

	s.log.Debug("translating", zap.Stringer("direction", dir), zap.String("model", model.ID))

	out, err := s.completer.Complete(ctx, prompt.Translation(dir), text, model.ID)
	if err != nil {
		s.log.Warn("translation failed", zap.Error(err))
		return TranslationRecord{}, fmt.Errorf("translation failed: %w", err)
	}

	translated := postprocess.CleanFor(out, text)
	if err := validator.Check(translated, dir); err != nil {
		s.log.Warn("suspicious translation", zap.Stringer("direction", dir), zap.Error(err))
	}

	rec := TranslationRecord{
		ID:                  uuid.New().String(),
		OriginalText:        text,
		TranslatedText:      translated,
		RawTranslatedText:   out,
		SourceLanguageLabel: dir.SourceLabel(),
		TargetLanguageLabel: dir.TargetLabel(),
		Model:               model.ID,
	}
	s.mu.Lock()
	rec.Timestamp = s.stampLocked()
	s.entries = append(s.entries, Entry{Translation: &rec})
	s.mu.Unlock()

	return rec, nil
}

// CheckGrammar sends English input to the grammar checker and records the
// reply together with the extracted corrected sentence. Japanese input is
// refused before any call is made.
func (s *Session) CheckGrammar(ctx context.Context, input string) (GrammarCheckRecord, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return GrammarCheckRecord{}, ErrEmptyInput
	}
	if script.ContainsJapanese(text) {
		return GrammarCheckRecord{}, ErrJapaneseInput
	}
	if err := s.acquire(); err != nil {
		return GrammarCheckRecord{}, err
	}
	defer s.release()

	model := s.Model()
	s.log.Debug("checking grammar", zap.String("model", model.ID))

	out, err := s.completer.Complete(ctx, prompt.GrammarCheck(), text, model.ID)
	if err != nil {
		s.log.Warn("grammar check failed", zap.Error(err))
		return GrammarCheckRecord{}, fmt.Errorf("grammar check failed: %w", err)
	}

	corrected, src := grammar.Extract(out, text)
	if src == grammar.FromFallback {
		s.log.Debug("grammar reply did not follow the template; using input")
	}

	rec := GrammarCheckRecord{
		ID:              uuid.New().String(),
		OriginalText:    text,
		CheckResultText: out,
		CorrectedText:   corrected,
		Model:           model.ID,
	}
	s.mu.Lock()
	rec.Timestamp = s.stampLocked()
	s.entries = append(s.entries, Entry{GrammarCheck: &rec})
	s.mu.Unlock()

	return rec, nil
}

// stampLocked returns the current time, never earlier than the previous
// record's timestamp.
func (s *Session) stampLocked() time.Time {
	t := s.now()
	if t.Before(s.lastStamp) {
		t = s.lastStamp
	}
	s.lastStamp = t
	return t
}

// Entries returns copies of all history items in insertion order.
func (s *Session) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.clone()
	}
	return out
}

func (s *Session) Translations() []TranslationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []TranslationRecord
	for _, e := range s.entries {
		if e.Translation != nil {
			out = append(out, *e.Translation)
		}
	}
	return out
}

func (s *Session) GrammarChecks() []GrammarCheckRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []GrammarCheckRecord
	for _, e := range s.entries {
		if e.GrammarCheck != nil {
			out = append(out, *e.GrammarCheck)
		}
	}
	return out
}

// Find returns the entry whose id starts with prefix.
func (s *Session) Find(prefix string) (Entry, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return Entry{}, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var found []Entry
	for _, e := range s.entries {
		if strings.HasPrefix(e.ID(), prefix) {
			found = append(found, e.clone())
		}
	}
	switch len(found) {
	case 0:
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		return found[0], nil
	default:
		return Entry{}, fmt.Errorf("%w: %s matches %d entries", ErrAmbiguousID, prefix, len(found))
	}
}
