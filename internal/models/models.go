// Package models lists the chat models a session may select.
package models

import (
	"errors"
	"fmt"
)

var ErrUnknownModel = errors.New("unknown model")

type Model struct {
	ID          string
	Name        string
	Description string
}

// catalogue order matters: the first entry is the default.
var catalogue = []Model{
	{ID: "gpt-4o", Name: "GPT-4o", Description: "高精度・多機能モデル"},
	{ID: "gpt-4o-mini", Name: "GPT-4o mini", Description: "高速・コスト効率モデル"},
	{ID: "gpt-4-turbo", Name: "GPT-4 Turbo", Description: "バランス型高性能モデル"},
	{ID: "gpt-3.5-turbo", Name: "GPT-3.5 Turbo", Description: "軽量・高速モデル"},
}

// All returns a copy of the catalogue in display order.
func All() []Model {
	out := make([]Model, len(catalogue))
	copy(out, catalogue)
	return out
}

func Default() Model {
	return catalogue[0]
}

func Lookup(id string) (Model, error) {
	for _, m := range catalogue {
		if m.ID == id {
			return m, nil
		}
	}
	return Model{}, fmt.Errorf("%w: %q", ErrUnknownModel, id)
}

func IDs() []string {
	ids := make([]string, len(catalogue))
	for i, m := range catalogue {
		ids[i] = m.ID
	}
	return ids
}
