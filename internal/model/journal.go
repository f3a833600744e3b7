package model

import (
	"errors"
	"strings"
	"time"
)

type JournalEntry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Prompt    string    `json:"prompt,omitempty"`
	Mood      string    `json:"mood,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (e JournalEntry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("model: journal entry id is required")
	}
	if strings.TrimSpace(e.Text) == "" {
		return errors.New("model: journal entry text is required")
	}
	if e.CreatedAt.IsZero() {
		return errors.New("model: journal entry created_at is required")
	}
	return nil
}
