package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single chat turn. Values are immutable once created.
type Message struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	IsFromUser bool      `json:"is_from_user"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewMessage stamps a message with a fresh ID.
func NewMessage(text string, fromUser bool, at time.Time) Message {
	return Message{
		ID:         uuid.NewString(),
		Text:       text,
		IsFromUser: fromUser,
		Timestamp:  at,
	}
}

// Speaker returns the prompt label used for generative chat turns.
func (m Message) Speaker() string {
	if m.IsFromUser {
		return "Human"
	}
	return "Assistant"
}

// WordCount pairs a word with its frequency in recent history.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}
