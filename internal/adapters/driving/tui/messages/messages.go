// Package messages defines Bubbletea message types for the TUI.
// Prompt requests carry a reply channel: the session goroutine blocks on it
// while the model collects the answer.
package messages

import (
	"github.com/custodia-labs/bookfetch/internal/core/domain"
)

// TextReply answers a TextRequested prompt.
type TextReply struct {
	Value string
	OK    bool
}

// TextRequested asks the model to collect a line of text.
type TextRequested struct {
	Prompt  string
	Default string
	Reply   chan<- TextReply
}

// SelectionReply answers a SelectionRequested prompt.
type SelectionReply struct {
	Index int
	OK    bool
}

// SelectionRequested asks the model to let the user pick one label.
type SelectionRequested struct {
	Prompt string
	Labels []string
	Reply  chan<- SelectionReply
}

// ConfirmRequested asks a yes/no question.
type ConfirmRequested struct {
	Prompt string
	Reply  chan<- bool
}

// Notified carries a transient notice.
type Notified struct {
	Title   string
	Message string
}

// AlertShown carries a message that stays visible until the next prompt is answered.
type AlertShown struct {
	Title   string
	Message string
	IsError bool
}

// ProgressUpdated carries one scan progress event.
type ProgressUpdated struct {
	Event domain.ProgressEvent
}

// SessionFinished signals that the session goroutine returned.
type SessionFinished struct {
	Err error
}

// PromptKind identifies which prompt is currently active.
type PromptKind int

const (
	// PromptNone means the session is working and no input is expected.
	PromptNone PromptKind = iota
	// PromptText is a line of text input.
	PromptText
	// PromptSelect is a list selection.
	PromptSelect
	// PromptConfirm is a yes/no question.
	PromptConfirm
)

// String returns the string representation of the prompt kind.
func (k PromptKind) String() string {
	switch k {
	case PromptNone:
		return "none"
	case PromptText:
		return "text"
	case PromptSelect:
		return "select"
	case PromptConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}
