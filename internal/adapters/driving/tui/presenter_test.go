package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bookfetch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/bookfetch/internal/core/domain"
)

// answeringSend replies to every request the way a user would.
func answeringSend(sent *[]tea.Msg) func(tea.Msg) {
	return func(msg tea.Msg) {
		*sent = append(*sent, msg)
		switch m := msg.(type) {
		case messages.TextRequested:
			m.Reply <- messages.TextReply{Value: m.Default + "!", OK: true}
		case messages.SelectionRequested:
			m.Reply <- messages.SelectionReply{Index: len(m.Labels) - 1, OK: true}
		case messages.ConfirmRequested:
			m.Reply <- true
		}
	}
}

func TestPresenter_Prompts(t *testing.T) {
	var sent []tea.Msg
	p := NewPresenter(answeringSend(&sent), make(chan struct{}))
	ctx := context.Background()

	value, ok, err := p.RequestText(ctx, "Save to:", "/tmp/x")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/tmp/x!", value)

	index, ok, err := p.SelectFromList(ctx, "choose", []string{"a", "b"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, index)

	yes, err := p.Confirm(ctx, "again?")
	require.NoError(t, err)
	assert.True(t, yes)

	require.Len(t, sent, 3)
	assert.Equal(t, "Save to:", sent[0].(messages.TextRequested).Prompt)
	assert.Equal(t, []string{"a", "b"}, sent[1].(messages.SelectionRequested).Labels)
	assert.Equal(t, "again?", sent[2].(messages.ConfirmRequested).Prompt)
}

func TestPresenter_NonBlockingMessages(t *testing.T) {
	var sent []tea.Msg
	p := NewPresenter(answeringSend(&sent), make(chan struct{}))

	p.Notify("Searching", "Searching: Dune")
	p.Alert("Not found", "nothing", false)
	p.OnProgress(domain.ProgressEvent{Index: 1, Total: 5})

	assert.Equal(t, []tea.Msg{
		messages.Notified{Title: "Searching", Message: "Searching: Dune"},
		messages.AlertShown{Title: "Not found", Message: "nothing"},
		messages.ProgressUpdated{Event: domain.ProgressEvent{Index: 1, Total: 5}},
	}, sent)
}

func TestPresenter_ProgramExited(t *testing.T) {
	done := make(chan struct{})
	close(done)
	p := NewPresenter(func(tea.Msg) {}, done)
	ctx := context.Background()

	_, ok, err := p.RequestText(ctx, "Title?", "")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrProgramExited)
	assert.ErrorIs(t, err, domain.ErrCancelled)

	index, _, err := p.SelectFromList(ctx, "choose", []string{"a"})
	assert.Equal(t, -1, index)
	assert.ErrorIs(t, err, ErrProgramExited)

	_, err = p.Confirm(ctx, "?")
	assert.ErrorIs(t, err, ErrProgramExited)
}

func TestPresenter_ContextCancelled(t *testing.T) {
	p := NewPresenter(func(tea.Msg) {}, make(chan struct{}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := p.RequestText(ctx, "Title?", "")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = p.Confirm(ctx, "?")
	assert.ErrorIs(t, err, context.Canceled)
}
