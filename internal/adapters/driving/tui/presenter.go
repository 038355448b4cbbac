package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/bookfetch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/bookfetch/internal/core/domain"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
)

// Ensure Presenter implements the driven ports.
var (
	_ driven.Presenter    = (*Presenter)(nil)
	_ driven.ProgressSink = (*Presenter)(nil)
)

// Presenter bridges the blocking session calls onto the program's message
// loop. Each prompt sends a request to the App and waits for its reply.
type Presenter struct {
	send func(tea.Msg)
	done <-chan struct{}
}

// NewPresenter creates a presenter that delivers messages through send,
// typically (*tea.Program).Send. done must be closed once the program stops.
func NewPresenter(send func(tea.Msg), done <-chan struct{}) *Presenter {
	return &Presenter{send: send, done: done}
}

// RequestText asks the App for a line of text.
func (p *Presenter) RequestText(ctx context.Context, prompt, def string) (string, bool, error) {
	reply := make(chan messages.TextReply, 1)
	p.send(messages.TextRequested{Prompt: prompt, Default: def, Reply: reply})

	select {
	case r := <-reply:
		return r.Value, r.OK, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	case <-p.done:
		return "", false, ErrProgramExited
	}
}

// SelectFromList asks the App to let the user pick one label.
func (p *Presenter) SelectFromList(ctx context.Context, prompt string, labels []string) (int, bool, error) {
	reply := make(chan messages.SelectionReply, 1)
	p.send(messages.SelectionRequested{Prompt: prompt, Labels: labels, Reply: reply})

	select {
	case r := <-reply:
		return r.Index, r.OK, nil
	case <-ctx.Done():
		return -1, false, ctx.Err()
	case <-p.done:
		return -1, false, ErrProgramExited
	}
}

// Confirm asks the App a yes/no question.
func (p *Presenter) Confirm(ctx context.Context, prompt string) (bool, error) {
	reply := make(chan bool, 1)
	p.send(messages.ConfirmRequested{Prompt: prompt, Reply: reply})

	select {
	case yes := <-reply:
		return yes, nil
	case <-ctx.Done():
		return false, ctx.Err()
	case <-p.done:
		return false, ErrProgramExited
	}
}

// Notify shows a transient notice.
func (p *Presenter) Notify(title, message string) {
	p.send(messages.Notified{Title: title, Message: message})
}

// Alert shows a message until the next prompt is answered.
func (p *Presenter) Alert(title, message string, isError bool) {
	p.send(messages.AlertShown{Title: title, Message: message, IsError: isError})
}

// OnProgress forwards a scan progress event.
func (p *Presenter) OnProgress(event domain.ProgressEvent) {
	p.send(messages.ProgressUpdated{Event: event})
}
