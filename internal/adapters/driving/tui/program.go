package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/bookfetch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driving"
)

// SessionFactory builds the session that drives the interface.
type SessionFactory func(presenter driven.Presenter, progress driven.ProgressSink) driving.SessionRunner

// Run starts the full-screen interface and runs the session built by
// newSession against it. It returns once both the program and the session
// have stopped. The session's error is returned; quitting with ctrl+c or
// cancelling ctx is not an error.
func Run(ctx context.Context, newSession SessionFactory, opts ...tea.ProgramOption) error {
	if newSession == nil {
		return ErrMissingSession
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := NewApp(cancel)
	program := tea.NewProgram(app, append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)

	done := make(chan struct{})
	presenter := NewPresenter(program.Send, done)
	session := newSession(presenter, presenter)

	sessionErr := make(chan error, 1)
	go func() {
		err := session.Run(ctx)
		sessionErr <- err
		program.Send(messages.SessionFinished{Err: err})
	}()

	_, runErr := program.Run()
	close(done)
	cancel()
	err := <-sessionErr

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) && !errors.Is(runErr, tea.ErrInterrupted) {
		return fmt.Errorf("tui: %w", runErr)
	}
	return err
}
