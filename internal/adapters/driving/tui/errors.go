package tui

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
)

// ErrProgramExited is returned by Presenter prompts once the program has
// stopped. It wraps domain.ErrCancelled so the session ends cleanly.
var ErrProgramExited = fmt.Errorf("tui: program exited: %w", domain.ErrCancelled)

// ErrMissingSession is returned by Run when no session factory is provided.
var ErrMissingSession = errors.New("tui: session factory is required")
