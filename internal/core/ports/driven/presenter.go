package driven

import (
	"context"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
)

// Presenter is the interactive surface the session drives.
// A false ok value from any prompt means the user cancelled, which the
// core treats as a clean abort rather than an error. A non-nil error means
// the surface itself broke (for example the terminal went away).
type Presenter interface {
	// RequestText asks for a line of text, pre-filled with def.
	RequestText(ctx context.Context, prompt, def string) (value string, ok bool, err error)

	// SelectFromList asks the user to choose one label and returns its index.
	SelectFromList(ctx context.Context, prompt string, labels []string) (index int, ok bool, err error)

	// Confirm asks a yes/no question. Cancellation counts as no.
	Confirm(ctx context.Context, prompt string) (bool, error)

	// Notify shows a transient, non-blocking message.
	Notify(title, message string)

	// Alert shows a message the user should read.
	Alert(title, message string, isError bool)
}

// ProgressSink receives scan progress. Delivery is fire-and-forget and
// implementations must return quickly.
type ProgressSink interface {
	OnProgress(event domain.ProgressEvent)
}

// ProgressFunc adapts a function to ProgressSink.
type ProgressFunc func(event domain.ProgressEvent)

// OnProgress calls f(event).
func (f ProgressFunc) OnProgress(event domain.ProgressEvent) {
	f(event)
}
