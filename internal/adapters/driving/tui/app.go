package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/bookfetch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/bookfetch/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/bookfetch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/bookfetch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/bookfetch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/bookfetch/internal/adapters/driving/tui/styles"
)

// windowTitle is shown in the terminal title bar.
const windowTitle = "bookfetch"

// App is the TUI model following the Elm architecture.
// It owns no session logic: the session runs in its own goroutine and asks
// for input through request messages, each carrying a reply channel that the
// App answers exactly once.
type App struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	input   *input.PromptInput
	list    *list.CandidateList
	bar     *status.Bar
	spinner spinner.Model

	// cancel stops the session when the user quits.
	cancel context.CancelFunc

	// kind is the prompt waiting for an answer.
	kind messages.PromptKind

	textReply    chan<- messages.TextReply
	selectReply  chan<- messages.SelectionReply
	confirmReply chan<- bool

	// listPrompt and confirmPrompt are the questions for the active prompt.
	listPrompt    string
	confirmPrompt string

	// notice is the latest transient message.
	notice string

	// alert stays visible until the next prompt is answered.
	alert *messages.AlertShown

	finished bool
	err      error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the TUI model. cancel is called when the user quits with
// ctrl+c and may be nil.
func NewApp(cancel context.CancelFunc) *App {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(s.Theme().Accent)

	return &App{
		styles:  s,
		keymap:  km,
		input:   input.NewPromptInput(s),
		list:    list.NewCandidateList(s),
		bar:     status.NewBar(s, km),
		spinner: sp,
		cancel:  cancel,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle(windowTitle),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case messages.TextRequested:
		a.abandonPrompt()
		a.kind = messages.PromptText
		a.textReply = msg.Reply
		a.bar.SetState(status.StateReady)
		a.bar.SetMessage("")
		return a, a.input.Start(msg.Prompt, msg.Default)

	case messages.SelectionRequested:
		a.abandonPrompt()
		a.kind = messages.PromptSelect
		a.selectReply = msg.Reply
		a.listPrompt = msg.Prompt
		a.list.SetItems(msg.Labels)
		a.bar.SetState(status.StateSelecting)
		a.bar.SetMessage("")
		return a, nil

	case messages.ConfirmRequested:
		a.abandonPrompt()
		a.kind = messages.PromptConfirm
		a.confirmReply = msg.Reply
		a.confirmPrompt = msg.Prompt
		a.bar.SetState(status.StateConfirming)
		a.bar.SetMessage("")
		return a, nil

	case messages.Notified:
		a.notice = msg.Message
		a.bar.SetState(busyState(msg.Title))
		return a, nil

	case messages.AlertShown:
		alert := msg
		a.alert = &alert
		if msg.IsError {
			a.bar.SetState(status.StateError)
			a.bar.SetMessage(msg.Title)
		}
		return a, nil

	case messages.ProgressUpdated:
		// Progress is delivered asynchronously and may trail the prompt
		// that follows the search.
		if a.kind != messages.PromptNone {
			return a, nil
		}
		a.bar.SetState(status.StateSearching)
		a.bar.SetProgress(msg.Event)
		return a, nil

	case messages.SessionFinished:
		a.abandonPrompt()
		a.finished = true
		a.err = msg.Err
		return a, tea.Quit
	}

	return a, nil
}

// handleKey routes a key press to the active prompt.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if keymap.Matches(keyStr, a.keymap.Quit) {
		a.abandonPrompt()
		if a.cancel != nil {
			a.cancel()
		}
		return a, tea.Quit
	}

	switch a.kind {
	case messages.PromptText:
		switch {
		case keymap.Matches(keyStr, a.keymap.Submit):
			a.answerText(a.input.Value(), true)
			return a, nil
		case keymap.Matches(keyStr, a.keymap.Cancel):
			a.answerText("", false)
			return a, nil
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd

	case messages.PromptSelect:
		switch {
		case keymap.Matches(keyStr, a.keymap.Submit):
			a.answerSelection(a.list.Selected(), !a.list.IsEmpty())
			return a, nil
		case keymap.Matches(keyStr, a.keymap.Cancel):
			a.answerSelection(-1, false)
			return a, nil
		}
		a.list, _ = a.list.Update(msg)
		return a, nil

	case messages.PromptConfirm:
		switch {
		case keymap.Matches(keyStr, a.keymap.Yes):
			a.answerConfirm(true)
		case keymap.Matches(keyStr, a.keymap.No), keymap.Matches(keyStr, a.keymap.Cancel):
			a.answerConfirm(false)
		}
		return a, nil

	case messages.PromptNone:
	}

	return a, nil
}

func (a *App) answerText(value string, ok bool) {
	if a.textReply != nil {
		a.textReply <- messages.TextReply{Value: value, OK: ok}
	}
	a.input.Blur()
	a.promptAnswered()
}

func (a *App) answerSelection(index int, ok bool) {
	if a.selectReply != nil {
		a.selectReply <- messages.SelectionReply{Index: index, OK: ok}
	}
	a.promptAnswered()
}

func (a *App) answerConfirm(yes bool) {
	if a.confirmReply != nil {
		a.confirmReply <- yes
	}
	a.promptAnswered()
}

// promptAnswered clears the prompt state and any alert it was shown with.
func (a *App) promptAnswered() {
	a.kind = messages.PromptNone
	a.textReply = nil
	a.selectReply = nil
	a.confirmReply = nil
	a.alert = nil
	a.notice = ""
	a.bar.Clear()
}

// abandonPrompt answers a pending prompt with a cancellation so the session
// goroutine never stays blocked on it.
func (a *App) abandonPrompt() {
	switch a.kind {
	case messages.PromptText:
		a.answerText("", false)
	case messages.PromptSelect:
		a.answerSelection(-1, false)
	case messages.PromptConfirm:
		a.answerConfirm(false)
	case messages.PromptNone:
	}
}

// busyState maps a notice title to the status shown while the session works.
func busyState(title string) status.State {
	if strings.HasPrefix(strings.ToLower(title), "download") {
		return status.StateDownloading
	}
	return status.StateSearching
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	sections := []string{a.styles.Title.Render(windowTitle)}

	if a.alert != nil {
		sections = append(sections, a.renderAlert())
	}

	switch a.kind {
	case messages.PromptText:
		sections = append(sections, a.input.View())
	case messages.PromptSelect:
		sections = append(sections,
			a.styles.Subtitle.Render(a.listPrompt),
			a.list.View(),
		)
	case messages.PromptConfirm:
		body := a.confirmPrompt + "\n\n" + a.styles.Muted.Render("[y] yes   [n] no")
		sections = append(sections, a.styles.Dialog.Render(body))
	case messages.PromptNone:
		if a.notice != "" {
			sections = append(sections, a.spinner.View()+" "+a.styles.Normal.Render(a.notice))
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Pin the status bar to the bottom row.
	gap := a.height - lipgloss.Height(body) - 1
	if gap < 1 {
		gap = 1
	}
	return body + strings.Repeat("\n", gap) + a.bar.View()
}

func (a *App) renderAlert() string {
	style := a.styles.Warning
	if a.alert.IsError {
		style = a.styles.Error
	}
	return a.styles.Dialog.Render(style.Render(a.alert.Title) + "\n\n" + a.alert.Message)
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.input.SetWidth(width)
	a.list.SetDimensions(width, height-8)
	a.bar.SetWidth(width)
}

// Prompt returns the kind of prompt waiting for an answer.
func (a *App) Prompt() messages.PromptKind {
	return a.kind
}

// Notice returns the latest transient message.
func (a *App) Notice() string {
	return a.notice
}

// Alert returns the visible alert, if any.
func (a *App) Alert() (messages.AlertShown, bool) {
	if a.alert == nil {
		return messages.AlertShown{}, false
	}
	return *a.alert, true
}

// Finished reports whether the session goroutine has returned.
func (a *App) Finished() bool {
	return a.finished
}

// Err returns the error the session finished with.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its first window size.
func (a *App) Ready() bool {
	return a.ready
}

// Status returns the status bar, for inspection.
func (a *App) Status() *status.Bar {
	return a.bar
}
