package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driving"
	"github.com/custodia-labs/bookfetch/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionRunner = (*SessionService)(nil)

// Prompt texts shown by the session.
const (
	appTitle          = "bookfetch"
	promptTitle       = "Enter the title of the book to search for:"
	promptSaveTo      = "Save to:"
	promptSearchAgain = "Search for another book?"
	promptRetry       = "Try again with a different title?"
	msgNotFound       = "No matching e-books were found. Try another title or keywords."
	msgEmptyTitle     = "Please enter at least one keyword."
)

// SessionConfig holds the collaborators of an interactive session.
type SessionConfig struct {
	Search    driving.SearchService
	Downloads driving.DownloadService
	Presenter driven.Presenter
	Progress  driven.ProgressSink
	Opener    driven.Opener

	// ID tags log lines of this session.
	ID string

	// MaxRounds bounds how many searches the session runs.
	MaxRounds int

	// LabelMaxLength bounds display labels.
	LabelMaxLength int
}

// SessionService runs the prompt, search, select and download loop.
// Re-running after "not found" or "search again" is a bounded loop, not recursion.
type SessionService struct {
	cfg SessionConfig
}

// NewSessionService creates a new session service.
func NewSessionService(cfg SessionConfig) *SessionService {
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = domain.DefaultMaxRounds
	}
	if cfg.LabelMaxLength <= 0 {
		cfg.LabelMaxLength = domain.DefaultLabelMaxLength
	}
	return &SessionService{cfg: cfg}
}

// Run executes rounds until the user stops or cancels, or the round limit is hit.
// It returns nil on completion and on cancellation. Only presenter failures
// are reported as errors.
func (s *SessionService) Run(ctx context.Context) error {
	if s.cfg.Search == nil || s.cfg.Downloads == nil || s.cfg.Presenter == nil {
		return fmt.Errorf("%w: session requires search, download and presenter", domain.ErrInvalidInput)
	}

	logger.Section("Session " + s.cfg.ID)
	for round := 1; round <= s.cfg.MaxRounds; round++ {
		logger.Debug("Session %s round %d/%d", s.cfg.ID, round, s.cfg.MaxRounds)

		again, err := s.runRound(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrCancelled) || ctx.Err() != nil {
				logger.Debug("Session %s cancelled", s.cfg.ID)
				return nil
			}
			return err
		}
		if !again {
			return nil
		}
	}

	logger.Info("Session %s reached the limit of %d rounds", s.cfg.ID, s.cfg.MaxRounds)
	return nil
}

// runRound performs one search attempt. It returns whether another round should run.
func (s *SessionService) runRound(ctx context.Context) (bool, error) {
	p := s.cfg.Presenter

	title, ok, err := p.RequestText(ctx, promptTitle, "")
	if err != nil || !ok {
		return false, err
	}

	if len(domain.Tokenize(title)) == 0 {
		p.Alert(appTitle, msgEmptyTitle, false)
		return true, nil
	}

	p.Notify("Searching", "Searching: "+title)
	result, err := s.cfg.Search.Search(ctx, title, s.cfg.Progress)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			p.Alert(appTitle, msgEmptyTitle, false)
			return true, nil
		}
		return false, err
	}

	if result.IsEmpty() {
		p.Alert("Not found", msgNotFound, false)
		again, err := p.Confirm(ctx, promptRetry)
		return again, err
	}

	labels := DisplayLabels(result.Candidates, s.cfg.LabelMaxLength)
	prompt := fmt.Sprintf("Found %d e-books, choose one:", len(labels))
	idx, ok, err := p.SelectFromList(ctx, prompt, labels)
	if err != nil || !ok {
		return false, err
	}
	if idx < 0 || idx >= len(result.Candidates) {
		return false, fmt.Errorf("%w: selection %d out of range", domain.ErrInvalidInput, idx)
	}
	candidate := result.Candidates[idx]
	logger.Debug("Selected %s from %s", candidate.Path, candidate.Repository)

	dest, ok, err := p.RequestText(ctx, promptSaveTo, s.cfg.Downloads.DefaultDestination(candidate))
	if err != nil || !ok {
		return false, err
	}

	s.download(ctx, candidate, dest)

	again, err := p.Confirm(ctx, promptSearchAgain)
	return again, err
}

// download transfers a candidate. Failures are reported and do not end the session.
func (s *SessionService) download(ctx context.Context, candidate domain.CandidateFile, dest string) {
	p := s.cfg.Presenter

	p.Notify("Downloading", "Downloading: "+filepath.Base(dest))
	saved, err := s.cfg.Downloads.Download(ctx, candidate, dest)
	if err != nil {
		logger.Warn("Download failed: %v", err)
		p.Alert("Download failed", err.Error(), true)
		return
	}

	if s.cfg.Opener == nil {
		p.Alert("Download complete", "Saved to: "+saved, false)
		return
	}

	open, err := p.Confirm(ctx, fmt.Sprintf("Saved to:\n%s\n\nOpen it now?", saved))
	if err != nil || !open {
		return
	}
	if err := s.cfg.Opener.Open(saved); err != nil {
		logger.Warn("Open failed: %v", err)
		p.Alert("Open failed", err.Error(), true)
	}
}
