package services

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driving"
	"github.com/custodia-labs/bookfetch/internal/logger"
)

// Ensure DownloadService implements the interface.
var _ driving.DownloadService = (*DownloadService)(nil)

// fallbackFilename is used when sanitising leaves nothing.
const fallbackFilename = "book"

// unsafeFilenameChars removes characters that are not allowed in file names
// on common platforms. Path separators become a space so words stay apart.
var unsafeFilenameChars = strings.NewReplacer(
	"<", "", ">", "", ":", "", `"`, "", "|", "", "?", "", "*", "",
	"/", " ", `\`, " ",
)

// ResolveDownloadURL builds the raw-content URL of a candidate.
// Each path segment is percent-escaped; separators are kept.
func ResolveDownloadURL(rawBase string, c domain.CandidateFile) string {
	if rawBase == "" {
		rawBase = domain.DefaultRawURL
	}

	segments := strings.Split(c.Path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}

	return fmt.Sprintf("%s/%s/%s/raw/HEAD/%s",
		strings.TrimSuffix(rawBase, "/"),
		url.PathEscape(c.Repository.Owner),
		url.PathEscape(c.Repository.Name),
		strings.Join(segments, "/"),
	)
}

// SanitizeFilename strips filesystem-unsafe characters from name and
// guarantees the result ends with the book extension.
func SanitizeFilename(name, extension string) string {
	if extension == "" {
		extension = domain.DefaultExtension
	}

	cleaned := strings.Join(strings.Fields(unsafeFilenameChars.Replace(name)), " ")
	if strings.TrimSpace(trimExtension(cleaned, extension)) == "" {
		cleaned = fallbackFilename
	}
	return EnsureExtension(cleaned, extension)
}

// EnsureExtension appends extension to p unless it already ends with it
// (compared case-insensitively).
func EnsureExtension(p, extension string) string {
	if extension == "" || strings.HasSuffix(strings.ToLower(p), strings.ToLower(extension)) {
		return p
	}
	return p + extension
}

func trimExtension(p, extension string) string {
	if strings.HasSuffix(strings.ToLower(p), strings.ToLower(extension)) {
		return p[:len(p)-len(extension)]
	}
	return p
}

// DownloadService resolves candidates to URLs and persists them.
type DownloadService struct {
	settings domain.FinderSettings
	fetcher  driven.Fetcher
	writer   driven.FileWriter
}

// NewDownloadService creates a new download service.
func NewDownloadService(
	settings domain.FinderSettings,
	fetcher driven.Fetcher,
	writer driven.FileWriter,
) *DownloadService {
	return &DownloadService{
		settings: settings,
		fetcher:  fetcher,
		writer:   writer,
	}
}

// ResolveURL returns the raw-content URL of a candidate.
func (s *DownloadService) ResolveURL(candidate domain.CandidateFile) string {
	return ResolveDownloadURL(s.settings.RawURL, candidate)
}

// DefaultDestination suggests <download dir>/<sanitised file name>.
func (s *DownloadService) DefaultDestination(candidate domain.CandidateFile) string {
	name := SanitizeFilename(candidate.Name, s.settings.Extension)
	if s.settings.DownloadDir == "" {
		return name
	}
	return filepath.Join(s.settings.DownloadDir, name)
}

// Download fetches the candidate and writes it to dest.
// A failure leaves dest untouched and wraps domain.ErrDownloadFailed.
func (s *DownloadService) Download(
	ctx context.Context, candidate domain.CandidateFile, dest string,
) (string, error) {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return "", fmt.Errorf("%w: destination is empty", domain.ErrInvalidInput)
	}
	if s.fetcher == nil || s.writer == nil {
		return "", fmt.Errorf("%w: no fetcher configured", domain.ErrDownloadFailed)
	}
	dest = EnsureExtension(dest, s.settings.Extension)

	link := s.ResolveURL(candidate)
	logger.Debug("Downloading %s to %s", link, dest)

	callCtx, cancel := withTimeout(ctx, s.settings.DownloadTimeout)
	defer cancel()

	data, err := s.fetcher.Fetch(callCtx, link)
	if err != nil {
		return "", fmt.Errorf("%w: fetch %s: %w", domain.ErrDownloadFailed, link, err)
	}

	if err := s.writer.WriteFile(dest, data); err != nil {
		return "", fmt.Errorf("%w: write %s: %w", domain.ErrDownloadFailed, dest, err)
	}

	logger.Info("Saved %d bytes to %s", len(data), dest)
	return dest, nil
}
