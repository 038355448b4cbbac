package domain

import "time"

// Defaults applied when configuration does not override them.
const (
	DefaultExtension       = ".epub"
	DefaultFormatKeyword   = "epub"
	DefaultResultCap       = 20
	DefaultCodePerPage     = 10
	DefaultRepoPerPage     = 5
	DefaultFallbackRepos   = 3
	DefaultLabelMaxLength  = 60
	DefaultMaxRounds       = 10
	DefaultTreeTimeout     = 15 * time.Second
	DefaultSearchTimeout   = 30 * time.Second
	DefaultDownloadTimeout = 120 * time.Second
	DefaultAPIURL          = "https://api.github.com/"
	DefaultRawURL          = "https://github.com/"
)

// DefaultKnownRepositories is the curated, priority-ordered scan list.
var DefaultKnownRepositories = []string{
	"fancy88/iBook",
	"it-ebooks-0/geektime-books",
	"hehonghui/awesome-english-ebooks",
	"forthespada/CS-Books",
	"imarvinle/awesome-cs-books",
}

// FinderSettings holds the search and download configuration.
type FinderSettings struct {
	// Repositories is the priority-ordered known repository list.
	Repositories []RepositoryRef

	// Cap is the maximum number of candidates collected before stopping early.
	Cap int

	// Extension is the book file extension matched by the tree matcher.
	Extension string

	// FormatKeyword is appended to repository name searches.
	FormatKeyword string

	// CodePerPage is the page size requested from code search.
	CodePerPage int

	// RepoPerPage is the page size requested from repository search.
	RepoPerPage int

	// FallbackRepos is how many discovered repositories are scanned.
	FallbackRepos int

	// RepoNameFallback enables the third stage.
	RepoNameFallback bool

	// LabelMaxLength bounds display labels.
	LabelMaxLength int

	// MaxRounds bounds how many searches one interactive session may run.
	MaxRounds int

	// TreeTimeout bounds one tree listing call.
	TreeTimeout time.Duration

	// SearchTimeout bounds one search endpoint call.
	SearchTimeout time.Duration

	// DownloadTimeout bounds one file transfer.
	DownloadTimeout time.Duration

	// RawURL is the base for raw file download links.
	RawURL string

	// DownloadDir is the default directory offered for saving.
	DownloadDir string
}

// DefaultFinderSettings returns the settings used when nothing is configured.
func DefaultFinderSettings() FinderSettings {
	repos, _ := ParseRepositoryRefs(DefaultKnownRepositories)
	return FinderSettings{
		Repositories:     repos,
		Cap:              DefaultResultCap,
		Extension:        DefaultExtension,
		FormatKeyword:    DefaultFormatKeyword,
		CodePerPage:      DefaultCodePerPage,
		RepoPerPage:      DefaultRepoPerPage,
		FallbackRepos:    DefaultFallbackRepos,
		RepoNameFallback: true,
		LabelMaxLength:   DefaultLabelMaxLength,
		MaxRounds:        DefaultMaxRounds,
		TreeTimeout:      DefaultTreeTimeout,
		SearchTimeout:    DefaultSearchTimeout,
		DownloadTimeout:  DefaultDownloadTimeout,
		RawURL:           DefaultRawURL,
	}
}

// Validate checks the settings are usable.
func (s FinderSettings) Validate() error {
	if s.Cap <= 0 {
		return ErrInvalidInput
	}
	if s.Extension == "" {
		return ErrInvalidInput
	}
	return nil
}
