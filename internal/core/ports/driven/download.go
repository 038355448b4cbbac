package driven

import "context"

// Fetcher transfers the bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FileWriter persists bytes to a path. The destination is either fully
// written or left untouched.
type FileWriter interface {
	WriteFile(path string, data []byte) error
}

// Opener hands a file to the operating system's default application.
type Opener interface {
	Open(path string) error
}
