package download

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure SystemOpener implements the interface.
var _ driven.Opener = (*SystemOpener)(nil)

// SystemOpener opens files with the platform's default application.
type SystemOpener struct {
	goos  string
	start func(name string, args ...string) error
}

// NewSystemOpener creates an opener for the running platform.
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{
		goos: runtime.GOOS,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

// Open launches the default application for path without waiting for it.
func (o *SystemOpener) Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	name, args, err := openCommand(o.goos, path)
	if err != nil {
		return err
	}
	return o.start(name, args...)
}

// openCommand returns the launcher command for a platform.
func openCommand(goos, path string) (string, []string, error) {
	switch goos {
	case osDarwin:
		return "open", []string{path}, nil
	case osLinux, "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{path}, nil
	case osWindows:
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
