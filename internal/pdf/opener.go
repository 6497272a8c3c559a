// Package pdf extracts text from PDF attachments and opens them for review.
package pdf

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Opener opens PDF files in a viewer, for checking a suspicious match by hand.
type Opener struct {
	reader string
}

// ValidReaders lists the supported pdf_reader values.
var ValidReaders = []string{"system", "skim", "preview", "zathura", "evince", "okular"}

// NewOpener creates an opener for the given reader preference.
// An empty reader means the platform default.
func NewOpener(reader string) *Opener {
	if reader == "" {
		reader = "system"
	}
	return &Opener{reader: reader}
}

// Open starts the viewer on path without waiting for it to exit.
func (o *Opener) Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("PDF file does not exist: %s", path)
		}
		return fmt.Errorf("checking PDF file: %w", err)
	}

	cmd, err := o.command(runtime.GOOS, path)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// command builds the viewer command for goos.
func (o *Opener) command(goos, path string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		switch o.reader {
		case "skim":
			return exec.Command("open", "-a", "Skim", path), nil
		case "preview":
			return exec.Command("open", "-a", "Preview", path), nil
		default:
			return exec.Command("open", path), nil
		}
	case "linux":
		switch o.reader {
		case "zathura", "evince", "okular":
			return exec.Command(o.reader, path), nil
		default:
			return exec.Command("xdg-open", path), nil
		}
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
