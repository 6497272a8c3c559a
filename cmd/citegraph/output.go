package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	return writeJSON(os.Stdout, v)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON)
// and exits. Errors go to stderr so a partial graph never reaches stdout.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		_ = writeJSON(os.Stderr, ErrorResponse{Error: msg})
	}
	_ = logger.Sync()
	os.Exit(code)
}

// fail exits with the code exitCodeFor assigns to err.
func fail(err error) {
	exitWithError(exitCodeFor(err), "%v", err)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(strings.Join(strings.Fields(s), " "))
	if len(r) <= maxLen {
		return string(r)
	}
	return string(r[:maxLen-3]) + "..."
}

// TitleMaxLen bounds titles in human-readable listings.
const TitleMaxLen = 60

// silentExitError carries an exit code for a failure already reported on
// stdout or stderr.
type silentExitError struct {
	code int
}

func (e silentExitError) Error() string {
	return ""
}

func exitErrorSilent(code int) error {
	return silentExitError{code: code}
}
