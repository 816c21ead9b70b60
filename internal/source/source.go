// Package source resolves a deployment file argument to its raw text.
package source

import (
	"fmt"
	"io"
	"os"
)

// Stdin is the path argument that selects standard input.
const Stdin = "-"

// NotFoundError reports a path that does not exist or is not a regular file.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("deployment file not found: %s", e.Path)
}

// Read returns the text named by path. "-" reads stdin to EOF; any other
// path must be an existing regular file.
func Read(path string, stdin io.Reader) (string, error) {
	if path == Stdin {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Path: path}
		}
		return "", fmt.Errorf("checking %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", &NotFoundError{Path: path}
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's deployment file
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
