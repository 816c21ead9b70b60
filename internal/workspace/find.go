// Package workspace resolves the project a deployment belongs to.
package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrNoProject indicates no usable project name could be derived.
var ErrNoProject = errors.New("cannot derive project name from working directory")

// validName matches what container engines accept as a name prefix. The
// project also names the lock file, so path separators are excluded.
var validName = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

// ProjectName returns the project name for a working directory: the base
// name of its absolute path. Container names are built from it, so the
// root directory (which has no base name) is rejected.
// Does not resolve symlinks to stay consistent with os.Getwd().
func ProjectName(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	name := filepath.Base(absDir)
	if name == string(filepath.Separator) || name == "." || strings.TrimSpace(name) == "" {
		return "", ErrNoProject
	}
	if err := Validate(name); err != nil {
		return "", err
	}
	return name, nil
}

// Validate reports whether name can be used as a project name.
func Validate(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%w: invalid project name %q (use letters, digits, '_', '.' or '-', starting with a letter or digit)",
			ErrNoProject, name)
	}
	return nil
}

// Resolve picks the project name: an explicit override wins, otherwise the
// working directory name is used.
func Resolve(override, dir string) (string, error) {
	if v := strings.TrimSpace(override); v != "" {
		if err := Validate(v); err != nil {
			return "", err
		}
		return v, nil
	}
	return ProjectName(dir)
}
