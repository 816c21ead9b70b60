package ui

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestShouldUseColor_NoColorWins(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("CLICOLOR_FORCE", "1")
	if ShouldUseColor() {
		t.Error("NO_COLOR should disable color even with CLICOLOR_FORCE")
	}
}

func TestShouldUseColor_CliColorZero(t *testing.T) {
	t.Setenv("CLICOLOR", "0")
	t.Setenv("CLICOLOR_FORCE", "1")
	if ShouldUseColor() {
		t.Error("CLICOLOR=0 should disable color")
	}
}

func TestShouldUseColor_Force(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")
	t.Setenv("CLICOLOR", "")
	t.Setenv("CLICOLOR_FORCE", "1")
	if !ShouldUseColor() {
		t.Error("CLICOLOR_FORCE should enable color without a TTY")
	}
}

func TestShouldUseEmoji_Disabled(t *testing.T) {
	t.Setenv("HENCHMAN_NO_EMOJI", "1")
	if ShouldUseEmoji() {
		t.Error("HENCHMAN_NO_EMOJI should disable symbols")
	}
}

func TestIsTerminal_NonTerminalWriters(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.log"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	var nilFile *os.File
	for name, w := range map[string]io.Writer{
		"buffer":   &bytes.Buffer{},
		"file":     f,
		"nil file": nilFile,
	} {
		if IsTerminal(w) {
			t.Errorf("IsTerminal(%s) = true, want false", name)
		}
	}
}
