package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestProjectName(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "test")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := ProjectName(dir)
	if err != nil {
		t.Fatalf("ProjectName: %v", err)
	}
	if got != "test" {
		t.Errorf("ProjectName = %q, want %q", got, "test")
	}
}

func TestProjectNameRelative(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "my-app")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	chdir(t, dir)

	got, err := ProjectName(".")
	if err != nil {
		t.Fatalf("ProjectName: %v", err)
	}
	if got != "my-app" {
		t.Errorf("ProjectName(.) = %q, want %q", got, "my-app")
	}
}

func TestProjectNameRoot(t *testing.T) {
	if _, err := ProjectName("/"); err != ErrNoProject {
		t.Errorf("ProjectName(/) error = %v, want ErrNoProject", err)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		override string
		dir      string
		want     string
	}{
		{"override wins", "demo", "/tmp/other", "demo"},
		{"override trimmed", "  demo  ", "/tmp/other", "demo"},
		{"blank override falls back", "   ", "/srv/shop", "shop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.override, tt.dir)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveRejectsInvalidNames(t *testing.T) {
	for _, override := range []string{"bad/name", "my app", "-dash", ".hidden", "café"} {
		t.Run(override, func(t *testing.T) {
			_, err := Resolve(override, "/srv/shop")
			if !errors.Is(err, ErrNoProject) {
				t.Errorf("Resolve(%q) error = %v, want ErrNoProject", override, err)
			}
		})
	}

	if got, err := Resolve("Shop_2.v-1", "/srv/shop"); err != nil || got != "Shop_2.v-1" {
		t.Errorf("Resolve(Shop_2.v-1) = %q, %v", got, err)
	}
}

func TestProjectNameRejectsInvalidDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my app")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := ProjectName(dir); !errors.Is(err, ErrNoProject) {
		t.Errorf("ProjectName(%q) error = %v, want ErrNoProject", dir, err)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
