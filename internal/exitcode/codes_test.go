package exitcode

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrParse, "invalid deployment")
	if err.Code != ErrParse {
		t.Errorf("Code = %d, want %d", err.Code, ErrParse)
	}
	if err.Message != "invalid deployment" {
		t.Errorf("Message = %q, want %q", err.Message, "invalid deployment")
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("exec: \"docker\": executable file not found in $PATH")
	err := Wrap(ErrLaunch, "starting engine", cause)

	if err.Code != ErrLaunch {
		t.Errorf("Code = %d, want %d", err.Code, ErrLaunch)
	}
	if !errors.Is(err, cause) {
		t.Error("Wrap should preserve cause for errors.Is")
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrChildFailed, "docker exited with code 125"),
			want: "docker exited with code 125",
		},
		{
			name: "with cause",
			err:  Wrap(ErrLaunch, "starting engine", errors.New("permission denied")),
			want: "starting engine: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, Success},
		{"coded error", New(ErrFileNotFound, "not found"), ErrFileNotFound},
		{"wrapped coded", Wrap(ErrBusy, "locked", errors.New("flock")), ErrBusy},
		{"plain error", errors.New("plain"), ErrGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Errorf("Code() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		wantCode int
		wantMsg  string
	}{
		{"FileNotFound", FileNotFound("compose.yml"), ErrFileNotFound, "file not found: compose.yml"},
		{"PermissionDenied", PermissionDenied("cannot read compose.yml"), ErrPermission, "cannot read compose.yml"},
		{"Busy", Busy("project demo"), ErrBusy, "project demo is busy"},
		{"Usage", Usage("unknown flag %s", "--x"), ErrUsage, "unknown flag --x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.wantMsg)
			}
		})
	}
}

func TestCodeWithWrappedErrors(t *testing.T) {
	original := FileNotFound("compose.yml")
	wrapped := fmt.Errorf("reading deployment: %w", original)
	doubleWrapped := fmt.Errorf("compose up: %w", wrapped)

	for _, err := range []error{original, wrapped, doubleWrapped} {
		if got := Code(err); got != ErrFileNotFound {
			t.Errorf("Code(%v) = %d, want %d", err, got, ErrFileNotFound)
		}
	}
	if !Is(doubleWrapped, ErrFileNotFound) {
		t.Error("Is should work with wrapped errors")
	}
	if Is(doubleWrapped, ErrParse) {
		t.Error("Is should return false for non-matching code")
	}
}

func TestWithCode(t *testing.T) {
	cause := errors.New("compose up: service web: command \"docker run\" failed with exit code 125")
	err := WithCode(ErrChildFailed, cause)

	if err.Error() != cause.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), cause.Error())
	}
	if Code(err) != ErrChildFailed {
		t.Errorf("Code() = %d, want %d", Code(err), ErrChildFailed)
	}
	if !errors.Is(err, cause) {
		t.Error("WithCode should preserve cause for errors.Is")
	}
}

func TestWrapf(t *testing.T) {
	cause := errors.New("context deadline exceeded")
	err := Wrapf(ErrBusy, cause, "another henchman holds %s", "/run/henchman/shop.lock")

	want := "another henchman holds /run/henchman/shop.lock: context deadline exceeded"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if Code(err) != ErrBusy {
		t.Errorf("Code() = %d, want %d", Code(err), ErrBusy)
	}
	if !errors.Is(err, cause) {
		t.Error("Wrapf should preserve cause for errors.Is")
	}
}
