// Package output renders machine-readable command output.
// Supports text (the styled default), JSON and YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format represents an output format.
type Format string

const (
	// FormatText is human-oriented styled output rendered by the caller.
	FormatText Format = "text"
	// FormatJSON is pretty-printed JSON.
	FormatJSON Format = "json"
	// FormatYAML is YAML, readable back as a deployment document.
	FormatYAML Format = "yaml"
)

// EnvFormat selects the format when no flag is given.
const EnvFormat = "HENCHMAN_OUTPUT_FORMAT"

// ResolveFormat determines the output format from flag value and environment.
// Priority: explicit flag > HENCHMAN_OUTPUT_FORMAT > text.
func ResolveFormat(flagValue string) (Format, error) {
	if flagValue != "" {
		return parse(flagValue)
	}
	if env := os.Getenv(EnvFormat); env != "" {
		return parse(env)
	}
	return FormatText, nil
}

func parse(v string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(v))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", v)
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// WriteYAML writes v as YAML with two-space indentation.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Write renders v in format. FormatText is the caller's job and is an error here.
func Write(w io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, v)
	case FormatYAML:
		return WriteYAML(w, v)
	}
	return fmt.Errorf("format %q has no structured encoding", format)
}
