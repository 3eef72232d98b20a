// Package format renders CLI command output. Commands hand over plain
// values; the writer picks the encoding the user asked for.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type Format string

const (
	JSON Format = "json"
	EDN  Format = "edn"
)

// Parse accepts the --format flag value. Empty means JSON.
func Parse(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", JSON:
		return JSON, nil
	case EDN:
		return EDN, nil
	default:
		return "", fmt.Errorf("unknown format: %s (expected json|edn)", s)
	}
}

// Write renders v to w in the given format, followed by a newline.
func Write(w io.Writer, v any, f Format, pretty bool) error {
	switch f {
	case EDN:
		return writeEDN(w, v, pretty)
	default:
		return writeJSON(w, v, pretty)
	}
}

// Output is strict JSON only; anything extra a caller wants to say
// belongs in the value itself, not around it.
func writeJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
