package render

import (
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/mingli/ziwei/chart"
	"github.com/mingli/ziwei/errors"
)

// Format selects an output encoding for a chart.
type Format string

const (
	// FormatText draws the traditional 4×4 plate for terminals.
	FormatText Format = "text"
	// FormatJSON emits the full typed result.
	FormatJSON Format = "json"
	// FormatTOML emits the flat export document.
	FormatTOML Format = "toml"
	// FormatYAML emits the flat export document.
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatTOML:
		return FormatTOML, nil
	case FormatYAML, Format("yml"):
		return FormatYAML, nil
	}
	return "", errors.NewInvalidInputf("unknown output format %q (want text, json, toml, or yaml)", s)
}

// Render writes r to w in the requested format.
func Render(w io.Writer, r *chart.Result, f Format) error {
	switch f {
	case FormatText:
		return Grid(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatTOML:
		data, err := toml.Marshal(NewDocument(r))
		if err != nil {
			return errors.Wrap(err, "failed to marshal TOML")
		}
		_, err = w.Write(data)
		return err
	case FormatYAML:
		data, err := yaml.Marshal(NewDocument(r))
		if err != nil {
			return errors.Wrap(err, "failed to marshal YAML")
		}
		_, err = w.Write(data)
		return err
	}
	return errors.NewInvalidInputf("unknown output format %q", string(f))
}
