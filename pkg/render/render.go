package render

import (
	"slices"
	"strings"

	"github.com/matzehuels/questgraph/pkg/errors"
)

// Format is an output format.
type Format string

// Output formats.
const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
)

// Engine selects the renderer that draws a layout.
type Engine string

// Engines.
const (
	EngineNative   Engine = "native"
	EngineGraphviz Engine = "graphviz"
)

var engineFormats = map[Engine][]Format{
	EngineNative:   {FormatSVG, FormatJSON},
	EngineGraphviz: {FormatSVG, FormatPNG, FormatDOT, FormatJSON},
}

// ParseFormat parses a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatSVG, FormatPNG, FormatJSON, FormatDOT:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want svg, png, json or dot)", s)
}

// ParseFormats parses a list of format names, dropping repeats.
func ParseFormats(names []string) ([]Format, error) {
	var out []Format
	for _, n := range names {
		f, err := ParseFormat(n)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}

// ParseEngine parses an engine name. The empty string selects [EngineNative].
func ParseEngine(s string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(s))); e {
	case "":
		return EngineNative, nil
	case EngineNative, EngineGraphviz:
		return e, nil
	}
	return "", errors.New(errors.ErrCodeInvalidEngine, "unknown engine %q (want native or graphviz)", s)
}

// Formats returns the formats an engine can produce.
func (e Engine) Formats() []Format { return slices.Clone(engineFormats[e]) }

// Supports reports whether engine e can produce format f.
func Supports(e Engine, f Format) bool {
	return slices.Contains(engineFormats[e], f)
}

// Check returns an UNSUPPORTED error when e cannot produce f.
func Check(e Engine, f Format) error {
	if Supports(e, f) {
		return nil
	}
	return errors.New(errors.ErrCodeUnsupported, "engine %s cannot produce %s", e, f)
}

// ContentType returns the MIME type of a format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/octet-stream"
	}
}
