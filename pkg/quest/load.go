package quest

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/questgraph/pkg/errors"
)

// Format identifies a dataset encoding.
type Format string

// Supported dataset formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the dataset format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported dataset extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// Decode reads a dataset document in the given format.
func Decode(r io.Reader, format Format) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read dataset")
	}
	return Unmarshal(data, format)
}

// Unmarshal decodes dataset bytes in the given format.
func Unmarshal(data []byte, format Format) (Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode JSON dataset")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode YAML dataset")
		}
	default:
		return Document{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported dataset format %q", format)
	}
	return doc, nil
}

// ReadFile reads a dataset file, inferring the format from its extension.
func ReadFile(path string) (Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Document{}, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
	}
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read %s", path)
	}
	return Unmarshal(data, format)
}
