package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/alpsviz/pkg/alps"
	"github.com/matzehuels/alpsviz/pkg/errors"
)

// Format identifies the serialization of an ALPS source file.
type Format string

// Supported source formats.
const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
)

var formatFromExt = map[string]Format{
	".json": FormatJSON,
	".xml":  FormatXML,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
}

// FormatOf returns the source format implied by the file extension of path.
// It returns INVALID_FORMAT for unknown extensions.
func FormatOf(path string) (Format, error) {
	f, ok := formatFromExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported profile extension %q (want .json, .xml, .yaml or .yml)", filepath.Ext(path))
	}
	return f, nil
}

// IsProfile reports whether path has an extension that [Load] understands.
func IsProfile(path string) bool {
	_, err := FormatOf(path)
	return err == nil
}

// Read decodes an ALPS document in the given format from r.
//
// Syntax errors are reported as MALFORMED_INPUT; a syntactically valid file
// without an "alps" root or top-level descriptor list is INVALID_DOCUMENT.
// Read does not close r.
func Read(r io.Reader, format Format) (*alps.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotReadable, err, "read profile")
	}
	return decode(data, format)
}

// Load reads the ALPS file at path, choosing the decoder from its extension.
//
// A missing or unreadable file is FILE_NOT_READABLE. The returned document
// records the absolute path so that relative cross-file references can be
// resolved against its directory.
func Load(path string) (*alps.Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotReadable, err, "resolve %s", path)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotReadable, err, "read %s", path)
	}
	doc, err := decode(data, format)
	if err != nil {
		return nil, wrapPath(err, path)
	}
	doc.Path = abs
	return doc, nil
}

func decode(data []byte, format Format) (*alps.Document, error) {
	var v any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&v); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "decode JSON")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "decode YAML")
		}
	case FormatXML:
		var err error
		if v, err = decodeXML(data); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	return alps.DecodeDocument(v)
}

// wrapPath prefixes the message with the file so errors from nested loads
// still say which file was broken. The code is preserved.
func wrapPath(err error, path string) error {
	code := errors.GetCode(err)
	if code == "" {
		return err
	}
	return errors.Wrap(code, err, "%s", path)
}
