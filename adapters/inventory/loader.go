package inventory

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"website-audit/core/types"
	apperrors "website-audit/internal/errors"
	"website-audit/internal/logging"
)

// Format is an inventory document format
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// DetectFormat picks a format from the file extension; unknown extensions are JSON
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".hcl":
		return FormatHCL
	default:
		return FormatJSON
	}
}

// Parse reads a document of the given format. source names the document in
// error messages.
func Parse(r io.Reader, format Format, source string) (*types.ProjectInput, error) {
	log := logging.Component("inventory").With(zap.String("source", source), zap.String("format", string(format)))

	var (
		root *node
		err  error
	)
	switch format {
	case FormatJSON:
		root, err = parseJSON(r)
	case FormatYAML:
		root, err = parseYAML(r)
	case FormatHCL:
		var src []byte
		if src, err = io.ReadAll(r); err == nil {
			root, err = parseHCL(src, source)
		}
	default:
		return nil, apperrors.Newf(apperrors.TypeInput, "unsupported inventory format: %s", format)
	}
	if err != nil {
		if _, ok := apperrors.As(err); ok {
			return nil, err
		}
		return nil, apperrors.Parsing("failed to parse "+source, err).WithContext("format", string(format))
	}

	input, err := decodeDocument(root, log)
	if err != nil {
		return nil, err
	}

	log.Debug("inventory loaded",
		zap.Int("sections", len(input.Sections)),
		zap.Int("multipliers", len(input.Multipliers)))
	return input, nil
}

// ParseBytes is Parse over an in-memory document
func ParseBytes(data []byte, format Format, source string) (*types.ProjectInput, error) {
	return Parse(bytes.NewReader(data), format, source)
}

// LoadFile reads and parses an inventory file, detecting its format
func LoadFile(path string) (*types.ProjectInput, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NotFound("inventory file", path)
		}
		return nil, apperrors.Input("failed to open inventory", err).WithContext("path", path)
	}
	defer f.Close()

	return Parse(f, DetectFormat(path), path)
}
