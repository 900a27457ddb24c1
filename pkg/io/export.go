package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/bifconv/pkg/errors"
	"github.com/matzehuels/bifconv/pkg/network"
)

// Options controls JSON output.
type Options struct {
	// Indent is the per-level indentation. Empty means a single line.
	Indent string
}

// Marshal encodes doc as JSON terminated by a newline.
//
// Values JSON cannot represent (NaN and infinities in a CPT) fail with
// SERIALIZATION_ERROR.
func Marshal(doc network.Document, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if opts.Indent != "" {
		enc.SetIndent("", opts.Indent)
	}
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "cannot encode network %q", doc.Network)
	}
	return buf.Bytes(), nil
}

// WriteJSON encodes doc and writes it to w in a single write, so a failed
// encoding never leaves partial output behind.
// The output can be read back with [ReadJSON].
func WriteJSON(w io.Writer, doc network.Document, opts Options) error {
	data, err := Marshal(doc, opts)
	if err != nil {
		return err
	}
	return Write(w, data)
}

// ExportJSON writes doc to a JSON file at path. The file is only created
// once encoding has succeeded.
func ExportJSON(doc network.Document, path string, opts Options) error {
	data, err := Marshal(doc, opts)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// Write writes already encoded output to w in one call.
func Write(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write output")
	}
	return nil
}

// WriteFile writes already encoded output to path, creating or truncating
// it. An unusable path fails with INVALID_PATH.
func WriteFile(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
