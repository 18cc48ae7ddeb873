package chart

import (
	"bytes"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
)

// =============================================================================
// Document Serialization API
// =============================================================================

// MarshalDocument converts a validated document to indented JSON bytes in the
// canonical {meta, series, data} shape.
func MarshalDocument(doc *Document) ([]byte, error) {
	compact, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// WriteDocument writes a validated document as indented JSON to w.
func WriteDocument(doc *Document, w io.Writer) error {
	data, err := MarshalDocument(doc)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteDocumentFile writes a validated document to a JSON file.
// The file is created with 0644 permissions.
func WriteDocumentFile(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDocument(doc, f)
}

// ReadDocument decodes a candidate from r and runs both validation phases.
// It is the usual entry point for untrusted input: the result is either a
// canonical document or a typed StructuralError/CrossRefError naming the
// first violation.
func ReadDocument(r io.Reader) (*Document, error) {
	c, err := DecodeCandidate(r)
	if err != nil {
		return nil, err
	}
	return Validate(c)
}

// ReadDocumentFile reads and validates a chart document from a JSON file.
func ReadDocumentFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}
