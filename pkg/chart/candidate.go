package chart

import (
	"bytes"
	"io"

	json "github.com/goccy/go-json"
)

// Candidate is an untrusted chart document as decoded from JSON. It is the
// only shape the structural validator accepts; nothing else in the module
// operates on unvalidated data.
type Candidate map[string]any

// DecodeCandidate reads one JSON value and returns it as a Candidate.
// Numbers are decoded as json.Number so the later numeric checks are exact
// and large integers survive undamaged. A non-object top level is a
// structural error at the document root.
func DecodeCandidate(r io.Reader) (Candidate, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &StructuralError{
			Path: "$",
			Code: CodeInvalidType,
			Want: "object",
			Got:  typeName(v),
		}
	}
	return Candidate(obj), nil
}

// DecodeCandidateBytes decodes a candidate from a byte slice.
func DecodeCandidateBytes(data []byte) (Candidate, error) {
	return DecodeCandidate(bytes.NewReader(data))
}

// typeName names a decoded JSON value's type for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
