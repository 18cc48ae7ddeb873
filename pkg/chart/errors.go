package chart

import (
	"errors"
	"fmt"
	"strings"
)

// Structural issue codes. Exported as consts so API clients and tests can
// match on them without parsing messages.
const (
	CodeRequired    = "required"     // required field is absent
	CodeInvalidType = "invalid_type" // wrong primitive type
	CodeInvalidEnum = "invalid_enum" // value outside the allowed set
	CodeEmpty       = "empty"        // required text or array is empty
)

// StructuralError reports the first structural violation found in a
// candidate: a missing required field, a wrong primitive type, or an enum
// value outside the allowed set. It is always fatal to the document being
// validated; the caller must supply a corrected candidate.
type StructuralError struct {
	Path string // dotted path to the offending field, e.g. "meta.type"
	Code string // one of the Code* constants above
	Want string // expected type or shape
	Got  string // actual type or value
}

func (e *StructuralError) Error() string {
	switch e.Code {
	case CodeRequired:
		return fmt.Sprintf("%s: required %s is missing", e.Path, e.Want)
	case CodeEmpty:
		return fmt.Sprintf("%s: %s must not be empty", e.Path, e.Want)
	default:
		return fmt.Sprintf("%s: want %s, got %s", e.Path, e.Want, e.Got)
	}
}

// Sentinel errors for the five cross-reference invariants. Every
// CrossRefError unwraps to exactly one of these, so callers can classify a
// failure with errors.Is while the CrossRefError itself carries the context
// (row index, key, offending value) needed to pinpoint it.
var (
	// ErrDuplicateSeriesKey is returned when two series declarations share a key.
	ErrDuplicateSeriesKey = errors.New("duplicate series key")

	// ErrUndeclaredDataKey is returned when a data row carries a key that no
	// series declares.
	ErrUndeclaredDataKey = errors.New("undeclared data key")

	// ErrOrphanSeriesKey is returned when a declared series key appears in no
	// data row.
	ErrOrphanSeriesKey = errors.New("orphan series key")

	// ErrInconsistentRowShape is returned when a data row exposes a different
	// key set than row 0.
	ErrInconsistentRowShape = errors.New("inconsistent row shape")

	// ErrNonNumericSeriesValue is returned when a series cell holds anything
	// other than a number or null.
	ErrNonNumericSeriesValue = errors.New("non-numeric series value")
)

// CrossRefError reports the first violated cross-reference invariant.
// The zero values of Row (-1 is used when no row is involved), Key, Value,
// Missing and Extra are filled only as far as the violated invariant defines
// them.
type CrossRefError struct {
	Kind    error    // one of the sentinel errors above
	Row     int      // offending row index, -1 when not row-scoped
	Key     string   // offending series key, "" when not key-scoped
	Value   any      // offending cell value (ErrNonNumericSeriesValue only)
	Missing []string // keys row 0 has but the offending row lacks (ErrInconsistentRowShape only)
	Extra   []string // keys the offending row has beyond row 0 (ErrInconsistentRowShape only)
}

func (e *CrossRefError) Error() string {
	switch e.Kind {
	case ErrDuplicateSeriesKey:
		return fmt.Sprintf("duplicate series key %q", e.Key)
	case ErrUndeclaredDataKey:
		return fmt.Sprintf("row %d: undeclared data key %q", e.Row, e.Key)
	case ErrOrphanSeriesKey:
		return fmt.Sprintf("series key %q appears in no data row", e.Key)
	case ErrInconsistentRowShape:
		var parts []string
		if len(e.Missing) > 0 {
			parts = append(parts, fmt.Sprintf("missing %s", strings.Join(e.Missing, ", ")))
		}
		if len(e.Extra) > 0 {
			parts = append(parts, fmt.Sprintf("extra %s", strings.Join(e.Extra, ", ")))
		}
		return fmt.Sprintf("row %d: key set differs from row 0 (%s)", e.Row, strings.Join(parts, "; "))
	case ErrNonNumericSeriesValue:
		return fmt.Sprintf("row %d: series %q holds non-numeric value %v", e.Row, e.Key, e.Value)
	default:
		return fmt.Sprintf("cross-reference violation: %v", e.Kind)
	}
}

// Unwrap exposes the sentinel so errors.Is(err, chart.ErrOrphanSeriesKey)
// works on wrapped errors.
func (e *CrossRefError) Unwrap() error { return e.Kind }

// Code returns a stable machine-readable code for the violated invariant,
// used in API error payloads.
func (e *CrossRefError) Code() string {
	switch e.Kind {
	case ErrDuplicateSeriesKey:
		return "duplicate_series_key"
	case ErrUndeclaredDataKey:
		return "undeclared_data_key"
	case ErrOrphanSeriesKey:
		return "orphan_series_key"
	case ErrInconsistentRowShape:
		return "inconsistent_row_shape"
	case ErrNonNumericSeriesValue:
		return "non_numeric_series_value"
	default:
		return "cross_reference_violation"
	}
}
