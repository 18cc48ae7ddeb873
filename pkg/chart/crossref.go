package chart

import (
	"sort"

	json "github.com/goccy/go-json"
)

// ValidateCrossReferences checks the five relational invariants between the
// series declarations and the data rows, in a fixed order so the first
// failure is deterministic:
//
//  1. every series key is unique,
//  2. no row carries a key that no series declares,
//  3. every declared series key appears in at least one row,
//  4. all rows expose the identical key set (row 0 is the reference),
//  5. every series cell is numeric or null.
//
// The cheap set-membership checks run before the per-cell type scan, so a
// document failing invariant 2 or 3 never pays for 5. Within a row, keys are
// visited in sorted order so the reported violation does not depend on map
// iteration.
//
// Together, invariants 2-4 imply that in a valid document every row's key set
// equals the declared series key set exactly.
//
// On success the rows are resolved into typed cells and an immutable
// Document is returned. The input is never mutated.
func ValidateCrossReferences(raw *RawDocument) (*Document, error) {
	// 1. Duplicate series keys.
	seriesKeys := make(map[string]struct{}, len(raw.Series))
	for _, s := range raw.Series {
		if _, dup := seriesKeys[s.Key]; dup {
			return nil, &CrossRefError{Kind: ErrDuplicateSeriesKey, Row: -1, Key: s.Key}
		}
		seriesKeys[s.Key] = struct{}{}
	}

	// 2. Undeclared keys in rows.
	used := make(map[string]bool, len(seriesKeys))
	for i, row := range raw.Rows {
		for _, k := range rowKeys(row) {
			if _, ok := seriesKeys[k]; !ok {
				return nil, &CrossRefError{Kind: ErrUndeclaredDataKey, Row: i, Key: k}
			}
			used[k] = true
		}
	}

	// 3. Orphan series keys, in declaration order.
	for _, s := range raw.Series {
		if !used[s.Key] {
			return nil, &CrossRefError{Kind: ErrOrphanSeriesKey, Row: -1, Key: s.Key}
		}
	}

	// 4. Uniform row shape against row 0.
	ref := rowKeys(raw.Rows[0])
	for i, row := range raw.Rows[1:] {
		keys := rowKeys(row)
		if missing, extra := diffKeys(ref, keys); len(missing) > 0 || len(extra) > 0 {
			return nil, &CrossRefError{
				Kind:    ErrInconsistentRowShape,
				Row:     i + 1,
				Missing: missing,
				Extra:   extra,
			}
		}
	}

	// 5. Per-cell numeric scan, rows in order, keys in declaration order.
	for i, row := range raw.Rows {
		for _, s := range raw.Series {
			v, ok := row[s.Key]
			if !ok {
				continue // unreachable after 4, but cheap to keep the scan total
			}
			if v == nil {
				continue
			}
			if _, ok := toFloat(v); !ok {
				return nil, &CrossRefError{Kind: ErrNonNumericSeriesValue, Row: i, Key: s.Key, Value: v}
			}
		}
	}

	return build(raw), nil
}

// Validate runs both validation phases on a candidate.
func Validate(c Candidate) (*Document, error) {
	raw, err := ValidateStructure(c)
	if err != nil {
		return nil, err
	}
	return ValidateCrossReferences(raw)
}

// build resolves the loosely typed rows into the immutable document. It runs
// only after all five invariants hold, so every conversion is total.
func build(raw *RawDocument) *Document {
	series := make([]SeriesDef, len(raw.Series))
	copy(series, raw.Series)

	rows := make([]DataRow, len(raw.Rows))
	for i, row := range raw.Rows {
		values := make(map[string]Value, len(series))
		for _, s := range series {
			cell := row[s.Key]
			if cell == nil {
				values[s.Key] = Null()
				continue
			}
			if n, ok := cell.(json.Number); ok {
				f, _ := n.Float64()
				values[s.Key] = numberLit(f, n.String())
				continue
			}
			f, _ := toFloat(cell)
			values[s.Key] = Number(f)
		}
		rows[i] = DataRow{x: toXValue(row[XKey]), values: values}
	}

	return &Document{meta: raw.Meta.clone(), series: series, rows: rows}
}

// rowKeys returns the row's non-x keys in sorted order.
func rowKeys(row map[string]any) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		if k == XKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// diffKeys compares two sorted key slices and returns the symmetric
// difference: keys only in ref (missing) and keys only in got (extra).
func diffKeys(ref, got []string) (missing, extra []string) {
	refSet := make(map[string]bool, len(ref))
	for _, k := range ref {
		refSet[k] = true
	}
	gotSet := make(map[string]bool, len(got))
	for _, k := range got {
		gotSet[k] = true
	}
	for _, k := range ref {
		if !gotSet[k] {
			missing = append(missing, k)
		}
	}
	for _, k := range got {
		if !refSet[k] {
			extra = append(extra, k)
		}
	}
	return missing, extra
}

// toFloat converts a decoded JSON value to float64 if it is numeric.
// json.Number is the common case (DecodeCandidate uses UseNumber); float64
// and the integer types cover candidates built programmatically.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// toXValue converts a structurally valid x cell into a typed category value.
// Numeric cells keep their input literal so serialization is lossless.
func toXValue(v any) XValue {
	if s, ok := v.(string); ok {
		return XString(s)
	}
	if n, ok := v.(json.Number); ok {
		f, _ := n.Float64()
		return xNumberLit(f, n.String())
	}
	f, _ := toFloat(v)
	return XNumber(f)
}
