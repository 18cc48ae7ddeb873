package chart

import (
	"errors"
	"testing"
)

// validate is a test helper that runs both phases on a JSON literal.
func validate(t *testing.T, src string) (*Document, error) {
	t.Helper()
	return Validate(decode(t, src))
}

func mustValidate(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := validate(t, src)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return doc
}

func TestValidateOK(t *testing.T) {
	doc := mustValidate(t, `{
		"meta": {"title": "T", "type": "bar"},
		"series": [{"key": "sales", "label": "Sales"}, {"key": "costs", "label": "Costs"}],
		"data": [
			{"x": "Jan", "sales": 100, "costs": 40},
			{"x": "Feb", "sales": 120, "costs": null}
		]
	}`)

	if doc.SeriesCount() != 2 || doc.RowCount() != 2 {
		t.Fatalf("counts = %d series, %d rows", doc.SeriesCount(), doc.RowCount())
	}

	// Null is preserved as "not measured", not coerced to zero.
	v, ok := doc.Row(1).Value("costs")
	if !ok {
		t.Fatal("costs cell missing in row 1")
	}
	if v.Valid {
		t.Errorf("null cell became %v, want null", v.Float)
	}

	v, _ = doc.Row(0).Value("sales")
	if !v.Valid || v.Float != 100 {
		t.Errorf("sales cell = %+v, want 100", v)
	}
}

func TestCrossRefViolations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind error
		row  int
		key  string
	}{
		{
			name: "duplicate series key",
			src: `{"meta": {"title": "T", "type": "bar"},
				"series": [{"key": "sales", "label": "Sales"}, {"key": "sales", "label": "Also Sales"}],
				"data": [{"x": "Jan", "sales": 100}]}`,
			kind: ErrDuplicateSeriesKey,
			row:  -1,
			key:  "sales",
		},
		{
			name: "undeclared data key",
			src: `{"meta": {"title": "T", "type": "bar"},
				"series": [{"key": "revenue", "label": "Revenue"}],
				"data": [{"x": "Jan", "sales": 100}]}`,
			kind: ErrUndeclaredDataKey,
			row:  0,
			key:  "sales",
		},
		{
			name: "orphan series key",
			src: `{"meta": {"title": "T", "type": "bar"},
				"series": [{"key": "sales", "label": "Sales"}, {"key": "costs", "label": "Costs"}],
				"data": [{"x": "Jan", "sales": 100}]}`,
			kind: ErrOrphanSeriesKey,
			row:  -1,
			key:  "costs",
		},
		{
			name: "inconsistent row shape",
			src: `{"meta": {"title": "T", "type": "bar"},
				"series": [{"key": "sales", "label": "Sales"}, {"key": "revenue", "label": "Revenue"}],
				"data": [{"x": "Jan", "sales": 100, "revenue": 1}, {"x": "Feb", "revenue": 2}]}`,
			kind: ErrInconsistentRowShape,
			row:  1,
		},
		{
			name: "non-numeric series value",
			src: `{"meta": {"title": "T", "type": "bar"},
				"series": [{"key": "sales", "label": "Sales"}],
				"data": [{"x": "Jan", "sales": "N/A"}]}`,
			kind: ErrNonNumericSeriesValue,
			row:  0,
			key:  "sales",
		},
		{
			name: "boolean series value",
			src: `{"meta": {"title": "T", "type": "bar"},
				"series": [{"key": "sales", "label": "Sales"}],
				"data": [{"x": "Jan", "sales": true}]}`,
			kind: ErrNonNumericSeriesValue,
			row:  0,
			key:  "sales",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validate(t, tt.src)
			if err == nil {
				t.Fatal("expected a cross-reference error")
			}
			if !errors.Is(err, tt.kind) {
				t.Fatalf("error = %v, want kind %v", err, tt.kind)
			}
			var xe *CrossRefError
			if !errors.As(err, &xe) {
				t.Fatalf("error type = %T, want *CrossRefError", err)
			}
			if xe.Row != tt.row {
				t.Errorf("Row = %d, want %d", xe.Row, tt.row)
			}
			if tt.key != "" && xe.Key != tt.key {
				t.Errorf("Key = %q, want %q", xe.Key, tt.key)
			}
		})
	}
}

func TestCrossRefOrdering(t *testing.T) {
	// A document violating both invariant 2 (undeclared key) and invariant 5
	// (non-numeric value) must report the undeclared key: the cheap set checks
	// run before the per-cell scan.
	src := `{"meta": {"title": "T", "type": "bar"},
		"series": [{"key": "sales", "label": "Sales"}],
		"data": [{"x": "Jan", "sales": "N/A", "bogus": 1}]}`
	_, err := validate(t, src)
	if !errors.Is(err, ErrUndeclaredDataKey) {
		t.Fatalf("error = %v, want ErrUndeclaredDataKey first", err)
	}

	// Duplicate keys are checked before anything touches the rows.
	src = `{"meta": {"title": "T", "type": "bar"},
		"series": [{"key": "a", "label": "A"}, {"key": "a", "label": "A2"}],
		"data": [{"x": 1, "bogus": true}]}`
	_, err = validate(t, src)
	if !errors.Is(err, ErrDuplicateSeriesKey) {
		t.Fatalf("error = %v, want ErrDuplicateSeriesKey first", err)
	}
}

func TestCrossRefRowShapeDifference(t *testing.T) {
	src := `{"meta": {"title": "T", "type": "bar"},
		"series": [{"key": "sales", "label": "Sales"}, {"key": "costs", "label": "Costs"}],
		"data": [{"x": "Jan", "sales": 1, "costs": 2}, {"x": "Feb", "sales": 3}]}`
	_, err := validate(t, src)
	var xe *CrossRefError
	if !errors.As(err, &xe) {
		t.Fatalf("error = %v", err)
	}
	if xe.Row != 1 {
		t.Errorf("Row = %d, want 1", xe.Row)
	}
	if len(xe.Missing) != 1 || xe.Missing[0] != "costs" {
		t.Errorf("Missing = %v, want [costs]", xe.Missing)
	}
	if len(xe.Extra) != 0 {
		t.Errorf("Extra = %v, want empty", xe.Extra)
	}
}

// TestValidDocumentInvariants spot-checks the §8-style properties on the
// accessors of a validated document.
func TestValidDocumentInvariants(t *testing.T) {
	doc := mustValidate(t, `{
		"meta": {"title": "T", "type": "line"},
		"series": [{"key": "a", "label": "A"}, {"key": "b", "label": "B"}, {"key": "c", "label": "C"}],
		"data": [
			{"x": 1, "a": 10, "b": null, "c": 30},
			{"x": 2, "a": 11, "b": 21, "c": null},
			{"x": 3, "a": null, "b": 22, "c": 32}
		]
	}`)

	// Uniqueness: series keys pairwise distinct.
	seen := map[string]bool{}
	for _, k := range doc.SeriesKeys() {
		if seen[k] {
			t.Errorf("duplicate key %q survived validation", k)
		}
		seen[k] = true
	}

	// Closure + uniform shape: every row answers for exactly the declared keys.
	for i, row := range doc.Rows() {
		for _, k := range doc.SeriesKeys() {
			if _, ok := row.Value(k); !ok {
				t.Errorf("row %d missing declared key %q", i, k)
			}
		}
		if _, ok := row.Value("undeclared"); ok {
			t.Errorf("row %d answers for an undeclared key", i)
		}
	}
}

func TestDocumentAccessorsCopy(t *testing.T) {
	doc := mustValidate(t, `{
		"meta": {"title": "T", "type": "bar", "xAxis": {"label": "Month"}},
		"series": [{"key": "a", "label": "A"}],
		"data": [{"x": "Jan", "a": 1}]
	}`)

	// Mutating what accessors return must not affect the document.
	meta := doc.Meta()
	meta.Title = "changed"
	meta.XAxis.Label = "changed"
	series := doc.Series()
	series[0].Key = "changed"

	if doc.Meta().Title != "T" || doc.Meta().XAxis.Label != "Month" {
		t.Error("Meta() leaked mutable state")
	}
	if doc.Series()[0].Key != "a" {
		t.Error("Series() leaked mutable state")
	}
}
