package chart

import (
	"strings"
	"testing"
)

// decode is a test helper that decodes a JSON literal into a candidate.
func decode(t *testing.T, src string) Candidate {
	t.Helper()
	c, err := DecodeCandidate(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeCandidate: %v", err)
	}
	return c
}

const validDoc = `{
	"meta": {"title": "Monthly Sales", "type": "bar",
		"xAxis": {"label": "Month", "type": "category"},
		"yAxis": {"label": "Revenue", "unit": "USD"}},
	"series": [{"key": "sales", "label": "Sales"}],
	"data": [{"x": "Jan", "sales": 100}, {"x": "Feb", "sales": 120}]
}`

func TestValidateStructureOK(t *testing.T) {
	raw, err := ValidateStructure(decode(t, validDoc))
	if err != nil {
		t.Fatalf("ValidateStructure: %v", err)
	}
	if raw.Meta.Title != "Monthly Sales" {
		t.Errorf("Title = %q", raw.Meta.Title)
	}
	if raw.Meta.Type != TypeBar {
		t.Errorf("Type = %q", raw.Meta.Type)
	}
	if raw.Meta.XAxis == nil || raw.Meta.XAxis.Label != "Month" || raw.Meta.XAxis.Type != XAxisCategory {
		t.Errorf("XAxis = %+v", raw.Meta.XAxis)
	}
	if raw.Meta.YAxis == nil || raw.Meta.YAxis.Unit != "USD" {
		t.Errorf("YAxis = %+v", raw.Meta.YAxis)
	}
	if len(raw.Series) != 1 || raw.Series[0].Key != "sales" {
		t.Errorf("Series = %+v", raw.Series)
	}
	if len(raw.Rows) != 2 {
		t.Errorf("Rows = %d", len(raw.Rows))
	}
}

func TestValidateStructureOptionalAxesAbsent(t *testing.T) {
	src := `{"meta": {"title": "T", "type": "line"},
		"series": [{"key": "a", "label": "A"}],
		"data": [{"x": 1, "a": 2}]}`
	raw, err := ValidateStructure(decode(t, src))
	if err != nil {
		t.Fatalf("absent axes should not be an error: %v", err)
	}
	if raw.Meta.XAxis != nil || raw.Meta.YAxis != nil {
		t.Errorf("axes should be nil when absent, got %+v / %+v", raw.Meta.XAxis, raw.Meta.YAxis)
	}
}

func TestValidateStructureViolations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		path string
		code string
	}{
		{
			name: "missing meta",
			src:  `{"series": [{"key": "a", "label": "A"}], "data": [{"x": 1, "a": 2}]}`,
			path: "meta",
			code: CodeRequired,
		},
		{
			name: "meta not object",
			src:  `{"meta": [], "series": [], "data": []}`,
			path: "meta",
			code: CodeInvalidType,
		},
		{
			name: "missing title",
			src:  `{"meta": {"type": "bar"}, "series": [{"key": "a", "label": "A"}], "data": [{"x": 1}]}`,
			path: "meta.title",
			code: CodeRequired,
		},
		{
			name: "empty title",
			src:  `{"meta": {"title": "", "type": "bar"}, "series": [{"key": "a", "label": "A"}], "data": [{"x": 1}]}`,
			path: "meta.title",
			code: CodeEmpty,
		},
		{
			name: "title not string",
			src:  `{"meta": {"title": 3, "type": "bar"}, "series": [{"key": "a", "label": "A"}], "data": [{"x": 1}]}`,
			path: "meta.title",
			code: CodeInvalidType,
		},
		{
			name: "type outside enum",
			src:  `{"meta": {"title": "T", "type": "heatmap"}, "series": [{"key": "a", "label": "A"}], "data": [{"x": 1}]}`,
			path: "meta.type",
			code: CodeInvalidEnum,
		},
		{
			name: "xAxis type outside enum",
			src: `{"meta": {"title": "T", "type": "bar", "xAxis": {"type": "log"}},
				"series": [{"key": "a", "label": "A"}], "data": [{"x": 1}]}`,
			path: "meta.xAxis.type",
			code: CodeInvalidEnum,
		},
		{
			name: "yAxis unit not string",
			src: `{"meta": {"title": "T", "type": "bar", "yAxis": {"unit": 5}},
				"series": [{"key": "a", "label": "A"}], "data": [{"x": 1}]}`,
			path: "meta.yAxis.unit",
			code: CodeInvalidType,
		},
		{
			name: "missing series",
			src:  `{"meta": {"title": "T", "type": "bar"}, "data": [{"x": 1}]}`,
			path: "series",
			code: CodeRequired,
		},
		{
			name: "empty series",
			src:  `{"meta": {"title": "T", "type": "bar"}, "series": [], "data": [{"x": 1}]}`,
			path: "series",
			code: CodeEmpty,
		},
		{
			name: "series element not object",
			src:  `{"meta": {"title": "T", "type": "bar"}, "series": ["a"], "data": [{"x": 1}]}`,
			path: "series[0]",
			code: CodeInvalidType,
		},
		{
			name: "series key missing",
			src:  `{"meta": {"title": "T", "type": "bar"}, "series": [{"label": "A"}], "data": [{"x": 1}]}`,
			path: "series[0].key",
			code: CodeRequired,
		},
		{
			name: "series label empty",
			src:  `{"meta": {"title": "T", "type": "bar"}, "series": [{"key": "a", "label": ""}], "data": [{"x": 1}]}`,
			path: "series[0].label",
			code: CodeEmpty,
		},
		{
			name: "missing data",
			src:  `{"meta": {"title": "T", "type": "bar"}, "series": [{"key": "a", "label": "A"}]}`,
			path: "data",
			code: CodeRequired,
		},
		{
			name: "empty data",
			src:  `{"meta": {"title": "T", "type": "bar"}, "series": [{"key": "a", "label": "A"}], "data": []}`,
			path: "data",
			code: CodeEmpty,
		},
		{
			name: "row not object",
			src:  `{"meta": {"title": "T", "type": "bar"}, "series": [{"key": "a", "label": "A"}], "data": [5]}`,
			path: "data[0]",
			code: CodeInvalidType,
		},
		{
			name: "row missing x",
			src:  `{"meta": {"title": "T", "type": "bar"}, "series": [{"key": "a", "label": "A"}], "data": [{"a": 2}]}`,
			path: "data[0].x",
			code: CodeRequired,
		},
		{
			name: "x not string or number",
			src:  `{"meta": {"title": "T", "type": "bar"}, "series": [{"key": "a", "label": "A"}], "data": [{"x": true, "a": 2}]}`,
			path: "data[0].x",
			code: CodeInvalidType,
		},
		{
			name: "second row not object",
			src:  `{"meta": {"title": "T", "type": "bar"}, "series": [{"key": "a", "label": "A"}], "data": [{"x": 1, "a": 2}, "oops"]}`,
			path: "data[1]",
			code: CodeInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateStructure(decode(t, tt.src))
			if err == nil {
				t.Fatal("expected a structural error")
			}
			se, ok := err.(*StructuralError)
			if !ok {
				t.Fatalf("error type = %T, want *StructuralError", err)
			}
			if se.Path != tt.path {
				t.Errorf("Path = %q, want %q", se.Path, tt.path)
			}
			if se.Code != tt.code {
				t.Errorf("Code = %q, want %q", se.Code, tt.code)
			}
		})
	}
}

func TestDecodeCandidateNonObject(t *testing.T) {
	_, err := DecodeCandidate(strings.NewReader(`[1, 2, 3]`))
	se, ok := err.(*StructuralError)
	if !ok {
		t.Fatalf("error type = %T, want *StructuralError", err)
	}
	if se.Code != CodeInvalidType || se.Got != "array" {
		t.Errorf("unexpected error: %+v", se)
	}
}

func TestValidateStructurePure(t *testing.T) {
	c := decode(t, validDoc)
	if _, err := ValidateStructure(c); err != nil {
		t.Fatal(err)
	}
	// A second run over the same candidate must see identical input.
	if _, err := ValidateStructure(c); err != nil {
		t.Errorf("second run differs: %v", err)
	}
}
