package transform

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/chartdoc/pkg/chart"
)

// testDoc validates a JSON literal into a document for transformation tests.
func testDoc(t *testing.T, src string) *chart.Document {
	t.Helper()
	doc, err := chart.ReadDocument(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	return doc
}

const barDoc = `{
	"meta": {"title": "Monthly", "type": "bar", "xAxis": {"label": "Month"}},
	"series": [{"key": "sales", "label": "Sales"}, {"key": "costs", "label": "Costs"}],
	"data": [
		{"x": "Jan", "sales": 100, "costs": 40},
		{"x": "Feb", "sales": 120, "costs": null},
		{"x": "Mar", "sales": 90, "costs": 55}
	]
}`

func TestToRowOriented(t *testing.T) {
	doc := testDoc(t, barDoc)
	out := ToRowOriented(doc)

	if out.XKey != "x" {
		t.Errorf("XKey = %q", out.XKey)
	}
	if len(out.SeriesKeys) != 2 || out.SeriesKeys[0] != "sales" || out.SeriesKeys[1] != "costs" {
		t.Errorf("SeriesKeys = %v", out.SeriesKeys)
	}
	if len(out.Rows) != doc.RowCount() {
		t.Fatalf("row count = %d", len(out.Rows))
	}

	// Order preservation: rows[i].x == doc row i's x.
	for i, r := range doc.Rows() {
		if out.Rows[i]["x"] != r.X().Any() {
			t.Errorf("rows[%d].x = %v, want %v", i, out.Rows[i]["x"], r.X().Any())
		}
	}

	// Null stays null, numbers stay numbers.
	if out.Rows[0]["costs"] != 40.0 {
		t.Errorf("rows[0].costs = %v", out.Rows[0]["costs"])
	}
	if out.Rows[1]["costs"] != nil {
		t.Errorf("rows[1].costs = %v, want nil", out.Rows[1]["costs"])
	}
}

func TestToDatasetTriple(t *testing.T) {
	doc := testDoc(t, barDoc)
	out := ToDatasetTriple(doc)

	if len(out.XAxis) != 1 {
		t.Fatalf("xAxis count = %d", len(out.XAxis))
	}
	x := out.XAxis[0]
	if x.DataKey != "x" || x.Label != "Month" {
		t.Errorf("xAxis = %+v", x)
	}
	if x.ScaleType != ScaleTypeBand {
		t.Errorf("bar chart should use a band scale, got %q", x.ScaleType)
	}

	// Order preservation: series[j].dataKey == doc.series[j].key.
	for j, s := range doc.Series() {
		if out.Series[j].DataKey != s.Key || out.Series[j].Label != s.Label {
			t.Errorf("series[%d] = %+v, want %+v", j, out.Series[j], s)
		}
	}
	if len(out.Dataset) != doc.RowCount() {
		t.Errorf("dataset length = %d", len(out.Dataset))
	}
}

func TestToDatasetTripleNonBarScale(t *testing.T) {
	doc := testDoc(t, `{
		"meta": {"title": "T", "type": "line"},
		"series": [{"key": "a", "label": "A"}],
		"data": [{"x": 1, "a": 2}]
	}`)
	out := ToDatasetTriple(doc)
	if out.XAxis[0].ScaleType != "" {
		t.Errorf("non-bar chart should leave scaleType empty, got %q", out.XAxis[0].ScaleType)
	}
	if out.XAxis[0].Label != "" {
		t.Errorf("absent xAxis meta should leave label empty, got %q", out.XAxis[0].Label)
	}
}

func TestToLabelAligned(t *testing.T) {
	doc := testDoc(t, barDoc)
	out := ToLabelAligned(doc)

	// Round-trip properties: labels[i] == data[i].x and datasets[j].data[i]
	// == doc.data[i][series[j].key] (null preserved).
	rows := doc.Rows()
	if len(out.Labels) != len(rows) {
		t.Fatalf("labels length = %d", len(out.Labels))
	}
	for i, r := range rows {
		if out.Labels[i] != r.X() {
			t.Errorf("labels[%d] = %v, want %v", i, out.Labels[i], r.X())
		}
	}

	for j, s := range doc.Series() {
		ds := out.Datasets[j]
		if ds.Label != s.Label {
			t.Errorf("datasets[%d].label = %q, want %q", j, ds.Label, s.Label)
		}
		for i, r := range rows {
			v, _ := r.Value(s.Key)
			switch {
			case v.Valid && (ds.Data[i] == nil || *ds.Data[i] != v.Float):
				t.Errorf("datasets[%d].data[%d] = %v, want %v", j, i, ds.Data[i], v.Float)
			case !v.Valid && ds.Data[i] != nil:
				t.Errorf("datasets[%d].data[%d] = %v, want null", j, i, *ds.Data[i])
			}
		}
	}
}

func TestLabelAlignedJSON(t *testing.T) {
	doc := testDoc(t, `{
		"meta": {"title": "T", "type": "bar"},
		"series": [{"key": "sales", "label": "Sales"}],
		"data": [{"x": "Jan", "sales": 100}]
	}`)
	data, err := Marshal(doc, TargetLabelAligned)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"labels":["Jan"],"datasets":[{"label":"Sales","data":[100]}]}`
	if string(data) != want {
		t.Errorf("JSON = %s, want %s", data, want)
	}
}

func TestMarshalNullsSurviveJSON(t *testing.T) {
	doc := testDoc(t, barDoc)
	data, err := Marshal(doc, TargetLabelAligned)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Datasets []struct {
			Data []*float64 `json:"data"`
		} `json:"datasets"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	// costs for Feb (row 1) was null and must still be null.
	if decoded.Datasets[1].Data[1] != nil {
		t.Errorf("null was coerced to %v", *decoded.Datasets[1].Data[1])
	}
}

func TestMarshalUnknownTarget(t *testing.T) {
	doc := testDoc(t, barDoc)
	if _, err := Marshal(doc, "pivot-table"); err == nil {
		t.Error("unknown target should error")
	}
}

func TestValidateTargets(t *testing.T) {
	if err := ValidateTargets(Targets()); err != nil {
		t.Errorf("all built-in targets should validate: %v", err)
	}
	if err := ValidateTargets([]string{TargetRowOriented, "bogus"}); err == nil {
		t.Error("bogus target should fail")
	}
	if err := ValidateTargets(nil); err != nil {
		t.Errorf("empty targets should pass: %v", err)
	}
}

func TestOutputsDoNotAliasDocument(t *testing.T) {
	doc := testDoc(t, barDoc)
	out := ToRowOriented(doc)

	// Scribble over every output cell, then project again.
	for _, row := range out.Rows {
		for k := range row {
			row[k] = "clobbered"
		}
	}
	out.SeriesKeys[0] = "clobbered"

	again := ToRowOriented(doc)
	if again.Rows[0]["sales"] != 100.0 || again.SeriesKeys[0] != "sales" {
		t.Error("transform output aliases document state")
	}
}

func TestTransformDeterminism(t *testing.T) {
	doc := testDoc(t, barDoc)
	for _, target := range Targets() {
		first, err := Marshal(doc, target)
		if err != nil {
			t.Fatalf("Marshal(%s): %v", target, err)
		}
		for i := 0; i < 5; i++ {
			again, _ := Marshal(doc, target)
			if string(first) != string(again) {
				t.Fatalf("target %s output is not deterministic", target)
			}
		}
	}
}
