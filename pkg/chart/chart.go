package chart

import (
	"bytes"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Chart types.
const (
	TypeBar     = "bar"
	TypeLine    = "line"
	TypePie     = "pie"
	TypeScatter = "scatter"
	TypeArea    = "area"
)

// ValidTypes is the set of supported chart types.
var ValidTypes = map[string]bool{
	TypeBar:     true,
	TypeLine:    true,
	TypePie:     true,
	TypeScatter: true,
	TypeArea:    true,
}

// X-axis value types.
const (
	XAxisCategory = "category"
	XAxisNumber   = "number"
	XAxisDate     = "date"
)

// ValidXAxisTypes is the set of supported x-axis value types.
var ValidXAxisTypes = map[string]bool{
	XAxisCategory: true,
	XAxisNumber:   true,
	XAxisDate:     true,
}

// XKey is the reserved key under which every data row stores its category
// value. It can never be used as a series key.
const XKey = "x"

// =============================================================================
// Metadata
// =============================================================================

// XAxis describes the category axis. Both fields are optional.
type XAxis struct {
	Label string `json:"label,omitempty" bson:"label,omitempty"`
	Type  string `json:"type,omitempty" bson:"type,omitempty"` // one of ValidXAxisTypes
}

// YAxis describes the value axis. Both fields are optional.
type YAxis struct {
	Label string `json:"label,omitempty" bson:"label,omitempty"`
	Unit  string `json:"unit,omitempty" bson:"unit,omitempty"`
}

// Meta holds the document-level chart metadata.
type Meta struct {
	Title string `json:"title" bson:"title"`
	Type  string `json:"type" bson:"type"` // one of ValidTypes
	XAxis *XAxis `json:"xAxis,omitempty" bson:"x_axis,omitempty"`
	YAxis *YAxis `json:"yAxis,omitempty" bson:"y_axis,omitempty"`
}

// clone returns a deep copy so Document accessors never leak shared pointers.
func (m Meta) clone() Meta {
	out := m
	if m.XAxis != nil {
		x := *m.XAxis
		out.XAxis = &x
	}
	if m.YAxis != nil {
		y := *m.YAxis
		out.YAxis = &y
	}
	return out
}

// SeriesDef declares one named series of the data grid. Key must be unique
// across the document; Label is the human-readable name consumers display.
type SeriesDef struct {
	Key   string `json:"key" bson:"key"`
	Label string `json:"label" bson:"label"`
}

// =============================================================================
// Cell Values
// =============================================================================

// Value is one series cell: a number, or null meaning "not measured".
// Null cells are preserved through every transformation, never coerced to
// zero. Cells decoded from input additionally keep the original number
// literal, so canonical serialization emits it byte-for-byte even when the
// value does not fit a float64 exactly (integers beyond 2^53).
type Value struct {
	Float float64
	Valid bool   // false means null
	lit   string // original JSON literal, empty for programmatic values
}

// Number returns a measured value.
func Number(f float64) Value { return Value{Float: f, Valid: true} }

// numberLit returns a measured value decoded from the JSON literal lit.
func numberLit(f float64, lit string) Value {
	return Value{Float: f, Valid: true, lit: lit}
}

// Null returns the explicit "not measured" value.
func Null() Value { return Value{} }

// MarshalJSON encodes the value as a JSON number, or null when not measured.
// The original literal is emitted verbatim when the value came from input.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	if v.lit != "" {
		return []byte(v.lit), nil
	}
	return []byte(strconv.FormatFloat(v.Float, 'g', -1, 64)), nil
}

// XValue is a row's category cell: either text or a number. Numeric values
// decoded from input keep their original literal, like series cells.
// The zero value is the empty string.
type XValue struct {
	str   string
	num   float64
	isNum bool
	lit   string
}

// XString returns a textual category value.
func XString(s string) XValue { return XValue{str: s} }

// XNumber returns a numeric category value.
func XNumber(f float64) XValue { return XValue{num: f, isNum: true} }

// xNumberLit returns a numeric category value decoded from the literal lit.
func xNumberLit(f float64, lit string) XValue {
	return XValue{num: f, isNum: true, lit: lit}
}

// IsNumber reports whether the category value is numeric.
func (x XValue) IsNumber() bool { return x.isNum }

// Number returns the numeric category value (0 for textual values).
func (x XValue) Number() float64 { return x.num }

// String returns the textual value, or the formatted number for numeric ones.
func (x XValue) String() string {
	if x.isNum {
		if x.lit != "" {
			return x.lit
		}
		return strconv.FormatFloat(x.num, 'g', -1, 64)
	}
	return x.str
}

// Any returns the category value as a plain string or float64, the shapes
// JSON consumers expect.
func (x XValue) Any() any {
	if x.isNum {
		return x.num
	}
	return x.str
}

// MarshalJSON encodes the category value as a JSON string or number.
// The original literal is emitted verbatim when the value came from input.
func (x XValue) MarshalJSON() ([]byte, error) {
	if x.isNum {
		if x.lit != "" {
			return []byte(x.lit), nil
		}
		return []byte(strconv.FormatFloat(x.num, 'g', -1, 64)), nil
	}
	return json.Marshal(x.str)
}

// =============================================================================
// Rows
// =============================================================================

// DataRow is one validated data point: the category value plus exactly one
// cell per declared series key. Rows are only ever built by the
// cross-reference validator, so the per-series map is complete and every cell
// is numeric or null.
type DataRow struct {
	x      XValue
	values map[string]Value
}

// X returns the row's category value.
func (r DataRow) X() XValue { return r.x }

// Value returns the cell stored under key. ok is false if the key is not a
// declared series key of the owning document.
func (r DataRow) Value(key string) (v Value, ok bool) {
	v, ok = r.values[key]
	return v, ok
}

// =============================================================================
// Document
// =============================================================================

// Document is a chart document that has passed both validation phases.
// It is immutable: all fields are private and accessors return copies, so the
// validated invariants hold for the document's entire lifetime. Construct one
// via ValidateCrossReferences (or the ReadDocument helpers); any edit builds a
// new candidate and revalidates.
type Document struct {
	meta   Meta
	series []SeriesDef
	rows   []DataRow
}

// Meta returns a copy of the document metadata.
func (d *Document) Meta() Meta { return d.meta.clone() }

// Series returns a copy of the ordered series declarations.
func (d *Document) Series() []SeriesDef {
	out := make([]SeriesDef, len(d.series))
	copy(out, d.series)
	return out
}

// SeriesKeys returns the declared series keys in declaration order.
func (d *Document) SeriesKeys() []string {
	keys := make([]string, len(d.series))
	for i, s := range d.series {
		keys[i] = s.Key
	}
	return keys
}

// Rows returns a copy of the ordered data rows.
func (d *Document) Rows() []DataRow {
	out := make([]DataRow, len(d.rows))
	copy(out, d.rows)
	return out
}

// Row returns the data row at index i.
func (d *Document) Row(i int) DataRow { return d.rows[i] }

// SeriesCount returns the number of declared series.
func (d *Document) SeriesCount() int { return len(d.series) }

// RowCount returns the number of data rows.
func (d *Document) RowCount() int { return len(d.rows) }

// =============================================================================
// Serialization
// =============================================================================

// MarshalJSON encodes the canonical {meta, series, data} shape. Row objects
// list "x" first and then every series key in declaration order, so output is
// deterministic for a given document.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"meta":`)
	meta, err := json.Marshal(d.meta)
	if err != nil {
		return nil, err
	}
	buf.Write(meta)
	buf.WriteString(`,"series":`)
	series, err := json.Marshal(d.series)
	if err != nil {
		return nil, err
	}
	buf.Write(series)
	buf.WriteString(`,"data":`)
	data, err := d.DataJSON()
	if err != nil {
		return nil, err
	}
	buf.Write(data)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MetaJSON returns the metadata as an independently valid JSON document.
// Together with SeriesJSON and DataJSON it forms the three-column shape the
// persistence boundary stores.
func (d *Document) MetaJSON() ([]byte, error) {
	return json.Marshal(d.meta)
}

// SeriesJSON returns the series declarations as an independently valid JSON
// array.
func (d *Document) SeriesJSON() ([]byte, error) {
	return json.Marshal(d.series)
}

// DataJSON returns the data rows as an independently valid JSON array.
func (d *Document) DataJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range d.rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := d.writeRow(&buf, row); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// writeRow emits one row object with "x" first and series keys in declaration
// order. Valid documents have every series key in every row, so the loop is
// total.
func (d *Document) writeRow(buf *bytes.Buffer, row DataRow) error {
	buf.WriteString(`{"x":`)
	x, err := row.x.MarshalJSON()
	if err != nil {
		return err
	}
	buf.Write(x)
	for _, s := range d.series {
		v, ok := row.values[s.Key]
		if !ok {
			return fmt.Errorf("row missing declared series key %q", s.Key)
		}
		key, err := json.Marshal(s.Key)
		if err != nil {
			return err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		cell, err := v.MarshalJSON()
		if err != nil {
			return err
		}
		buf.Write(cell)
	}
	buf.WriteByte('}')
	return nil
}
