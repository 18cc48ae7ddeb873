package chart

import (
	"fmt"
	"sort"
	"strings"
)

// RawDocument is the output of structural validation: metadata and series are
// fully typed, data rows remain loosely typed until the cross-reference phase
// resolves them against the series declarations.
type RawDocument struct {
	Meta   Meta
	Series []SeriesDef
	Rows   []map[string]any
}

// ValidateStructure checks that the candidate has every required field with
// the right primitive type. It fails fast: the returned error describes the
// first violation encountered, with the dotted path of the offending field.
// Optional fields (meta.xAxis, meta.yAxis) are validated only when present.
//
// The function is pure; it never mutates the candidate.
func ValidateStructure(c Candidate) (*RawDocument, error) {
	meta, err := validateMeta(c)
	if err != nil {
		return nil, err
	}
	series, err := validateSeries(c)
	if err != nil {
		return nil, err
	}
	rows, err := validateData(c)
	if err != nil {
		return nil, err
	}
	return &RawDocument{Meta: meta, Series: series, Rows: rows}, nil
}

func validateMeta(c Candidate) (Meta, error) {
	var meta Meta

	raw, ok := c["meta"]
	if !ok {
		return meta, required("meta", "object")
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return meta, wrongType("meta", "object", raw)
	}

	title, err := requiredString(obj, "meta", "title")
	if err != nil {
		return meta, err
	}
	meta.Title = title

	typ, err := requiredString(obj, "meta", "type")
	if err != nil {
		return meta, err
	}
	if !ValidTypes[typ] {
		return meta, &StructuralError{
			Path: "meta.type",
			Code: CodeInvalidEnum,
			Want: enumWant(ValidTypes),
			Got:  fmt.Sprintf("%q", typ),
		}
	}
	meta.Type = typ

	if rawX, ok := obj["xAxis"]; ok {
		x, err := validateXAxis(rawX)
		if err != nil {
			return meta, err
		}
		meta.XAxis = x
	}
	if rawY, ok := obj["yAxis"]; ok {
		y, err := validateYAxis(rawY)
		if err != nil {
			return meta, err
		}
		meta.YAxis = y
	}
	return meta, nil
}

func validateXAxis(raw any) (*XAxis, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, wrongType("meta.xAxis", "object", raw)
	}
	var x XAxis
	if v, ok := obj["label"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, wrongType("meta.xAxis.label", "string", v)
		}
		x.Label = s
	}
	if v, ok := obj["type"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, wrongType("meta.xAxis.type", "string", v)
		}
		if !ValidXAxisTypes[s] {
			return nil, &StructuralError{
				Path: "meta.xAxis.type",
				Code: CodeInvalidEnum,
				Want: enumWant(ValidXAxisTypes),
				Got:  fmt.Sprintf("%q", s),
			}
		}
		x.Type = s
	}
	return &x, nil
}

func validateYAxis(raw any) (*YAxis, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, wrongType("meta.yAxis", "object", raw)
	}
	var y YAxis
	if v, ok := obj["label"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, wrongType("meta.yAxis.label", "string", v)
		}
		y.Label = s
	}
	if v, ok := obj["unit"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, wrongType("meta.yAxis.unit", "string", v)
		}
		y.Unit = s
	}
	return &y, nil
}

func validateSeries(c Candidate) ([]SeriesDef, error) {
	raw, ok := c["series"]
	if !ok {
		return nil, required("series", "array")
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, wrongType("series", "array", raw)
	}
	if len(arr) == 0 {
		return nil, &StructuralError{Path: "series", Code: CodeEmpty, Want: "series array"}
	}

	series := make([]SeriesDef, 0, len(arr))
	for i, el := range arr {
		path := fmt.Sprintf("series[%d]", i)
		obj, ok := el.(map[string]any)
		if !ok {
			return nil, wrongType(path, "object", el)
		}
		key, err := requiredString(obj, path, "key")
		if err != nil {
			return nil, err
		}
		label, err := requiredString(obj, path, "label")
		if err != nil {
			return nil, err
		}
		series = append(series, SeriesDef{Key: key, Label: label})
	}
	return series, nil
}

func validateData(c Candidate) ([]map[string]any, error) {
	raw, ok := c["data"]
	if !ok {
		return nil, required("data", "array")
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, wrongType("data", "array", raw)
	}
	if len(arr) == 0 {
		return nil, &StructuralError{Path: "data", Code: CodeEmpty, Want: "data array"}
	}

	rows := make([]map[string]any, 0, len(arr))
	for i, el := range arr {
		path := fmt.Sprintf("data[%d]", i)
		obj, ok := el.(map[string]any)
		if !ok {
			return nil, wrongType(path, "object", el)
		}
		x, ok := obj[XKey]
		if !ok {
			return nil, required(path+".x", "string or number")
		}
		switch x.(type) {
		case string:
		default:
			if _, ok := toFloat(x); !ok {
				return nil, wrongType(path+".x", "string or number", x)
			}
		}
		rows = append(rows, obj)
	}
	return rows, nil
}

// =============================================================================
// Helpers
// =============================================================================

func required(path, want string) *StructuralError {
	return &StructuralError{Path: path, Code: CodeRequired, Want: want}
}

func wrongType(path, want string, got any) *StructuralError {
	return &StructuralError{Path: path, Code: CodeInvalidType, Want: want, Got: typeName(got)}
}

// requiredString fetches a required non-empty string field from obj.
func requiredString(obj map[string]any, parent, field string) (string, error) {
	path := parent + "." + field
	v, ok := obj[field]
	if !ok {
		return "", required(path, "string")
	}
	s, ok := v.(string)
	if !ok {
		return "", wrongType(path, "string", v)
	}
	if s == "" {
		return "", &StructuralError{Path: path, Code: CodeEmpty, Want: "string"}
	}
	return s, nil
}

// enumWant renders an allowed-value set as "one of a|b|c" with stable order.
func enumWant(set map[string]bool) string {
	vals := make([]string, 0, len(set))
	for v := range set {
		vals = append(vals, v)
	}
	sort.Strings(vals)
	return "one of " + strings.Join(vals, "|")
}
