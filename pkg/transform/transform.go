package transform

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/chartdoc/pkg/chart"
)

// Target names for the supported projections.
const (
	TargetRowOriented   = "row-oriented"
	TargetDatasetTriple = "dataset-triple"
	TargetLabelAligned  = "label-aligned"
)

// ValidTargets is the set of supported transformation targets.
var ValidTargets = map[string]bool{
	TargetRowOriented:   true,
	TargetDatasetTriple: true,
	TargetLabelAligned:  true,
}

// Targets lists the supported target names in stable order.
func Targets() []string {
	return []string{TargetRowOriented, TargetDatasetTriple, TargetLabelAligned}
}

// ValidateTarget checks that a target name is valid.
func ValidateTarget(target string) error {
	if !ValidTargets[target] {
		return fmt.Errorf("invalid target: %q (must be one of: %s, %s, %s)",
			target, TargetRowOriented, TargetDatasetTriple, TargetLabelAligned)
	}
	return nil
}

// ValidateTargets checks that all target names are valid.
func ValidateTargets(targets []string) error {
	for _, t := range targets {
		if err := ValidateTarget(t); err != nil {
			return err
		}
	}
	return nil
}

// Marshal projects doc into the named target shape and returns its JSON.
// The only possible error is an unknown target name.
func Marshal(doc *chart.Document, target string) ([]byte, error) {
	switch target {
	case TargetRowOriented:
		return json.Marshal(ToRowOriented(doc))
	case TargetDatasetTriple:
		return json.Marshal(ToDatasetTriple(doc))
	case TargetLabelAligned:
		return json.Marshal(ToLabelAligned(doc))
	default:
		return nil, ValidateTarget(target)
	}
}

// Row is one row-oriented data point: the "x" entry plus one entry per series
// key. Null cells are carried as nil values.
type Row map[string]any

// newRow materializes one document row as a plain map. The values are fresh
// scalars, so mutating the result cannot touch the document.
func newRow(doc *chart.Document, r chart.DataRow) Row {
	row := make(Row, doc.SeriesCount()+1)
	row[chart.XKey] = r.X().Any()
	for _, key := range doc.SeriesKeys() {
		v, _ := r.Value(key)
		if v.Valid {
			row[key] = v.Float
		} else {
			row[key] = nil
		}
	}
	return row
}
