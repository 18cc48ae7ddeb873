package transform

import "github.com/matzehuels/chartdoc/pkg/chart"

// LabelAligned is the column-oriented shape: one shared label array and one
// dataset per series, positionally aligned with the labels.
type LabelAligned struct {
	Labels   []chart.XValue `json:"labels"`
	Datasets []Dataset      `json:"datasets"`
}

// Dataset is one series column. Data[i] belongs to Labels[i]; a nil entry is
// an explicit null ("not measured") kept in place so alignment survives.
type Dataset struct {
	Label string     `json:"label"`
	Data  []*float64 `json:"data"`
}

// ToLabelAligned projects doc into the label-aligned column shape.
// Labels follow row order; datasets follow series declaration order. Null
// cells are materialized as JSON null rather than dropped or zeroed.
func ToLabelAligned(doc *chart.Document) LabelAligned {
	rows := doc.Rows()

	labels := make([]chart.XValue, len(rows))
	for i, r := range rows {
		labels[i] = r.X()
	}

	datasets := make([]Dataset, doc.SeriesCount())
	for j, s := range doc.Series() {
		data := make([]*float64, len(rows))
		for i, r := range rows {
			if v, ok := r.Value(s.Key); ok && v.Valid {
				f := v.Float
				data[i] = &f
			}
		}
		datasets[j] = Dataset{Label: s.Label, Data: data}
	}

	return LabelAligned{Labels: labels, Datasets: datasets}
}
