package transform

import "github.com/matzehuels/chartdoc/pkg/chart"

// ScaleTypeBand is the scale type emitted for bar charts, whose x axis is a
// band scale rather than a continuous one.
const ScaleTypeBand = "band"

// DatasetTriple is the dataset/series/xAxis shape.
type DatasetTriple struct {
	Dataset []Row          `json:"dataset"`
	XAxis   []XAxisConfig  `json:"xAxis"`
	Series  []SeriesConfig `json:"series"`
}

// XAxisConfig configures the consumer's x axis: which dataset key to read and
// how to scale it.
type XAxisConfig struct {
	DataKey   string `json:"dataKey"`
	Label     string `json:"label,omitempty"`
	ScaleType string `json:"scaleType,omitempty"`
}

// SeriesConfig binds one visual series to its dataset key.
type SeriesConfig struct {
	DataKey string `json:"dataKey"`
	Label   string `json:"label"`
}

// ToDatasetTriple projects doc into the dataset/series/xAxis triple.
// Bar charts get a band scale; every other chart type leaves the scale type
// to the consumer's default. Dataset order follows row order, series order
// follows declaration order.
func ToDatasetTriple(doc *chart.Document) DatasetTriple {
	dataset := make([]Row, doc.RowCount())
	for i, r := range doc.Rows() {
		dataset[i] = newRow(doc, r)
	}

	meta := doc.Meta()
	xAxis := XAxisConfig{DataKey: chart.XKey}
	if meta.XAxis != nil {
		xAxis.Label = meta.XAxis.Label
	}
	if meta.Type == chart.TypeBar {
		xAxis.ScaleType = ScaleTypeBand
	}

	series := make([]SeriesConfig, doc.SeriesCount())
	for i, s := range doc.Series() {
		series[i] = SeriesConfig{DataKey: s.Key, Label: s.Label}
	}

	return DatasetTriple{
		Dataset: dataset,
		XAxis:   []XAxisConfig{xAxis},
		Series:  series,
	}
}
