package transform

import "github.com/matzehuels/chartdoc/pkg/chart"

// RowOriented is the row-oriented-with-dataKeys shape: the data rows pass
// through unchanged (the canonical form is already row-oriented), plus the
// key metadata the consumer needs to read them.
type RowOriented struct {
	Rows       []Row    `json:"rows"`
	XKey       string   `json:"xKey"`
	SeriesKeys []string `json:"seriesKeys"`
}

// ToRowOriented projects doc into the row-oriented shape. Row order and
// series key order match the document exactly.
func ToRowOriented(doc *chart.Document) RowOriented {
	rows := make([]Row, doc.RowCount())
	for i, r := range doc.Rows() {
		rows[i] = newRow(doc, r)
	}
	return RowOriented{
		Rows:       rows,
		XKey:       chart.XKey,
		SeriesKeys: doc.SeriesKeys(),
	}
}
