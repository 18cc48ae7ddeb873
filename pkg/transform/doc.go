// Package transform projects a validated chart document into the input
// shapes of the supported charting front ends.
//
// All three projections are pure and total: they accept only a validated
// [chart.Document], so there is no error path, and they allocate their output
// from scratch, so nothing aliases the document. Row order in the document
// determines array order in every output, and series declaration order
// determines series/dataset order.
//
// The targets are:
//
//   - [ToRowOriented]: rows plus dataKeys, for row-oriented consumers.
//   - [ToDatasetTriple]: dataset / xAxis / series triple.
//   - [ToLabelAligned]: one shared label array with positionally aligned
//     per-series columns; null cells stay null to preserve alignment.
//
// [Marshal] dispatches by target name for callers that select the shape at
// runtime (the pipeline, the HTTP API, the CLI).
package transform
