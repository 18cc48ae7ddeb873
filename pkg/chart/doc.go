// Package chart defines the canonical chart document model and its two-phase
// validation.
//
// A chart document describes library-agnostic chart contents: metadata (title,
// chart type, axes), an ordered list of series declarations, and row-oriented
// data points. Documents arrive as untrusted JSON from an upstream extraction
// step and must be validated before anything downstream touches them.
//
// # Validation phases
//
// Validation is split into two phases that run in a fixed order:
//
//  1. Structural: every required field is present and has the right primitive
//     type ([ValidateStructure]). Fails fast with the dotted path of the first
//     violation.
//  2. Cross-referential: the series declarations and the data rows are
//     mutually consistent ([ValidateCrossReferences]). Five invariants are
//     checked in a fixed order so the first failure is deterministic.
//
// Only the cross-reference phase can produce a [Document]. A Document is
// immutable: it exposes accessors but no mutators, so anything holding one can
// rely on the validated invariants forever. Edits go back through a
// [Candidate] and revalidate.
//
// # Usage
//
// Validate a candidate decoded from JSON:
//
//	doc, err := chart.ReadDocument(r)
//	if err != nil {
//	    var xe *chart.CrossRefError
//	    if errors.As(err, &xe) {
//	        fmt.Println("invalid:", xe) // row index, key, offending value
//	    }
//	    return err
//	}
//	fmt.Println(doc.Meta().Title, doc.RowCount())
//
// The package never repairs input. An undeclared key or a non-numeric cell
// rejects the whole document rather than being dropped or coerced, because
// downstream consumers rely on the cross-referential guarantees holding
// exactly.
package chart
