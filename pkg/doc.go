// Package pkg provides the core libraries for chartdoc document processing.
//
// # Overview
//
// Chartdoc turns loosely structured chart extractions into validated canonical
// documents and projects them into the shapes charting libraries consume. The
// pkg directory is organized into five main areas:
//
//  1. [chart] - The canonical document model and its two validation phases
//  2. [transform] - Pure projections from documents to renderer shapes
//  3. [ingest] - Reading extraction result batches
//  4. [cache] / [store] - Shape caching and document persistence
//  5. [pipeline] - Orchestration (validate → transform → store)
//
// # Architecture
//
// The typical data flow through chartdoc:
//
//	Extraction results (OCR batches, API uploads)
//	         ↓
//	    [ingest] package (decode, strip fences)
//	         ↓
//	    [chart] package (structural + cross-reference validation)
//	         ↓
//	    [transform] package (row-oriented, dataset-triple, label-aligned)
//	         ↓
//	    [store] / HTTP responses
//
// # Quick Start
//
//	candidate, err := chart.DecodeCandidateBytes(data)
//	if err != nil {
//	    return err
//	}
//	doc, err := chart.Validate(candidate)
//	if err != nil {
//	    return err
//	}
//	shape, err := transform.Marshal(doc, transform.TargetLabelAligned)
package pkg
