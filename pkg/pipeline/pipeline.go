// Package pipeline provides the core document pipeline for chartdoc.
//
// This package implements the complete validate → transform → store pipeline
// that can be used by CLI, API, and batch components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Validate: run structural then cross-reference validation to produce a
//     canonical document (or a typed rejection)
//  2. Transform: project the canonical document into the requested target
//     shapes, with transform outputs cached by content hash
//  3. Store: persist the canonical document as a three-JSON-column record
//     (optional)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, store, logger)
//	opts := pipeline.Options{
//	    Targets: transform.Targets(),
//	    Persist: true,
//	}
//	result, err := runner.Execute(ctx, candidate, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	shape := result.Shapes[transform.TargetLabelAligned]
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartdoc/pkg/chart"
	"github.com/matzehuels/chartdoc/pkg/store"
	"github.com/matzehuels/chartdoc/pkg/transform"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultCacheTTL is how long cached transform outputs live. Outputs are
// keyed by content hash, so staleness is impossible; the TTL only bounds
// cache growth.
const DefaultCacheTTL = 24 * time.Hour

// DefaultTargets is the set of shapes produced when the caller doesn't ask
// for specific ones.
func DefaultTargets() []string { return transform.Targets() }

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the document pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Targets are the transform shapes to produce. Empty means all.
	Targets []string `json:"targets,omitempty"`

	// Persist stores the canonical document after validation.
	Persist bool `json:"persist,omitempty"`

	// Refresh bypasses the transform output cache.
	Refresh bool `json:"refresh,omitempty"`

	// CacheTTL overrides DefaultCacheTTL when positive.
	CacheTTL time.Duration `json:"-"`

	// Logger overrides the runner's logger for this execution.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := transform.ValidateTargets(o.Targets); err != nil {
		return err
	}
	if len(o.Targets) == 0 {
		o.Targets = DefaultTargets()
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result Types
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the validated canonical document.
	Document *chart.Document

	// Hash is the content hash of the canonical serialization.
	Hash string

	// Record is the stored record, nil unless Persist was set.
	Record *store.Record

	// Shapes contains transformed outputs keyed by target name.
	Shapes map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which shapes hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SeriesCount   int
	RowCount      int
	ValidateTime  time.Duration
	TransformTime time.Duration
	StoreTime     time.Duration
}

// CacheInfo tracks cache hits per target.
type CacheInfo struct {
	ShapeHits map[string]bool // target -> came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateTarget checks that a transform target name is valid.
func ValidateTarget(target string) error {
	return transform.ValidateTarget(target)
}

// ValidateTargets checks that all transform target names are valid.
func ValidateTargets(targets []string) error {
	return transform.ValidateTargets(targets)
}

// describeVerdict renders a one-line verdict for logging.
func describeVerdict(err error) string {
	if err == nil {
		return "valid"
	}
	return fmt.Sprintf("invalid: %v", err)
}
