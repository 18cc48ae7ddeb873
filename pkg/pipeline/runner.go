package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartdoc/pkg/cache"
	"github.com/matzehuels/chartdoc/pkg/chart"
	"github.com/matzehuels/chartdoc/pkg/observability"
	"github.com/matzehuels/chartdoc/pkg/store"
	"github.com/matzehuels/chartdoc/pkg/transform"
)

// Runner encapsulates pipeline execution with caching and persistence.
// Both CLI and API use this to avoid duplicating stage logic.
//
// The Runner is stateless except for its collaborators - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different inputs, since every stage operates only on its own input and
// allocates only its own output.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store
	Logger *log.Logger
}

// NewRunner creates a runner with the given collaborators.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
// If st is nil, Persist requests fail with an error.
func NewRunner(c cache.Cache, keyer cache.Keyer, st store.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Store:  st,
		Logger: logger,
	}
}

// Execute runs the complete validate → transform → store pipeline.
//
// A validation failure is returned as the (typed) error; it concerns only
// this candidate and implies nothing about any other document in a batch.
func (r *Runner) Execute(ctx context.Context, candidate chart.Candidate, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	result := &Result{
		Shapes:    make(map[string][]byte),
		CacheInfo: CacheInfo{ShapeHits: make(map[string]bool)},
	}

	// Stage 1: Validate
	validateStart := time.Now()
	doc, err := r.Validate(ctx, candidate)
	result.Stats.ValidateTime = time.Since(validateStart)
	if err != nil {
		logger.Debug("rejected candidate", "verdict", describeVerdict(err))
		return nil, err
	}
	result.Document = doc
	result.Stats.SeriesCount = doc.SeriesCount()
	result.Stats.RowCount = doc.RowCount()

	canonical, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.Hash = cache.Hash(canonical)

	logger.Info("validated document",
		"series", doc.SeriesCount(),
		"rows", doc.RowCount(),
		"duration", result.Stats.ValidateTime)

	// Stage 2: Transform
	transformStart := time.Now()
	shapes, hits, err := r.Transform(ctx, doc, result.Hash, opts)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	result.Shapes = shapes
	result.CacheInfo.ShapeHits = hits
	result.Stats.TransformTime = time.Since(transformStart)

	logger.Info("transformed document",
		"targets", opts.Targets,
		"duration", result.Stats.TransformTime)

	// Stage 3: Store (optional)
	if opts.Persist {
		storeStart := time.Now()
		rec, err := r.Persist(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		result.Record = rec
		result.Stats.StoreTime = time.Since(storeStart)

		logger.Info("stored document",
			"id", rec.ID,
			"duration", result.Stats.StoreTime)
	}

	return result, nil
}

// Validate runs both validation phases on a candidate and emits hook events.
func (r *Runner) Validate(ctx context.Context, candidate chart.Candidate) (*chart.Document, error) {
	observability.Pipeline().OnValidateStart(ctx)
	start := time.Now()

	doc, err := chart.Validate(candidate)

	rows, series := 0, 0
	if doc != nil {
		rows, series = doc.RowCount(), doc.SeriesCount()
	}
	observability.Pipeline().OnValidateComplete(ctx, rows, series, time.Since(start), err)
	return doc, err
}

// Transform projects doc into every requested target shape, consulting the
// shape cache first. Returns the shapes and per-target cache-hit info.
func (r *Runner) Transform(ctx context.Context, doc *chart.Document, hash string, opts Options) (map[string][]byte, map[string]bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}

	observability.Pipeline().OnTransformStart(ctx, opts.Targets)
	start := time.Now()

	shapes := make(map[string][]byte, len(opts.Targets))
	hits := make(map[string]bool, len(opts.Targets))

	var firstErr error
	for _, target := range opts.Targets {
		key := r.Keyer.ShapeKey(hash, target)

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "shape")
				shapes[target] = data
				hits[target] = true
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "shape")
		}

		data, err := transform.Marshal(doc, target)
		if err != nil {
			firstErr = err
			break
		}
		shapes[target] = data
		hits[target] = false

		if err := r.Cache.Set(ctx, key, data, opts.CacheTTL); err != nil {
			// A cache write failure degrades performance, not correctness.
			r.logger(opts).Warn("shape cache write failed", "target", target, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "shape", len(data))
		}
	}

	observability.Pipeline().OnTransformComplete(ctx, opts.Targets, time.Since(start), firstErr)
	if firstErr != nil {
		return nil, nil, firstErr
	}
	return shapes, hits, nil
}

// Persist stores doc as a record and emits hook events.
func (r *Runner) Persist(ctx context.Context, doc *chart.Document) (*store.Record, error) {
	if r.Store == nil {
		return nil, fmt.Errorf("no store configured")
	}

	rec, err := store.NewRecord(doc)
	if err != nil {
		return nil, err
	}

	observability.Pipeline().OnStoreStart(ctx, rec.ID)
	start := time.Now()
	err = r.Store.Put(ctx, rec)
	observability.Pipeline().OnStoreComplete(ctx, rec.ID, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
