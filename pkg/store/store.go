// Package store persists canonical chart documents.
//
// A document is stored as a [Record]: identity and listing columns plus the
// three independently valid JSON columns (meta, series, data) of the
// canonical document. The store never re-validates — it only ever receives
// documents that already passed both validation phases, and a persistence
// engine is free to re-enforce the relational invariants in its own
// constraint language, but nothing here depends on that.
//
// Backends:
//   - memory: development and tests
//   - sqlite: single-node persistence
//   - mongo:  shared persistence for multi-instance deployments
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/chartdoc/pkg/cache"
	"github.com/matzehuels/chartdoc/pkg/chart"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no record has the requested ID.
	ErrNotFound = errors.New("not found")
)

// Record is the stored shape of one canonical document. Meta, Series and
// Data are each independently valid JSON, so any JSON-capable engine can
// store them as three typed columns.
type Record struct {
	ID        string    `json:"id" bson:"id"`
	Title     string    `json:"title" bson:"title"`
	Type      string    `json:"type" bson:"type"`
	Hash      string    `json:"hash" bson:"hash"` // content hash of the canonical serialization
	Meta      []byte    `json:"meta" bson:"meta"`
	Series    []byte    `json:"series" bson:"series"`
	Data      []byte    `json:"data" bson:"data"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Store is the interface for document persistence backends.
type Store interface {
	// Put stores a record, replacing any record with the same ID.
	Put(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns all records, newest first.
	List(ctx context.Context) ([]*Record, error)

	// Delete removes a record. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// NewRecord builds a storable record from a validated document.
// The ID is a fresh UUID; the hash covers the canonical serialization, so two
// identical documents stored separately share a hash but not an ID.
func NewRecord(doc *chart.Document) (*Record, error) {
	meta, err := doc.MetaJSON()
	if err != nil {
		return nil, err
	}
	series, err := doc.SeriesJSON()
	if err != nil {
		return nil, err
	}
	data, err := doc.DataJSON()
	if err != nil {
		return nil, err
	}
	canonical, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}

	m := doc.Meta()
	return &Record{
		ID:        uuid.NewString(),
		Title:     m.Title,
		Type:      m.Type,
		Hash:      cache.Hash(canonical),
		Meta:      meta,
		Series:    series,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Document revalidates the stored columns back into a canonical document.
// Storage is outside the core's trust boundary, so a record read back goes
// through the same two validation phases as any candidate.
func (r *Record) Document() (*chart.Document, error) {
	var buf []byte
	buf = append(buf, `{"meta":`...)
	buf = append(buf, r.Meta...)
	buf = append(buf, `,"series":`...)
	buf = append(buf, r.Series...)
	buf = append(buf, `,"data":`...)
	buf = append(buf, r.Data...)
	buf = append(buf, '}')

	c, err := chart.DecodeCandidateBytes(buf)
	if err != nil {
		return nil, err
	}
	return chart.Validate(c)
}
