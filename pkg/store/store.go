// Package store archives pipeline runs.
//
// A Record pairs the encoded graph blob with the run metadata that makes
// it findable later: the input text hash, counts, and timestamps. The
// Store interface supports:
//   - Put/Get/Delete by run id
//   - List, newest first
//
// with implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for production deployments
//
// Blobs at rest are compressed with zstd when that saves space; both
// backends hand raw blobs back to callers, so compression never leaks
// past this package.
//
// # Usage
//
// Archive a run and read it back:
//
//	st := store.NewMemoryStore()
//	rec := store.NewRecord(result)
//	if err := st.Put(ctx, rec); err != nil {
//	    return err
//	}
//	got, err := st.Get(ctx, rec.ID)
package store

import (
	"context"
	"errors"
	"time"

	"github.com/lingraph/lingraph/pkg/pipeline"
)

// ErrNotFound is returned when no record exists for an id.
var ErrNotFound = errors.New("not found")

// Record is one archived pipeline run.
type Record struct {
	// ID is the run id (a UUID string).
	ID string `bson:"_id" json:"id"`

	// Text is the input text of the run. Keeping it with the record
	// lets archived graphs be rendered with surface labels later.
	Text string `bson:"text" json:"text,omitempty"`

	// TextHash is the content hash of the input text.
	TextHash string `bson:"text_hash" json:"text_hash"`

	// Blob is the PGraph encoding of the run's graph. Compressed
	// reports whether Blob currently holds the zstd frame instead of
	// the raw encoding; records returned by a Store always carry the
	// raw bytes.
	Blob       []byte `bson:"blob" json:"-"`
	Compressed bool   `bson:"compressed" json:"compressed"`

	// Run statistics, denormalized for listing without decoding.
	TokenCount    int `bson:"token_count" json:"token_count"`
	SentenceCount int `bson:"sentence_count" json:"sentence_count"`
	NodeCount     int `bson:"node_count" json:"node_count"`
	EdgeCount     int `bson:"edge_count" json:"edge_count"`
	BlobSize      int `bson:"blob_size" json:"blob_size"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// NewRecord builds a record from a pipeline result.
func NewRecord(result *pipeline.Result) *Record {
	return &Record{
		ID:            result.RunID,
		Text:          result.Text,
		TextHash:      result.TextHash,
		Blob:          result.Blob,
		TokenCount:    result.Stats.TokenCount,
		SentenceCount: result.Stats.SentenceCount,
		NodeCount:     result.Stats.NodeCount,
		EdgeCount:     result.Stats.EdgeCount,
		BlobSize:      result.Stats.BlobSize,
		CreatedAt:     time.Now().UTC(),
	}
}

// Store is the interface for run archival backends.
type Store interface {
	// Put stores a record, replacing any record with the same id.
	Put(ctx context.Context, rec *Record) error

	// Get retrieves a record by id.
	// Returns ErrNotFound if no record exists.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns records newest first. A limit of zero or less means
	// no limit.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Delete removes a record by id.
	// Returns ErrNotFound if no record exists.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
