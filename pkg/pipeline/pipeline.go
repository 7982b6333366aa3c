// Package pipeline provides the core text-to-graph pipeline for LinGraph.
//
// This package implements the complete tokenize → segment → analyze →
// build → encode pipeline that can be used by CLI and API components.
// Centralizing this logic keeps behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of five stages:
//
//  1. Tokenize: Split input text into flagged tokens
//  2. Segment: Group tokens into sentences
//  3. Analyze: Derive lemma, part of speech, and features per token
//  4. Build: Assemble the token graph with NEXT edges and annotations
//  5. Encode: Serialize the graph into the PGraph binary blob
//
// The first three stages are pure functions over the input text and
// always run. The encoded blob is cached by input text hash plus the
// options that shape the graph, so repeated runs skip the build and
// encode work.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, "Wait… “Really?” Yes.", pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	blob := result.Blob
//
// Run individual stages through the underlying packages:
//
//	tokens := text.Tokenize(input)
//	sentences := text.SegmentTokens(tokens)
//	g := pipeline.BuildTokenGraph(tokens, graph.BuilderConfig{})
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lingraph/lingraph/pkg/cache"
	"github.com/lingraph/lingraph/pkg/graph"
	"github.com/lingraph/lingraph/pkg/morph"
	"github.com/lingraph/lingraph/pkg/text"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultVersion is the graph version stamped into the blob header
	// when the caller does not pick one. Versions let downstream stores
	// distinguish re-runs over the same source.
	DefaultVersion = 1
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Graph header options
	GraphID  uint64 `json:"graph_id,omitempty"`
	SourceID uint64 `json:"source_id,omitempty"`
	Version  uint64 `json:"version,omitempty"`

	// SkipAnnotate disables the morphology stage: the graph keeps its
	// token nodes and NEXT edges but no part-of-speech codes, lemma
	// labels, or stopword flags (default: false = annotate).
	SkipAnnotate bool `json:"skip_annotate,omitempty"`

	// Thumbnail is an optional graph-level feature vector carried in
	// the blob header. Must be exactly 0, 64, or 128 bytes.
	Thumbnail []byte `json:"thumbnail,omitempty"`

	// Refresh bypasses the blob cache entirely for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized). Logger overrides the runner's
	// logger for this run, which lets the API attach per-request loggers.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Text is the input text the run was executed on.
	Text string `json:"text"`

	// TextHash is the content hash of the input text.
	TextHash string `json:"text_hash"`

	// RunID uniquely identifies this execution.
	RunID string `json:"run_id"`

	// Tokens are the flagged tokens in input order.
	Tokens []text.Token `json:"tokens"`

	// Sentences are token-index ranges, one per sentence.
	Sentences []text.Sentence `json:"sentences"`

	// Morphs holds one analysis per token; nil when annotation was
	// skipped.
	Morphs []morph.Morph `json:"morphs,omitempty"`

	// Vocab interns the lemmas referenced by Morphs and node labels.
	Vocab *morph.Vocab `json:"-"`

	// Graph is the built (and possibly annotated) token graph.
	Graph *graph.Graph `json:"-"`

	// Blob is the PGraph encoding of Graph.
	Blob []byte `json:"-"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`

	// CacheInfo tracks whether the blob came from cache.
	CacheInfo CacheInfo `json:"cache_info"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TokenCount    int `json:"token_count"`
	SentenceCount int `json:"sentence_count"`
	NodeCount     int `json:"node_count"`
	EdgeCount     int `json:"edge_count"`
	BlobSize      int `json:"blob_size"`

	TokenizeTime time.Duration `json:"tokenize_time"`
	SegmentTime  time.Duration `json:"segment_time"`
	AnalyzeTime  time.Duration `json:"analyze_time"`
	BuildTime    time.Duration `json:"build_time"`
	EncodeTime   time.Duration `json:"encode_time"`
}

// CacheInfo tracks cache hits for the run.
type CacheInfo struct {
	BlobHit bool `json:"blob_hit"` // Whether the encoded blob came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if !graph.ValidThumbnailLen(len(o.Thumbnail)) {
		return fmt.Errorf("thumbnail is %d bytes: %w", len(o.Thumbnail), graph.ErrInvalidThumbnailLength)
	}

	if o.Version == 0 {
		o.Version = DefaultVersion
	}

	o.validated = true
	return nil
}

// ShouldAnnotate returns whether the morphology stage should run.
func (o *Options) ShouldAnnotate() bool {
	return !o.SkipAnnotate
}

// BlobKeyOpts returns cache key options for the encoded blob.
func (o *Options) BlobKeyOpts() cache.BlobKeyOpts {
	return cache.BlobKeyOpts{
		GraphID:  o.GraphID,
		SourceID: o.SourceID,
		Version:  o.Version,
		Annotate: o.ShouldAnnotate(),
	}
}

// BuilderConfig returns the graph header configuration for the run.
func (o *Options) BuilderConfig() graph.BuilderConfig {
	return graph.BuilderConfig{
		GraphID:  o.GraphID,
		Type:     graph.GraphTypeHetero,
		SourceID: o.SourceID,
		Version:  o.Version,
		Schema:   graph.SchemaWriting,
	}
}
