package pipeline

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lingraph/lingraph/pkg/cache"
	"github.com/lingraph/lingraph/pkg/morph"
	"github.com/lingraph/lingraph/pkg/observability"
	"github.com/lingraph/lingraph/pkg/pgraph"
	"github.com/lingraph/lingraph/pkg/text"
)

// Runner encapsulates pipeline execution with blob caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
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
		Logger: logger,
	}
}

// Execute runs the complete tokenize → segment → analyze → build →
// encode pipeline with blob caching.
//
// The token, sentence, and morphology stages always run: they are pure
// and cheap, and the caller gets a complete Result even when the blob
// comes from cache. Lemma interning is deterministic, so a recomputed
// vocabulary always matches the label ids inside a cached blob for the
// same input and options.
func (r *Runner) Execute(ctx context.Context, input string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.applyLogger(opts)

	runStart := time.Now()
	hooks := observability.Pipeline()

	result := &Result{
		Text:     input,
		TextHash: cache.Hash([]byte(input)),
		RunID:    uuid.NewString(),
	}
	hooks.OnRunStart(ctx, result.RunID, len(input))

	// Stage 1: Tokenize
	tokenizeStart := time.Now()
	result.Tokens = text.Tokenize(input)
	result.Stats.TokenizeTime = time.Since(tokenizeStart)
	result.Stats.TokenCount = len(result.Tokens)
	hooks.OnStageComplete(ctx, "tokenize", result.Stats.TokenCount, result.Stats.TokenizeTime, nil)

	logger.Info("tokenized input",
		"tokens", result.Stats.TokenCount,
		"duration", result.Stats.TokenizeTime)

	// Stage 2: Segment
	segmentStart := time.Now()
	result.Sentences = text.SegmentTokens(result.Tokens)
	result.Stats.SegmentTime = time.Since(segmentStart)
	result.Stats.SentenceCount = len(result.Sentences)
	hooks.OnStageComplete(ctx, "segment", result.Stats.SentenceCount, result.Stats.SegmentTime, nil)

	logger.Info("segmented sentences",
		"sentences", result.Stats.SentenceCount,
		"duration", result.Stats.SegmentTime)

	// Stage 3: Analyze
	if opts.ShouldAnnotate() {
		analyzeStart := time.Now()
		result.Vocab = morph.NewVocab()
		result.Morphs = morph.Analyze(result.Tokens, result.Vocab)
		result.Stats.AnalyzeTime = time.Since(analyzeStart)
		hooks.OnStageComplete(ctx, "analyze", len(result.Morphs), result.Stats.AnalyzeTime, nil)

		logger.Info("analyzed morphology",
			"lemmas", result.Vocab.Len(),
			"duration", result.Stats.AnalyzeTime)
	}

	// Stages 4-5: Build + Encode, with the encoded blob cached by text
	// hash and the options that shape the graph.
	cacheKey := r.Keyer.BlobKey(result.TextHash, opts.BlobKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			g, err := pgraph.Decode(data)
			if err == nil {
				result.Graph = g
				result.Blob = data
				result.Stats.NodeCount = g.NodeCount()
				result.Stats.EdgeCount = g.EdgeCount()
				result.Stats.BlobSize = len(data)
				result.CacheInfo.BlobHit = true
				observability.Cache().OnCacheHit(ctx, "blob")
				hooks.OnRunComplete(ctx, result.RunID, g.NodeCount(), time.Since(runStart), nil)

				logger.Info("loaded graph blob from cache",
					"nodes", g.NodeCount(),
					"bytes", len(data),
					"duration", time.Since(runStart))
				return result, nil
			}
			// If decoding fails, fall through to rebuild
		}
		observability.Cache().OnCacheMiss(ctx, "blob")
	}

	// Stage 4: Build
	buildStart := time.Now()
	g := BuildTokenGraph(result.Tokens, opts.BuilderConfig())
	if opts.ShouldAnnotate() {
		morph.AnnotateGraph(g, result.Tokens, result.Morphs)
	}
	if len(opts.Thumbnail) > 0 {
		g.Thumbnail = slices.Clone(opts.Thumbnail)
	}
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	hooks.OnStageComplete(ctx, "build", result.Stats.NodeCount, result.Stats.BuildTime, nil)

	logger.Info("built token graph",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.BuildTime)

	// Stage 5: Encode
	encodeStart := time.Now()
	blob, err := pgraph.Encode(g)
	if err != nil {
		hooks.OnStageComplete(ctx, "encode", 0, time.Since(encodeStart), err)
		hooks.OnRunComplete(ctx, result.RunID, result.Stats.NodeCount, time.Since(runStart), err)
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.Blob = blob
	result.Stats.EncodeTime = time.Since(encodeStart)
	result.Stats.BlobSize = len(blob)
	hooks.OnStageComplete(ctx, "encode", result.Stats.BlobSize, result.Stats.EncodeTime, nil)

	logger.Info("encoded graph",
		"bytes", result.Stats.BlobSize,
		"duration", result.Stats.EncodeTime)

	// Cache the result
	if !opts.Refresh {
		if err := r.Cache.Set(ctx, cacheKey, blob, cache.TTLBlob); err == nil {
			observability.Cache().OnCacheSet(ctx, "blob", len(blob))
		}
	}

	hooks.OnRunComplete(ctx, result.RunID, result.Stats.NodeCount, time.Since(runStart), nil)
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger picks the per-run logger: the one from options when set,
// the runner's otherwise.
func (r *Runner) applyLogger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
