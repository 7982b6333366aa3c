package pipeline

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lingraph/lingraph/pkg/cache"
	"github.com/lingraph/lingraph/pkg/graph"
	"github.com/lingraph/lingraph/pkg/morph"
	"github.com/lingraph/lingraph/pkg/pgraph"
)

func testRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	if _, ok := r.Cache.(*cache.NullCache); !ok {
		t.Errorf("nil cache should default to NullCache, got %T", r.Cache)
	}
	if r.Keyer == nil {
		t.Error("nil keyer should default to DefaultKeyer")
	}
	if r.Logger == nil {
		t.Error("nil logger should default to the global logger")
	}
}

func TestExecuteBasic(t *testing.T) {
	ctx := context.Background()
	r := testRunner(nil)
	input := "Wait… “Really?” Yes."

	result, err := r.Execute(ctx, input, Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Text != input {
		t.Errorf("Text = %q", result.Text)
	}
	if result.TextHash != cache.Hash([]byte(input)) {
		t.Errorf("TextHash = %q, want content hash of input", result.TextHash)
	}
	if _, err := uuid.Parse(result.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", result.RunID, err)
	}

	if len(result.Tokens) != 8 {
		t.Errorf("tokens = %d, want 8", len(result.Tokens))
	}
	if len(result.Sentences) != 3 {
		t.Errorf("sentences = %d, want 3", len(result.Sentences))
	}
	if len(result.Morphs) != 8 {
		t.Errorf("morphs = %d, want 8", len(result.Morphs))
	}
	if result.Vocab == nil || result.Vocab.Len() != 8 {
		t.Errorf("vocab missing or wrong size")
	}

	g := result.Graph
	if g == nil {
		t.Fatal("Graph is nil")
	}
	if g.NodeCount() != 8 || g.EdgeCount() != 7 {
		t.Errorf("graph = %d nodes, %d edges, want 8/7", g.NodeCount(), g.EdgeCount())
	}
	if g.Schema != graph.SchemaWriting {
		t.Errorf("Schema = %v, want writing", g.Schema)
	}

	st := result.Stats
	if st.TokenCount != 8 || st.SentenceCount != 3 || st.NodeCount != 8 || st.EdgeCount != 7 {
		t.Errorf("Stats counts = %+v", st)
	}
	if st.BlobSize != len(result.Blob) || st.BlobSize == 0 {
		t.Errorf("BlobSize = %d, blob is %d bytes", st.BlobSize, len(result.Blob))
	}
	if result.CacheInfo.BlobHit {
		t.Error("first run with a null cache reported a blob hit")
	}

	decoded, err := pgraph.Decode(result.Blob)
	if err != nil {
		t.Fatalf("Decode blob: %v", err)
	}
	if decoded.NodeCount() != 8 || decoded.EdgeCount() != 7 {
		t.Errorf("decoded blob = %d nodes, %d edges", decoded.NodeCount(), decoded.EdgeCount())
	}
}

func TestExecuteAnnotates(t *testing.T) {
	ctx := context.Background()
	r := testRunner(nil)

	result, err := r.Execute(ctx, "He said stop.", Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	n0 := result.Graph.Nodes[0]
	if n0.SubType != uint8(morph.POSPron) {
		t.Errorf("node 0 SubType = %d, want pronoun", n0.SubType)
	}
	if n0.LabelID != 1 {
		t.Errorf("node 0 LabelID = %d, want first interned lemma", n0.LabelID)
	}
	if !n0.Flags.Has(graph.NodeFlagStop) {
		t.Error("node 0 missing stop flag")
	}
	if result.Vocab.String(n0.LabelID) != "he" {
		t.Errorf("node 0 label = %q, want he", result.Vocab.String(n0.LabelID))
	}

	n3 := result.Graph.Nodes[3]
	if n3.SubType != uint8(morph.POSPunct) {
		t.Errorf("node 3 SubType = %d, want punct", n3.SubType)
	}
}

func TestExecuteSkipAnnotate(t *testing.T) {
	ctx := context.Background()
	r := testRunner(nil)

	result, err := r.Execute(ctx, "He said stop.", Options{SkipAnnotate: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Morphs != nil {
		t.Error("Morphs should be nil when annotation is skipped")
	}
	if result.Vocab != nil {
		t.Error("Vocab should be nil when annotation is skipped")
	}
	for i, node := range result.Graph.Nodes {
		if node.SubType != 0 || node.LabelID != 0 {
			t.Errorf("node %d annotated despite SkipAnnotate", i)
		}
		if node.Flags.Has(graph.NodeFlagStop) {
			t.Errorf("node %d carries a stop flag despite SkipAnnotate", i)
		}
	}
}

func TestExecuteDeterministicBlob(t *testing.T) {
	ctx := context.Background()
	r := testRunner(nil)
	input := "One. Two. Three."

	r1, err := r.Execute(ctx, input, Options{})
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	r2, err := r.Execute(ctx, input, Options{})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}

	if !bytes.Equal(r1.Blob, r2.Blob) {
		t.Error("same input produced different blobs")
	}
	if r1.RunID == r2.RunID {
		t.Error("runs share a RunID")
	}
}

func TestExecuteBlobCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := testRunner(fc)
	input := "He said, “Don’t move.” Are you okay?"

	r1, err := r.Execute(ctx, input, Options{})
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if r1.CacheInfo.BlobHit {
		t.Fatal("first run hit an empty cache")
	}

	r2, err := r.Execute(ctx, input, Options{})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !r2.CacheInfo.BlobHit {
		t.Fatal("second run missed the cache")
	}
	if !bytes.Equal(r1.Blob, r2.Blob) {
		t.Error("cached blob differs from the computed one")
	}

	// The cheap stages still run on a hit, so the result stays complete.
	if len(r2.Tokens) != len(r1.Tokens) {
		t.Error("cached run lost tokens")
	}
	if len(r2.Morphs) != len(r1.Morphs) || r2.Vocab == nil {
		t.Error("cached run lost morphology")
	}
	if r2.Graph.NodeCount() != r1.Graph.NodeCount() {
		t.Error("cached run decoded a different graph")
	}
}

func TestExecuteRefresh(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := testRunner(fc)
	input := "Okay… I guess."

	if _, err := r.Execute(ctx, input, Options{}); err != nil {
		t.Fatalf("priming Execute: %v", err)
	}

	result, err := r.Execute(ctx, input, Options{Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if result.CacheInfo.BlobHit {
		t.Error("refresh run read from the cache")
	}
}

func TestExecuteAnnotateAffectsCacheKey(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := testRunner(fc)
	input := "He said stop."

	if _, err := r.Execute(ctx, input, Options{}); err != nil {
		t.Fatalf("annotated Execute: %v", err)
	}

	// Skipping annotation must not serve the annotated blob.
	plain, err := r.Execute(ctx, input, Options{SkipAnnotate: true})
	if err != nil {
		t.Fatalf("plain Execute: %v", err)
	}
	if plain.CacheInfo.BlobHit {
		t.Fatal("plain run hit the annotated blob's key")
	}
	if plain.Graph.Nodes[0].SubType != 0 {
		t.Error("plain run returned an annotated graph")
	}

	again, err := r.Execute(ctx, input, Options{SkipAnnotate: true})
	if err != nil {
		t.Fatalf("repeat plain Execute: %v", err)
	}
	if !again.CacheInfo.BlobHit {
		t.Error("repeat plain run missed its own blob")
	}
}

func TestExecuteCorruptCachedBlob(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := testRunner(fc)
	input := "He said stop."

	// Poison the exact key the runner will look up.
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("defaults: %v", err)
	}
	key := cache.NewDefaultKeyer().BlobKey(cache.Hash([]byte(input)), opts.BlobKeyOpts())
	if err := fc.Set(ctx, key, []byte("not a pgraph blob"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	result, err := r.Execute(ctx, input, Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.CacheInfo.BlobHit {
		t.Error("corrupt blob reported as a hit")
	}
	if result.Graph.NodeCount() != 4 {
		t.Errorf("rebuilt graph has %d nodes, want 4", result.Graph.NodeCount())
	}
}

func TestExecuteThumbnail(t *testing.T) {
	ctx := context.Background()
	r := testRunner(nil)

	thumb := make([]byte, 64)
	for i := range thumb {
		thumb[i] = byte(i)
	}

	result, err := r.Execute(ctx, "hello world", Options{Thumbnail: thumb})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !bytes.Equal(result.Graph.Thumbnail, thumb) {
		t.Error("thumbnail not carried into the graph")
	}

	decoded, err := pgraph.Decode(result.Blob)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded.Thumbnail, thumb) {
		t.Error("thumbnail not carried through the blob")
	}

	if _, err := r.Execute(ctx, "hello world", Options{Thumbnail: []byte{1, 2, 3}}); err == nil {
		t.Error("3-byte thumbnail should fail validation")
	}
}

func TestExecuteEmptyInput(t *testing.T) {
	ctx := context.Background()
	r := testRunner(nil)

	result, err := r.Execute(ctx, "", Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Tokens) != 0 || len(result.Sentences) != 0 {
		t.Errorf("empty input produced %d tokens, %d sentences", len(result.Tokens), len(result.Sentences))
	}
	if result.Graph.NodeCount() != 0 {
		t.Errorf("empty input built %d nodes", result.Graph.NodeCount())
	}
	if len(result.Blob) == 0 {
		t.Error("empty input should still encode a header-only blob")
	}
	if _, err := pgraph.Decode(result.Blob); err != nil {
		t.Errorf("header-only blob does not decode: %v", err)
	}
}

func TestRunnerClose(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
