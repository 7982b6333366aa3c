package pgraph

import (
	"bytes"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/lingraph/lingraph/pkg/graph"
)

func graphsEqual(a, b *graph.Graph) bool {
	return a.ID == b.ID && a.Type == b.Type && a.SourceID == b.SourceID &&
		a.Version == b.Version && a.Schema == b.Schema &&
		slices.Equal(a.Nodes, b.Nodes) && slices.Equal(a.Edges, b.Edges) &&
		bytes.Equal(a.Thumbnail, b.Thumbnail)
}

func TestEncodeGolden(t *testing.T) {
	b := graph.NewBuilder(graph.BuilderConfig{GraphID: 1})
	b.AddNode(graph.NodeTypeToken, 0, 0, graph.Span{Start: 0, End: 5},
		graph.NodeFlagCapitalized, graph.DefaultConfidence, 0)
	b.AddEdge(0, 0, graph.EdgeTypeNext, graph.DefaultWeight, 0,
		graph.EdgeFlagDirected, graph.DefaultConfidence, 0)

	data, err := Encode(b.Finalize())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	want := []byte{
		'P', 'G', 'R', 'A', // magic
		0x01,       // graph_id
		0x05,       // graph_type hetero
		0x01, 0x01, // num_nodes, num_edges
		0x00, 0x01, // source_id, version
		0x01, // schema writing
		// node 0
		0x00, 0x01, 0x00, 0x00, // id, type token, sub_type, features_ref
		0x00, 0x05, // span
		0x04, 0x00, // flags LE (capitalized)
		0xff, 0x00, // confidence, label_id
		// edge 0
		0x00, 0x00, 0x09, 0xff, // src, dst, type next, weight
		0x00,       // time
		0x01, 0x00, // flags LE (directed)
		0xff, 0x00, // confidence, attr_ref
		0x00, // thumb_len
	}
	if !bytes.Equal(data, want) {
		t.Errorf("encoded bytes mismatch\n got: % x\nwant: % x", data, want)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T) *graph.Graph
	}{
		{
			name: "empty graph",
			build: func(t *testing.T) *graph.Graph {
				return graph.NewBuilder(graph.BuilderConfig{GraphID: 9}).Finalize()
			},
		},
		{
			name: "nodes and edges",
			build: func(t *testing.T) *graph.Graph {
				b := graph.NewBuilder(graph.BuilderConfig{GraphID: 3, SourceID: 77, Version: 2})
				b.AddNode(graph.NodeTypeToken, 12, 4, graph.Span{Start: 0, End: 4},
					graph.NodeFlagCapitalized|graph.NodeFlagStop, 200, 1)
				b.AddNode(graph.NodeTypeToken, 10, 0, graph.Span{Start: 4, End: 5},
					graph.NodeFlagPunct|graph.NodeFlagSentEndStrong, graph.DefaultConfidence, 0)
				b.AddEdge(0, 1, graph.EdgeTypeNext, graph.DefaultWeight, 0,
					graph.EdgeFlagDirected, graph.DefaultConfidence, 0)
				b.AddEdge(1, 0, graph.EdgeTypeDep, 13, 5,
					graph.EdgeFlagDirected|graph.EdgeFlagInferred, 99, 6)
				return b.Finalize()
			},
		},
		{
			name: "64-byte thumbnail",
			build: func(t *testing.T) *graph.Graph {
				b := graph.NewBuilder(graph.BuilderConfig{})
				thumb := make([]byte, 64)
				for i := range thumb {
					thumb[i] = byte(i)
				}
				if err := b.SetThumbnail(thumb); err != nil {
					t.Fatal(err)
				}
				return b.Finalize()
			},
		},
		{
			name: "128-byte thumbnail",
			build: func(t *testing.T) *graph.Graph {
				b := graph.NewBuilder(graph.BuilderConfig{})
				b.AddNode(graph.NodeTypeToken, 0, 0, graph.Span{End: 1}, 0, graph.DefaultConfidence, 0)
				if err := b.SetThumbnail(make([]byte, 128)); err != nil {
					t.Fatal(err)
				}
				return b.Finalize()
			},
		},
		{
			name: "maximum field values",
			build: func(t *testing.T) *graph.Graph {
				return &graph.Graph{
					ID:       math.MaxUint64,
					Type:     graph.GraphTypeTemporal,
					SourceID: math.MaxUint64,
					Version:  math.MaxUint64,
					Schema:   graph.SchemaID(255),
					Nodes: []graph.Node{{
						ID:          math.MaxUint64,
						Type:        graph.NodeType(255),
						SubType:     255,
						FeaturesRef: math.MaxUint64,
						Span:        graph.Span{Start: math.MaxUint64, End: math.MaxUint64},
						Flags:       graph.NodeFlags(0xffff),
						Confidence:  255,
						LabelID:     math.MaxUint64,
					}},
					Edges: []graph.Edge{{
						Src:        math.MaxUint64,
						Dst:        math.MaxUint64,
						Type:       graph.EdgeType(255),
						Weight:     255,
						Time:       math.MaxUint64,
						Flags:      graph.EdgeFlags(0xffff),
						Confidence: 255,
						AttrRef:    math.MaxUint64,
					}},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.build(t)
			data, err := Encode(g)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !graphsEqual(g, got) {
				t.Errorf("round trip mismatch\n got: %+v\nwant: %+v", got, g)
			}
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	b := graph.NewBuilder(graph.BuilderConfig{GraphID: 4})
	b.AddNode(graph.NodeTypeToken, 0, 0, graph.Span{End: 3}, 0, graph.DefaultConfidence, 0)
	g := b.Finalize()

	first, err := Encode(g)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Encode(g)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Encode produced different bytes for the same graph")
	}
}

func TestEncodeRejectsBadThumbnail(t *testing.T) {
	g := graph.NewBuilder(graph.BuilderConfig{}).Finalize()
	g.Thumbnail = make([]byte, 65)

	data, err := Encode(g)
	if !errors.Is(err, ErrInvalidThumbnailLength) {
		t.Fatalf("Encode error = %v, want ErrInvalidThumbnailLength", err)
	}
	if data != nil {
		t.Errorf("Encode emitted %d bytes on validation failure, want none", len(data))
	}
}

func TestDecodeErrors(t *testing.T) {
	valid, err := Encode(func() *graph.Graph {
		b := graph.NewBuilder(graph.BuilderConfig{GraphID: 1})
		b.AddNode(graph.NodeTypeToken, 0, 0, graph.Span{End: 2}, 0, graph.DefaultConfidence, 0)
		return b.Finalize()
	}())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{"empty input", nil, ErrInvalidMagic},
		{"short input", []byte("PG"), ErrInvalidMagic},
		{"wrong magic", []byte("PGRXrest"), ErrInvalidMagic},
		{"magic only", []byte("PGRA"), ErrMalformedInput},
		{"truncated header", []byte("PGRA\x01\x05"), ErrMalformedInput},
		{"announced node missing", []byte("PGRA\x01\x05\x01\x00\x00\x01\x01"), ErrMalformedInput},
		{"truncated mid-node", valid[:len(valid)-6], ErrMalformedInput},
		{"truncated node flags", []byte("PGRA\x01\x05\x01\x00\x00\x01\x01\x00\x01\x00\x00\x00\x02\x04"), ErrMalformedInput},
		{
			"thumbnail shorter than announced",
			[]byte("PGRA\x01\x05\x00\x00\x00\x01\x01\x40abc"),
			ErrMalformedInput,
		},
		{
			"oversized varint in header",
			append([]byte("PGRA"), 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01),
			ErrOversizedVarint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode(% x) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestDecodeHostileCountDoesNotAllocate(t *testing.T) {
	// Header announces ~2^56 nodes but carries none. The decoder must fail
	// on truncation without first sizing a slice from the count.
	input := append([]byte("PGRA"), 0x01, 0x05)
	input = appendUvarint(input, 1<<56) // num_nodes
	input = append(input, 0x00, 0x00, 0x01, 0x01)

	_, err := Decode(input)
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("Decode error = %v, want ErrMalformedInput", err)
	}
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	b := graph.NewBuilder(graph.BuilderConfig{GraphID: 2})
	b.AddNode(graph.NodeTypeToken, 0, 0, graph.Span{End: 1}, 0, graph.DefaultConfidence, 0)
	g := b.Finalize()

	data, err := Encode(g)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(append(data, 0xaa, 0xbb))
	if err != nil {
		t.Fatalf("Decode with trailing bytes: %v", err)
	}
	if !graphsEqual(g, got) {
		t.Error("trailing bytes changed the decoded graph")
	}
}

func TestDecodePreservesOutOfRangeValues(t *testing.T) {
	// A record with an undefined node type and an edge into a node this
	// graph does not contain is legal data and must survive decode+encode
	// byte for byte.
	g := &graph.Graph{
		ID:      1,
		Type:    graph.GraphTypeHetero,
		Version: 1,
		Schema:  graph.SchemaWriting,
		Nodes: []graph.Node{{
			ID:         0,
			Type:       graph.NodeType(200),
			Span:       graph.Span{End: 1},
			Confidence: 255,
		}},
		Edges: []graph.Edge{{
			Src:        0,
			Dst:        4096,
			Type:       graph.EdgeTypeSameAs,
			Weight:     255,
			Flags:      graph.EdgeFlagDirected,
			Confidence: 255,
		}},
	}

	data, err := Encode(g)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	again, err := Encode(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, again) {
		t.Error("decode+encode changed bytes for permissive values")
	}
}
