package pgraph

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/lingraph/lingraph/pkg/graph"
)

// Magic is the four-byte prefix of every pgraph blob.
const Magic = "PGRA"

var (
	// ErrMalformedInput is returned by [Decode] when the input ends before
	// the structure it announces is complete.
	ErrMalformedInput = errors.New("malformed pgraph input")

	// ErrInvalidMagic is returned by [Decode] when the input does not start
	// with the "PGRA" prefix.
	ErrInvalidMagic = errors.New("invalid pgraph magic")

	// ErrOversizedVarint is returned by [Decode] when a varint byte run
	// cannot terminate inside 64 bits. It guards against unbounded or
	// hostile continuation-bit runs.
	ErrOversizedVarint = errors.New("oversized varint")

	// ErrInvalidThumbnailLength is returned by [Encode] when the graph's
	// thumbnail is not exactly 0, 64, or 128 bytes. It is the same value as
	// [graph.ErrInvalidThumbnailLength], so errors.Is works across both
	// packages.
	ErrInvalidThumbnailLength = graph.ErrInvalidThumbnailLength
)

// Minimum encoded record sizes, used to bound slice preallocation against
// hostile header counts.
const (
	minNodeBytes = 10
	minEdgeBytes = 9
)

// Encode serializes a graph into pgraph bytes. It is a pure function of the
// graph value: identical graphs produce identical bytes.
//
// The thumbnail length is validated before any byte is produced; on
// [ErrInvalidThumbnailLength] the returned slice is nil. Node and edge
// counts are taken from the actual slice lengths.
func Encode(g *graph.Graph) ([]byte, error) {
	if !graph.ValidThumbnailLen(len(g.Thumbnail)) {
		return nil, fmt.Errorf("encode: %w (got %d bytes)", ErrInvalidThumbnailLength, len(g.Thumbnail))
	}

	buf := make([]byte, 0, 16+minNodeBytes*len(g.Nodes)+minEdgeBytes*len(g.Edges)+len(g.Thumbnail))
	buf = append(buf, Magic...)
	buf = appendUvarint(buf, g.ID)
	buf = append(buf, byte(g.Type))
	buf = appendUvarint(buf, uint64(len(g.Nodes)))
	buf = appendUvarint(buf, uint64(len(g.Edges)))
	buf = appendUvarint(buf, g.SourceID)
	buf = appendUvarint(buf, g.Version)
	buf = append(buf, byte(g.Schema))

	for i := range g.Nodes {
		n := &g.Nodes[i]
		buf = appendUvarint(buf, n.ID)
		buf = append(buf, byte(n.Type), n.SubType)
		buf = appendUvarint(buf, n.FeaturesRef)
		buf = appendUvarint(buf, n.Span.Start)
		buf = appendUvarint(buf, n.Span.End)
		buf = binary.LittleEndian.AppendUint16(buf, uint16(n.Flags))
		buf = append(buf, n.Confidence)
		buf = appendUvarint(buf, n.LabelID)
	}

	for i := range g.Edges {
		e := &g.Edges[i]
		buf = appendUvarint(buf, e.Src)
		buf = appendUvarint(buf, e.Dst)
		buf = append(buf, byte(e.Type), e.Weight)
		buf = appendUvarint(buf, e.Time)
		buf = binary.LittleEndian.AppendUint16(buf, uint16(e.Flags))
		buf = append(buf, e.Confidence)
		buf = appendUvarint(buf, e.AttrRef)
	}

	buf = appendUvarint(buf, uint64(len(g.Thumbnail)))
	buf = append(buf, g.Thumbnail...)
	return buf, nil
}

// Decode parses pgraph bytes into a graph. Decoding is structural: header
// counts are treated as pure repetition counts, and edge endpoints, enum
// ranges, and thumbnail lengths are not cross-validated, so any valid
// encoding round-trips untouched. Trailing bytes after the encoded graph
// are ignored.
//
// Returns [ErrInvalidMagic] when the prefix is wrong, [ErrOversizedVarint]
// for hostile varint runs, and [ErrMalformedInput] for any truncation.
func Decode(data []byte) (*graph.Graph, error) {
	if len(data) < len(Magic) || string(data[:len(Magic)]) != Magic {
		return nil, fmt.Errorf("%w: want %q prefix", ErrInvalidMagic, Magic)
	}
	r := reader{data: data, off: len(Magic)}

	g := &graph.Graph{}
	g.ID = r.uvarint("graph_id")
	g.Type = graph.GraphType(r.byte("graph_type"))
	numNodes := r.uvarint("num_nodes")
	numEdges := r.uvarint("num_edges")
	g.SourceID = r.uvarint("source_id")
	g.Version = r.uvarint("version")
	g.Schema = graph.SchemaID(r.byte("schema_id"))
	if r.err != nil {
		return nil, r.err
	}

	g.Nodes = make([]graph.Node, 0, boundedCap(numNodes, len(data)-r.off, minNodeBytes))
	for i := uint64(0); i < numNodes && r.err == nil; i++ {
		var n graph.Node
		n.ID = r.uvarint("node id")
		n.Type = graph.NodeType(r.byte("node type"))
		n.SubType = r.byte("node sub_type")
		n.FeaturesRef = r.uvarint("node features_ref")
		n.Span.Start = r.uvarint("node span start")
		n.Span.End = r.uvarint("node span end")
		n.Flags = graph.NodeFlags(r.u16("node flags"))
		n.Confidence = r.byte("node confidence")
		n.LabelID = r.uvarint("node label_id")
		g.Nodes = append(g.Nodes, n)
	}

	g.Edges = make([]graph.Edge, 0, boundedCap(numEdges, len(data)-r.off, minEdgeBytes))
	for i := uint64(0); i < numEdges && r.err == nil; i++ {
		var e graph.Edge
		e.Src = r.uvarint("edge src")
		e.Dst = r.uvarint("edge dst")
		e.Type = graph.EdgeType(r.byte("edge type"))
		e.Weight = r.byte("edge weight")
		e.Time = r.uvarint("edge time")
		e.Flags = graph.EdgeFlags(r.u16("edge flags"))
		e.Confidence = r.byte("edge confidence")
		e.AttrRef = r.uvarint("edge attr_ref")
		g.Edges = append(g.Edges, e)
	}

	thumbLen := r.uvarint("thumb_len")
	if thumbLen > 0 {
		g.Thumbnail = r.take(thumbLen, "thumbnail")
	}
	if r.err != nil {
		return nil, r.err
	}
	return g, nil
}

// boundedCap caps a header-announced count by what the remaining input
// could possibly hold, given a minimum record size. Hostile counts then
// cost at most one small allocation before the read loop hits truncation.
func boundedCap(count uint64, remaining, minRecord int) int {
	fit := remaining/minRecord + 1
	if count < uint64(fit) {
		return int(count)
	}
	return fit
}

// reader walks a byte slice with a sticky error: after the first failure
// every read returns zero values and the error is reported once at the end.
type reader struct {
	data []byte
	off  int
	err  error
}

func (r *reader) uvarint(field string) uint64 {
	if r.err != nil {
		return 0
	}
	v, off, err := uvarint(r.data, r.off)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", field, err)
		return 0
	}
	r.off = off
	return v
}

func (r *reader) byte(field string) byte {
	if r.err != nil {
		return 0
	}
	if r.off >= len(r.data) {
		r.err = fmt.Errorf("%w: truncated %s at offset %d", ErrMalformedInput, field, r.off)
		return 0
	}
	b := r.data[r.off]
	r.off++
	return b
}

func (r *reader) u16(field string) uint16 {
	if r.err != nil {
		return 0
	}
	if r.off+2 > len(r.data) {
		r.err = fmt.Errorf("%w: truncated %s at offset %d", ErrMalformedInput, field, r.off)
		return 0
	}
	v := binary.LittleEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

func (r *reader) take(n uint64, field string) []byte {
	if r.err != nil {
		return nil
	}
	if n > uint64(len(r.data)-r.off) {
		r.err = fmt.Errorf("%w: truncated %s at offset %d (want %d bytes, have %d)",
			ErrMalformedInput, field, r.off, n, len(r.data)-r.off)
		return nil
	}
	out := make([]byte, n)
	copy(out, r.data[r.off:])
	r.off += int(n)
	return out
}
