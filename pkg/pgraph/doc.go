// Package pgraph implements the binary interchange format for language
// graphs.
//
// # Wire Format
//
// A pgraph blob is a single self-delimiting byte string:
//
//	magic        4 bytes  "PGRA"
//	graph_id     uvarint
//	graph_type   1 byte
//	num_nodes    uvarint
//	num_edges    uvarint
//	source_id    uvarint
//	version      uvarint
//	schema_id    1 byte
//	nodes        num_nodes node records
//	edges        num_edges edge records
//	thumb_len    uvarint
//	thumbnail    thumb_len raw bytes (only when thumb_len > 0)
//
// Node records are (id uvarint, type u8, sub_type u8, features_ref uvarint,
// span_start uvarint, span_end uvarint, flags u16 little-endian,
// confidence u8, label_id uvarint). Edge records are (src uvarint,
// dst uvarint, type u8, weight u8, time uvarint, flags u16 little-endian,
// confidence u8, attr_ref uvarint).
//
// Varints are unsigned base-128: seven payload bits per byte, low group
// first, high bit set on every byte except the last. Decoding rejects runs
// whose accumulated shift would pass 63 bits, and a final group that cannot
// fit the 64-bit result, with [ErrOversizedVarint].
//
// # Contract
//
// Encoding is a pure function of the graph value: the same graph always
// produces identical bytes, and Decode(Encode(g)) reproduces g field for
// field, including the thumbnail. The only encode-side validation is the
// thumbnail length (0, 64, or 128 bytes); it runs before any byte is
// produced, so a failed Encode emits nothing.
//
// Decoding is structural and permissive: the header counts are trusted as
// pure repetition counts, edge endpoints and enum ranges are not checked,
// and out-of-range values round-trip untouched. Truncation anywhere is
// [ErrMalformedInput]; a bad magic is [ErrInvalidMagic]. Allocation is
// bounded by the input size, so a hostile header cannot force a large
// allocation.
package pgraph
