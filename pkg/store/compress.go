package store

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// compressThreshold is the blob size below which compression is not
// attempted. Tiny blobs gain nothing and the zstd frame adds overhead.
const compressThreshold = 512

// Shared codec state. EncodeAll/DecodeAll on shared instances are safe
// for concurrent use; with default options the constructors cannot fail.
var (
	zstdEncoder, _ = zstd.NewWriter(nil)
	zstdDecoder, _ = zstd.NewReader(nil)
)

// Compress returns the zstd frame for data.
func Compress(data []byte) []byte {
	return zstdEncoder.EncodeAll(data, make([]byte, 0, len(data)/2))
}

// Decompress expands a zstd frame produced by Compress.
func Decompress(data []byte) ([]byte, error) {
	out, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return out, nil
}

// packRecord returns the record to write at rest: a copy with the blob
// compressed when that actually saves space, the original otherwise.
func packRecord(rec *Record) *Record {
	if rec.Compressed || len(rec.Blob) < compressThreshold {
		return rec
	}
	packed := Compress(rec.Blob)
	if len(packed) >= len(rec.Blob) {
		return rec
	}
	cp := *rec
	cp.Blob = packed
	cp.Compressed = true
	return &cp
}

// unpackRecord undoes packRecord, returning a record that carries the
// raw blob.
func unpackRecord(rec *Record) (*Record, error) {
	if !rec.Compressed {
		return rec, nil
	}
	raw, err := Decompress(rec.Blob)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", rec.ID, err)
	}
	cp := *rec
	cp.Blob = raw
	cp.Compressed = false
	return &cp, nil
}
