package pgraph

import "fmt"

// appendUvarint appends the unsigned base-128 encoding of v to dst and
// returns the extended slice. Values below 128 take one byte; the maximum
// uint64 takes ten.
func appendUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// uvarint decodes an unsigned base-128 varint from data starting at off.
// It returns the value and the offset just past the varint.
//
// Two failure modes: running off the end of data ([ErrMalformedInput]) and
// a byte run whose accumulated shift passes 63 bits or whose final group
// cannot fit a uint64 ([ErrOversizedVarint]).
func uvarint(data []byte, off int) (uint64, int, error) {
	var v uint64
	var shift uint
	for {
		if off >= len(data) {
			return 0, off, fmt.Errorf("%w: truncated varint at offset %d", ErrMalformedInput, off)
		}
		b := data[off]
		off++
		if shift == 63 && b&0x7f > 1 {
			return 0, off, fmt.Errorf("%w: group at offset %d overflows 64 bits", ErrOversizedVarint, off-1)
		}
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, off, nil
		}
		shift += 7
		if shift > 63 {
			return 0, off, fmt.Errorf("%w: continuation at offset %d passes 64 bits", ErrOversizedVarint, off-1)
		}
	}
}
