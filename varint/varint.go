// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package varint implements the continuation-bit LEB128-style integer
// codec used for lease, initial sequence number, and cookie length fields
// in the handshake wire format: seven data bits per byte, with the high
// bit set on every byte except the last.
package varint

import (
	"errors"
	"io"
)

// ErrOverflow reports that a varint did not terminate within the maximum
// number of bytes for the requested width.
var ErrOverflow = errors.New("varint: value overflows target width")

// maxBytes returns ceil(bits/7) + 1, the decode contract's overrun bound.
func maxBytes(bits int) int {
	n := (bits + 6) / 7
	return n + 1
}

// EncodeUint64 writes v into dst using the minimum number of bytes and
// returns the number of bytes written. dst must have capacity for at
// least 10 bytes (the worst case for a 64-bit value).
func EncodeUint64(dst []byte, v uint64) int {
	i := 0
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		dst[i] = b
		i++
		if v == 0 {
			return i
		}
	}
}

// AppendUint64 appends the varint encoding of v to dst and returns the
// extended slice.
func AppendUint64(dst []byte, v uint64) []byte {
	var buf [10]byte
	n := EncodeUint64(buf[:], v)
	return append(dst, buf[:n]...)
}

// DecodeUint64 reads a varint-encoded uint64 from r. It reads at most
// maxBytes(64) = 11 bytes before failing with ErrOverflow.
func DecodeUint64(r io.Reader) (uint64, error) {
	return decode(r, 64)
}

// DecodeUint32 reads a varint-encoded value and bounds it to 32 bits,
// the width the lease and initial_sn fields carry.
func DecodeUint32(r io.Reader) (uint32, error) {
	v, err := decode(r, 32)
	return uint32(v), err
}

func decode(r io.Reader, bits int) (uint64, error) {
	var b [1]byte
	var value uint64
	var shift uint
	limit := maxBytes(bits)
	for i := 0; i < limit; i++ {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		value |= uint64(b[0]&0x7F) << shift
		if b[0]&0x80 == 0 {
			return value, nil
		}
		shift += 7
	}
	return 0, ErrOverflow
}

// EncodedLen returns the number of bytes EncodeUint64 would write for v:
// max(1, ceil(bit_length(v)/7)).
func EncodedLen(v uint64) int {
	n := 1
	for v >>= 7; v != 0; v >>= 7 {
		n++
	}
	return n
}
