// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package zserial

import "io"

// IdentifierMaxSize is the maximum number of significant bytes an
// Identifier can carry on the wire.
const IdentifierMaxSize = 16

// Identifier is a 128-bit little-endian zenoh identifier (ZID). It is
// stored in full, but only a trailing-zero-suppressed prefix is ever put
// on the wire.
type Identifier struct {
	bytes [IdentifierMaxSize]byte
}

// IdentifierFromBytes builds an Identifier from up to 16 little-endian
// bytes. Extra bytes beyond 16 are ignored.
func IdentifierFromBytes(b []byte) Identifier {
	var id Identifier
	n := copy(id.bytes[:], b)
	_ = n
	return id
}

// Bytes returns the full 16-byte little-endian representation.
func (id Identifier) Bytes() [IdentifierMaxSize]byte { return id.bytes }

// Len returns the significant-byte count: 16 minus the number of trailing
// zero bytes, with a floor of 1 (an all-zero identifier still occupies one
// byte on the wire).
func (id Identifier) Len() int {
	n := IdentifierMaxSize
	for n > 1 && id.bytes[n-1] == 0 {
		n--
	}
	return n
}

// WireLen returns Len(): the number of raw identifier bytes written to the
// wire, which is the "1 + zid_len" implied by the zid_len nibble. The
// flags byte carrying that nibble is not counted.
func (id Identifier) WireLen() int { return id.Len() }

// Encode writes the significant prefix of id to w.
func (id Identifier) Encode(w io.Writer) error {
	n := id.Len()
	_, err := w.Write(id.bytes[:n])
	return err
}

// DecodeIdentifier reads n raw little-endian bytes from r and zero-extends
// them to a full 16-byte Identifier. n must be in [1,16].
func DecodeIdentifier(r io.Reader, n int) (Identifier, error) {
	var id Identifier
	if n < 1 || n > IdentifierMaxSize {
		return id, ErrInvalidParameter
	}
	if _, err := io.ReadFull(r, id.bytes[:n]); err != nil {
		return id, err
	}
	return id, nil
}
