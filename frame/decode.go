// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frame

import (
	"encoding/binary"
	"hash/crc32"
	"io"
)

// readFrameBytes reads from r one byte at a time into raw until a 0x00
// terminator is observed, returning the number of bytes accumulated
// (excluding the terminator). It returns (0, nil) -- a silent discard --
// if raw fills up without a terminator appearing. A zserial.ErrWouldBlock
// from r is retried per p rather than propagated: decode cannot tolerate
// a truncated frame, so the read loop blocks (or yields, per p) until a
// byte actually arrives instead of returning a partial accumulation.
func readFrameBytes(r io.Reader, raw []byte, p retryPolicy) (int, error) {
	got := 0
	var one [1]byte
	for {
		if got == len(raw) {
			return 0, nil
		}
		if err := readByteRetrying(r, one[:], p); err != nil {
			return 0, err
		}
		if one[0] == 0 {
			return got, nil
		}
		raw[got] = one[0]
		got++
	}
}

// parseFrame un-stuffs raw[:rawLen] into unstuffed, validates the length
// field and CRC32, and copies the payload into buf.
func parseFrame(unstuffed []byte, raw []byte, buf []byte) (n int, header byte, err error) {
	ulen, derr := stuffDecode(unstuffed, raw)
	if derr != nil {
		return 0, 0, derr
	}
	if ulen < headerLen+lengthLen+crcLen {
		return 0, 0, ErrDecode
	}

	header = unstuffed[0]
	wireLen := int(binary.LittleEndian.Uint16(unstuffed[headerLen : headerLen+lengthLen]))
	if headerLen+lengthLen+wireLen+crcLen != ulen {
		return 0, 0, ErrInvalidFrame
	}
	if wireLen > len(buf) {
		return 0, 0, ErrInvalidFrame
	}

	payload := unstuffed[headerLen+lengthLen : headerLen+lengthLen+wireLen]
	gotCRC := binary.LittleEndian.Uint32(unstuffed[headerLen+lengthLen+wireLen : ulen])
	if wantCRC := crc32.ChecksumIEEE(payload); gotCRC != wantCRC {
		return 0, 0, ErrCRC
	}

	n = copy(buf, payload)
	return n, header, nil
}

// Decode reads one stuffed frame terminated by 0x00 from r, un-stuffs it,
// verifies its CRC32, and copies the payload to the start of buf. It
// returns (0, 0, nil) if the terminator is never observed before the
// internal accumulator (sized MaxWireLen) is exhausted.
func Decode(r io.Reader, buf []byte) (n int, header byte, err error) {
	var raw [MaxWireLen]byte
	got, err := readFrameBytes(r, raw[:], defaultRetryPolicy)
	if err != nil {
		return 0, 0, err
	}
	if got == 0 {
		// Accumulator exhausted without a terminator: silent discard.
		return 0, 0, nil
	}
	var unstuffed [MaxWireLen]byte
	return parseFrame(unstuffed[:], raw[:got], buf)
}

// Decoder is a reusable Decode: it owns its scratch buffers so repeated
// calls across the lifetime of a link never allocate.
type Decoder struct {
	r         io.Reader
	policy    retryPolicy
	raw       [MaxWireLen]byte
	unstuffed [MaxWireLen]byte
}

// NewDecoder returns a Decoder reading stuffed frames from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	p := defaultRetryPolicy
	for _, fn := range opts {
		fn(&p)
	}
	return &Decoder{r: r, policy: p}
}

// Decode reads and validates one frame. See the package-level Decode for
// the contract; this method is the zero-allocation, buffer-owning variant.
func (d *Decoder) Decode(buf []byte) (n int, header byte, err error) {
	got, err := readFrameBytes(d.r, d.raw[:], d.policy)
	if err != nil {
		return 0, 0, err
	}
	if got == 0 {
		return 0, 0, nil
	}
	return parseFrame(d.unstuffed[:], d.raw[:got], buf)
}
