// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frame

import (
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/zserial/zserial"
)

// writeAllRetrying writes all of p to w, retrying short writes that fail
// with zserial.ErrWouldBlock per pol -- the write-side counterpart of
// readByteRetrying. The Writer adapter contract is that a send never
// short-writes, even when the underlying transport is only willing to
// accept part of p at a time.
func writeAllRetrying(w io.Writer, p []byte, pol retryPolicy) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		p = p[n:]
		if len(p) == 0 {
			return nil
		}
		if err != zserial.ErrWouldBlock {
			if err == nil {
				err = io.ErrShortWrite
			}
			return err
		}
		if !pol.waitOnce() {
			return err
		}
	}
	return nil
}

// Flusher is implemented by writers that must be explicitly flushed after
// a frame's terminator byte to guarantee the frame is committed to the
// wire before the send returns.
type Flusher interface {
	Flush() error
}

// buildRaw fills raw[:n] with [header|len|payload|crc] and returns n.
func buildRaw(raw *[maxRawLen]byte, header byte, payload []byte) int {
	raw[0] = header
	binary.LittleEndian.PutUint16(raw[headerLen:headerLen+lengthLen], uint16(len(payload)))
	copy(raw[headerLen+lengthLen:], payload)
	crc := crc32.ChecksumIEEE(payload)
	binary.LittleEndian.PutUint32(raw[headerLen+lengthLen+len(payload):], crc)
	return headerLen + lengthLen + len(payload) + crcLen
}

// Encode stages one complete frame for (header, payload) in a fixed-size
// local buffer, writes the stuffed, 0x00-terminated result to w, and
// flushes w if it implements Flusher. payload must be at most
// MaxPayloadLen bytes, or Encode returns ErrTooLong.
func Encode(w io.Writer, header byte, payload []byte) error {
	if len(payload) > MaxPayloadLen {
		return ErrTooLong
	}
	var raw [maxRawLen]byte
	rawLen := buildRaw(&raw, header, payload)

	var stuffed [MaxWireLen]byte
	n := stuffEncode(stuffed[:], raw[:rawLen])
	stuffed[n] = 0
	n++

	if err := writeAllRetrying(w, stuffed[:n], defaultRetryPolicy); err != nil {
		return err
	}
	if f, ok := w.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

// Encoder is a reusable Encode: it owns its scratch buffers so repeated
// calls across the lifetime of a link never allocate.
type Encoder struct {
	w       io.Writer
	policy  retryPolicy
	raw     [maxRawLen]byte
	stuffed [MaxWireLen]byte
}

// NewEncoder returns an Encoder writing stuffed frames to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	p := defaultRetryPolicy
	for _, fn := range opts {
		fn(&p)
	}
	return &Encoder{w: w, policy: p}
}

// Encode writes one complete stuffed frame for (header, payload). See
// the package-level Encode for the wire-format contract; this method is
// the zero-allocation, buffer-owning variant of it.
func (e *Encoder) Encode(header byte, payload []byte) error {
	if len(payload) > MaxPayloadLen {
		return ErrTooLong
	}
	rawLen := buildRaw(&e.raw, header, payload)

	n := stuffEncode(e.stuffed[:], e.raw[:rawLen])
	e.stuffed[n] = 0
	n++

	if err := writeAllRetrying(e.w, e.stuffed[:n], e.policy); err != nil {
		return err
	}
	if f, ok := e.w.(Flusher); ok {
		return f.Flush()
	}
	return nil
}
