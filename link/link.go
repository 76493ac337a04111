// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package link

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/zserial/zserial"
	"github.com/zserial/zserial/frame"
)

// Connect-phase header flags. These occupy the same header byte the
// frame codec stuffs and CRCs, but belong to a separate, earlier
// namespace than wire.MIDInit/wire.MIDOpen: no session message has been
// exchanged yet when these are in play.
const (
	connectInit  uint8 = 0x01
	connectAck   uint8 = 0x02
	connectReset uint8 = 0x04
)

// Link pairs a frame codec with the caller-supplied byte adapters and the
// capability bits describing how frames flow over it.
type Link struct {
	enc   *frame.Encoder
	dec   *frame.Decoder
	delay zserial.Delayer
	cap   Capabilities

	scratch [frame.MaxPayloadLen]byte
}

// New wraps r/w/d into a Link with the given capabilities. opts configure
// the frame codec's zserial.ErrWouldBlock retry policy (frame.WithRetryDelay,
// frame.WithNonblock); the default blocks until a byte is available.
func New(r zserial.Reader, w zserial.Writer, d zserial.Delayer, cap Capabilities, opts ...frame.Option) *Link {
	return &Link{
		enc:   frame.NewEncoder(writerAdapter{w}, opts...),
		dec:   frame.NewDecoder(r, opts...),
		delay: d,
		cap:   cap,
	}
}

// Capabilities returns the link's capability bits.
func (l *Link) Capabilities() Capabilities { return l.cap }

// writerAdapter satisfies io.Writer and frame.Flusher over a
// zserial.Writer, since zserial.Writer.Flush has no error-ignoring variant
// for frame.Encode's optional interface check.
type writerAdapter struct{ w zserial.Writer }

func (a writerAdapter) Write(p []byte) (int, error) { return a.w.Write(p) }
func (a writerAdapter) Flush() error                { return a.w.Flush() }

// Open runs the serial-connect handshake: repeatedly send an INIT
// connect-frame until the peer answers with ACK|INIT, backing off for
// SerialConnectThrottle between a RESET response and the next attempt. ctx
// cancellation is checked between attempts. A connect-frame that never
// resolves to a terminator within the codec's buffer is surfaced as
// ErrConnectFrameDiscarded rather than retried transparently; the caller
// decides whether a noisy line is worth another Open.
func (l *Link) Open(ctx context.Context) error {
	bo := backoff.NewConstantBackOff(zserial.SerialConnectThrottle)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := l.enc.Encode(connectInit, nil); err != nil {
			return err
		}

		n, header, err := l.dec.Decode(l.scratch[:])
		if err != nil {
			return err
		}
		if n == 0 && header == 0 {
			return ErrConnectFrameDiscarded
		}

		if header&(connectAck|connectInit) == connectAck|connectInit {
			return nil
		}
		if header&connectReset == connectReset {
			l.delay.DelayMs(uint32(bo.NextBackOff() / time.Millisecond))
			continue
		}
		return ErrUnknownConnectFrame
	}
}

// Send writes one frame carrying header and payload.
func (l *Link) Send(header byte, payload []byte) error {
	if l.cap.Flow() == FlowStream {
		return ErrStreamFlowUnsupported
	}
	return l.enc.Encode(header, payload)
}

// Recv reads one frame into buf, returning its payload length and header.
func (l *Link) Recv(buf []byte) (n int, header byte, err error) {
	if l.cap.Flow() == FlowStream {
		return 0, 0, ErrStreamFlowUnsupported
	}
	return l.dec.Decode(buf)
}
