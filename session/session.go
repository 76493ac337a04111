// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package session implements the four-message INIT-SYN / INIT-ACK /
// OPEN-SYN / OPEN-ACK handshake and produces the agreed UnicastParams
// record. Open runs the handshake to completion and returns a *Session
// or an error; there is no partial/resumable state exposed to the caller.
package session

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	mrand "math/rand"

	"github.com/zserial/zserial"
	"github.com/zserial/zserial/cookiepool"
	"github.com/zserial/zserial/frame"
	"github.com/zserial/zserial/iobuf"
	"github.com/zserial/zserial/link"
	"github.com/zserial/zserial/wire"
)

// ErrOpenSnResolution reports that the peer's INIT-ACK proposed a larger
// sequence-number resolution, request-ID resolution, or batch size than
// this client offered in INIT-SYN. This aborts the handshake; the peer
// is abandoned (logically equivalent to a CLOSE).
var ErrOpenSnResolution = errors.New("session: peer proposed resolution or batch size larger than offered")

// ErrUnexpectedMessage reports a handshake step receiving a message of the
// wrong kind or wrong ack/syn direction.
var ErrUnexpectedMessage = wire.ErrUnexpectedMessage

// resSelector is a 2-bit resolution selector:
// 0b00=8-bit, 0b01=16-bit, 0b10=32-bit, 0b11=64-bit.
type resSelector = uint8

// snModuloMask returns the sequence-number window mask for selector r:
// MaxUint8>>1, MaxUint16>>2, MaxUint32>>4, MaxUint64>>1 for selectors
// 0..3. The drawn initial_sn_tx has every bit of this value cleared
// (v &^ mask), so initial_sn_tx & snModuloMask(r) == 0.
func snModuloMask(r resSelector) uint64 {
	switch r & 0x03 {
	case 0:
		return uint64(uint8(0xFF) >> 1)
	case 1:
		return uint64(uint16(0xFFFF) >> 2)
	case 2:
		return uint64(uint32(0xFFFFFFFF) >> 4)
	default:
		return uint64(uint64(0xFFFFFFFFFFFFFFFF) >> 1)
	}
}

// expandResolution converts a 2-bit selector to its bit-width:
// 8 << selector.
func expandResolution(selector uint8) uint8 {
	return 8 << (selector & 0x03)
}

// UnicastParams is the negotiated session record a successful handshake
// produces.
type UnicastParams struct {
	ZID         zserial.Identifier
	Role        zserial.Role
	BatchSize   uint16
	InitialSNRx uint32
	InitialSNTx uint32
	LeaseMS     uint32
	KeyIDRes    uint8 // expanded bit-width (8/16/32/64), not the 2-bit selector
	ReqIDRes    uint8 // expanded bit-width
	SeqNumRes   uint8 // kept as the 2-bit selector: used for modulus math
	IsQoS       bool
}

// Session pairs a negotiated UnicastParams with the link handle it was
// established over. At most one Session exists per link.
type Session struct {
	params UnicastParams
	link   *link.Link
	closed bool
}

// Params returns the negotiated UnicastParams.
func (s *Session) Params() UnicastParams { return s.params }

// Link returns the underlying link the session was established over, so
// a caller can drive data-plane Send/Recv once the handshake completes.
func (s *Session) Link() *link.Link { return s.link }

// Close marks the session dead. The handshake's own cookie-pool slot is
// already released by the time Open returns; Close exists so callers have
// an explicit teardown point symmetric with Open.
func (s *Session) Close() error {
	s.closed = true
	return nil
}

// SNSeeder supplies the PRNG used to draw initial_sn_tx. A nil value in
// Config makes Open seed math/rand from crypto/rand at call time.
type SNSeeder = *mrand.Rand

// Config carries the handshake's tunables beyond zserial.Config: the
// pool cookies are drawn from, the lease this client offers, and an
// optional trace hook and PRNG override for deterministic tests.
type Config struct {
	zserial.Config

	// Pool supplies the cookie slot borrowed between INIT-ACK and
	// OPEN-ACK. A nil Pool makes Open allocate a private 1-slot pool.
	Pool *cookiepool.Pool

	// LeaseMS is the lease this client offers in OPEN-SYN. Zero selects
	// zserial.TransportLease.
	LeaseMS uint32

	// SNSeed overrides the PRNG used to draw initial_sn_tx. Nil seeds
	// from crypto/rand.
	SNSeed SNSeeder

	// Trace, if non-nil, is called at each handshake step with an event
	// name and loosely-typed key/value pairs. Nil costs nothing.
	Trace func(event string, kv ...any)
}

func (c Config) trace(event string, kv ...any) {
	if c.Trace != nil {
		c.Trace(event, kv...)
	}
}

// Open runs the client-role handshake over l, which must already be
// connected (link.Link.Open having returned nil). It returns a *Session
// carrying the negotiated UnicastParams, or an error --
// ErrOpenSnResolution, ErrUnexpectedMessage, or a wrapped I/O error --
// on failure. ctx is checked once, before INIT-SYN is sent; after that the
// handshake runs to completion or failure. Open never spawns goroutines.
func Open(ctx context.Context, l *link.Link, cfg Config) (*Session, error) {
	if cfg.Mode != zserial.RoleClient {
		return nil, zserial.ErrInvalidParameter
	}
	pool := cfg.Pool
	if pool == nil {
		pool = cookiepool.New(1)
	}
	leaseMS := cfg.LeaseMS
	if leaseMS == 0 {
		leaseMS = uint32(zserial.TransportLease.Milliseconds())
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// --- INIT-SYN ---
	syn := wire.NewInitSyn(cfg.Mode, cfg.ID)
	cfg.trace("init_syn", "zid_len", cfg.ID.Len(), "seq_num_res", syn.SeqNumRes, "batch_size", syn.BatchSize)
	if err := sendMessage(l, syn); err != nil {
		return nil, fmt.Errorf("session: send INIT-SYN: %w", err)
	}

	// --- INIT-ACK ---
	recvBuf := iobuf.New(frame.MaxPayloadLen)
	ack, err := recvInit(l, recvBuf)
	if err != nil {
		return nil, fmt.Errorf("session: recv INIT-ACK: %w", err)
	}
	if !ack.Ack {
		return nil, fmt.Errorf("session: %w: expected INIT-ACK", ErrUnexpectedMessage)
	}
	cfg.trace("init_ack", "seq_num_res", ack.SeqNumRes, "batch_size", ack.BatchSize, "cookie_len", len(ack.Cookie))

	seqNumRes, err := resolveDownward(syn.SeqNumRes, ack.SeqNumRes)
	if err != nil {
		return nil, err
	}
	reqIDRes, err := resolveDownward(syn.ReqIDRes, ack.ReqIDRes)
	if err != nil {
		return nil, err
	}
	batchSize, err := resolveBatchSize(syn.BatchSize, ack.BatchSize)
	if err != nil {
		return nil, err
	}

	cookieHandle, err := pool.Acquire(ack.Cookie)
	if err != nil {
		return nil, fmt.Errorf("session: acquire cookie: %w", err)
	}

	initialSNTx, err := drawInitialSN(cfg.SNSeed, seqNumRes)
	if err != nil {
		cookieHandle.Release()
		return nil, err
	}

	// --- OPEN-SYN ---
	openSyn := wire.NewOpenSyn(leaseMS, initialSNTx, cookieHandle.Bytes())
	cfg.trace("open_syn", "lease_ms", leaseMS, "initial_sn_tx", initialSNTx)
	if err := sendMessage(l, openSyn); err != nil {
		cookieHandle.Release()
		return nil, fmt.Errorf("session: send OPEN-SYN: %w", err)
	}

	// --- OPEN-ACK ---
	openAck, err := recvOpen(l, recvBuf)
	if err != nil {
		cookieHandle.Release()
		return nil, fmt.Errorf("session: recv OPEN-ACK: %w", err)
	}
	if !openAck.Ack {
		cookieHandle.Release()
		return nil, fmt.Errorf("session: %w: expected OPEN-ACK", ErrUnexpectedMessage)
	}
	cfg.trace("open_ack", "lease_ms", openAck.LeaseMS, "initial_sn_rx", openAck.InitialSN)

	cookieHandle.Release()

	// The wire handshake only negotiates req_id_res/seq_num_res;
	// key_id_res has no separate selector on the wire, so it tracks
	// req_id_res's expanded width.
	params := UnicastParams{
		ZID:         cfg.ID,
		Role:        cfg.Mode,
		BatchSize:   batchSize,
		InitialSNRx: openAck.InitialSN,
		InitialSNTx: initialSNTx,
		LeaseMS:     openAck.LeaseMS,
		KeyIDRes:    expandResolution(reqIDRes),
		ReqIDRes:    expandResolution(reqIDRes),
		SeqNumRes:   seqNumRes,
		IsQoS:       false,
	}
	return &Session{params: params, link: l}, nil
}

// resolveDownward applies the downward-only negotiation rule shared by
// seq_num_res and req_id_res: the peer may only propose a resolution at
// or below what we offered.
func resolveDownward(syn, ack uint8) (uint8, error) {
	if syn < ack {
		return 0, ErrOpenSnResolution
	}
	return ack, nil
}

// resolveBatchSize implements the same downward-only rule for batch_size.
func resolveBatchSize(syn, ack uint16) (uint16, error) {
	if syn < ack {
		return 0, ErrOpenSnResolution
	}
	return ack, nil
}

// drawInitialSN draws a random sequence number, clears the bits covered by
// snModuloMask(r), and truncates the result to 32 bits. If seed is nil the
// PRNG is seeded from crypto/rand at call time.
func drawInitialSN(seed SNSeeder, r resSelector) (uint32, error) {
	rng := seed
	if rng == nil {
		var seedBytes [8]byte
		if _, err := io.ReadFull(rand.Reader, seedBytes[:]); err != nil {
			return 0, fmt.Errorf("session: seed PRNG: %w", err)
		}
		rng = mrand.New(mrand.NewSource(int64(binary.LittleEndian.Uint64(seedBytes[:]))))
	}
	v := rng.Uint64()
	mask := snModuloMask(r)
	return uint32(v &^ mask), nil
}

// sendMessage encodes m's header+body and sends it over l. Handshake
// messages carry their own header byte as the frame's header, distinct
// from the data-frame header=0 convention link.Send/Recv otherwise use
// for payload frames.
func sendMessage(l *link.Link, m interface{ Encode(io.Writer) error }) error {
	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		return err
	}
	body := buf.Bytes()
	if len(body) < 1 {
		return wire.ErrUnexpectedMessage
	}
	return l.Send(body[0], body[1:])
}

// recvInit reads one frame into buf's spare capacity and decodes it as an
// InitMessage in place, without a further copy.
func recvInit(l *link.Link, buf *iobuf.Buf) (wire.InitMessage, error) {
	buf.Reset()
	n, header, err := l.Recv(buf.Spare())
	if err != nil {
		return wire.InitMessage{}, err
	}
	buf.Commit(n)
	return wire.DecodeInit(buf.Cursor(buf.Len()), header)
}

func recvOpen(l *link.Link, buf *iobuf.Buf) (wire.OpenMessage, error) {
	buf.Reset()
	n, header, err := l.Recv(buf.Spare())
	if err != nil {
		return wire.OpenMessage{}, err
	}
	buf.Commit(n)
	return wire.DecodeOpen(buf.Cursor(buf.Len()), header)
}
