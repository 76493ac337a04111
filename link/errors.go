// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package link implements the serial-connect handshake and the
// send/recv primitives a session is built on top of: a Link pairs a
// frame.Encoder/frame.Decoder with the caller-supplied byte adapters and
// the link-capability bits describing how frames flow over it.
package link

import "errors"

// ErrUnknownConnectFrame reports a connect-phase response whose header
// carries neither the ACK|INIT combination nor the RESET bit -- a peer
// speaking a protocol this client does not recognize.
var ErrUnknownConnectFrame = errors.New("link: unknown connect response")

// ErrConnectFrameDiscarded reports that the connect phase's Decode call
// returned the silent-discard result (0, 0, nil): a line that never
// produced a terminator inside the frame codec's buffer. The link layer
// surfaces this as an I/O error rather than retrying transparently.
var ErrConnectFrameDiscarded = errors.New("link: connect frame discarded (no terminator observed)")

// ErrStreamFlowUnsupported reports a Capabilities value whose flow is
// FlowStream. Only datagram-flow transports (a single frame per Send/Recv
// call, no reassembly of frame boundaries out of a byte stream) are
// realized by this client.
var ErrStreamFlowUnsupported = errors.New("link: stream flow unsupported")
