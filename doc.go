// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package zserial is an embedded-class client for a publish/subscribe
// data-fabric session carried over a byte-oriented serial link.
//
// The package assumes no dynamic allocator, no operating system, and a
// single execution context: every operation is driven by a blocking byte
// Reader, a blocking byte Writer, and a millisecond Delayer supplied by the
// caller. There is no internal concurrency; suspension only ever happens
// inside one of those three adapter calls.
//
// Subpackages implement the layers below this one:
//
//   - frame: byte-stuffed, CRC32-protected frame codec
//   - wire: handshake message encode/decode
//   - link: serial connect handshake and send/recv over frame
//   - session: the INIT/OPEN handshake state machine producing UnicastParams
//   - varint, iobuf, cookiepool: small fixed-capacity wire primitives
//   - serialport: concrete UART adapters (out of scope for the core, but
//     shipped so the handshake can run against real hardware)
package zserial

import "code.hybscloud.com/iox"

// Re-exported so callers implementing Reader/Writer don't need to import
// iox directly to recognize the non-blocking control-flow sentinels.
var (
	// ErrWouldBlock means the adapter made no progress and the caller
	// should retry later. It is not a failure.
	ErrWouldBlock = iox.ErrWouldBlock

	// ErrMore means the adapter produced a usable partial result and more
	// data is expected from the same logical operation.
	ErrMore = iox.ErrMore
)
