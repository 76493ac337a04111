// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wire implements the handshake message model exchanged over a
// frame: INIT-SYN, INIT-ACK, OPEN-SYN, and OPEN-ACK. Each message is a
// plain struct with an Encode method and a matching package-level decode
// function parameterized over io.Reader/io.Writer.
package wire

import "errors"

// Message ID occupies the low 5 bits of a frame's header byte.
const (
	MIDInit uint8 = 0x01
	MIDOpen uint8 = 0x02

	// Reserved message kinds recognized but not realized by this client;
	// DecodeInit/DecodeOpen never produce them, but a peer's header byte
	// carrying one of these IDs is reported as ErrUnexpectedMessage
	// rather than silently misparsed as INIT or OPEN.
	midJoin      uint8 = 0x03
	midClose     uint8 = 0x04
	midKeepAlive uint8 = 0x05
	midFrame     uint8 = 0x06
	midFragment  uint8 = 0x07
)

// midMask isolates the message ID from a header byte's flag bits.
const midMask uint8 = 0x1F

// ErrUnexpectedMessage reports a header byte whose message ID is not one
// this client's handshake step expects or does not realize at all.
var ErrUnexpectedMessage = errors.New("wire: unexpected message")

// ErrExtensionsUnsupported reports a message whose Z (extensions) flag is
// set. Extensions are recognized on the wire but not decoded.
var ErrExtensionsUnsupported = errors.New("wire: extensions unsupported")

// MessageID extracts the message ID from a frame header byte.
func MessageID(header byte) uint8 {
	return uint8(header) & midMask
}
