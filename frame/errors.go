// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frame

import "errors"

var (
	// ErrInvalidFrame reports that a decoded length does not fit the
	// destination buffer, or that the advertised length does not match
	// the decoded region's actual size.
	ErrInvalidFrame = errors.New("frame: invalid frame")

	// ErrDecode reports that the byte-stuffing structure was violated
	// (a zero-length block marker, or a block that runs past the end of
	// the received data).
	ErrDecode = errors.New("frame: decode error")

	// ErrCRC reports a CRC32 mismatch between the advertised and computed
	// checksum of the payload.
	ErrCRC = errors.New("frame: crc error")

	// ErrTooLong reports that a payload exceeds MaxPayloadLen.
	ErrTooLong = errors.New("frame: message too long")
)

const (
	// MaxPayloadLen is the largest payload a single frame may carry.
	MaxPayloadLen = 1500

	headerLen = 1
	lengthLen = 2
	crcLen    = 4

	// MaxWireLen bounds the on-the-wire stuffed frame, including the
	// terminator: 1500 payload + 7 fixed bytes + worst-case stuffing
	// overhead + terminator.
	MaxWireLen = 1517

	// maxRawLen is the largest unstuffed [header|len|payload|crc] region.
	maxRawLen = headerLen + lengthLen + MaxPayloadLen + crcLen
)
