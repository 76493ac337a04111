// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"

	"github.com/zserial/zserial"
	"github.com/zserial/zserial/varint"
)

const (
	flagInitA uint8 = 1 << 5 // Ack: 0=InitSyn, 1=InitAck
	flagInitS uint8 = 1 << 6 // Size params follow
	flagInitZ uint8 = 1 << 7 // Extensions follow
)

// Defaults an INIT-SYN's S flag is omitted against.
const (
	defaultMulticastBatchSize uint16 = 8192
	defaultResolutionSize     uint8  = 2
)

// InitMessage is the realized INIT-SYN/INIT-ACK variant. Ack distinguishes
// the two: false is InitSyn, true is InitAck.
type InitMessage struct {
	Ack       bool
	Version   uint8
	ID        zserial.Identifier
	Role      zserial.Role
	SeqNumRes uint8
	ReqIDRes  uint8
	BatchSize uint16
	// Cookie is populated on InitAck only; the responder's opaque state
	// echoed back unchanged in the initiator's OPEN-SYN.
	Cookie []byte
}

// NewInitSyn builds the initiator's INIT-SYN with this client's defaults.
func NewInitSyn(role zserial.Role, id zserial.Identifier) InitMessage {
	return InitMessage{
		Version:   zserial.ProtocolVersion,
		ID:        id,
		Role:      role,
		SeqNumRes: zserial.DefaultSNResolution,
		ReqIDRes:  zserial.DefaultReqResolution,
		BatchSize: zserial.BatchUnicastSize,
	}
}

// header computes the INIT header byte: message ID plus the A and S flags
// implied by m's fields. S is set whenever any size parameter diverges
// from this codec's wire defaults, so a peer that never negotiates still
// gets a minimal INIT-SYN.
func (m InitMessage) header() byte {
	h := MIDInit
	if m.BatchSize != defaultMulticastBatchSize || m.SeqNumRes != defaultResolutionSize || m.ReqIDRes != defaultResolutionSize {
		h |= flagInitS
	}
	if m.Ack {
		h |= flagInitA
	}
	return h
}

// Encode writes m's header and body to w.
func (m InitMessage) Encode(w io.Writer) error {
	header := m.header()
	if err := writeByte(w, header); err != nil {
		return err
	}
	if err := writeByte(w, m.Version); err != nil {
		return err
	}

	zidFlags := byte(m.ID.Len()-1)<<4 | byte(m.Role)&0x03
	if err := writeByte(w, zidFlags); err != nil {
		return err
	}
	if err := m.ID.Encode(w); err != nil {
		return err
	}

	if header&flagInitS == flagInitS {
		cbyte := (m.SeqNumRes & 0x03) | (m.ReqIDRes&0x03)<<2
		if err := writeByte(w, cbyte); err != nil {
			return err
		}
		var batch [2]byte
		binary.LittleEndian.PutUint16(batch[:], m.BatchSize)
		if _, err := w.Write(batch[:]); err != nil {
			return err
		}
	}

	if header&flagInitA == flagInitA {
		if _, err := w.Write(varint.AppendUint64(nil, uint64(len(m.Cookie)))); err != nil {
			return err
		}
		if len(m.Cookie) > 0 {
			if _, err := w.Write(m.Cookie); err != nil {
				return err
			}
		}
	}

	return nil
}

// DecodeInit decodes an INIT-SYN or INIT-ACK body. header is the frame
// header byte already read by the caller (the frame codec hands back
// header separately from the payload stream). It returns
// ErrUnexpectedMessage if header's message ID is not MIDInit, and
// ErrExtensionsUnsupported if the Z flag is set.
func DecodeInit(r io.Reader, header byte) (InitMessage, error) {
	if MessageID(header) != MIDInit {
		return InitMessage{}, ErrUnexpectedMessage
	}
	if header&flagInitZ == flagInitZ {
		return InitMessage{}, ErrExtensionsUnsupported
	}

	var m InitMessage
	m.Ack = header&flagInitA == flagInitA

	version, err := readByte(r)
	if err != nil {
		return InitMessage{}, err
	}
	m.Version = version

	zidFlags, err := readByte(r)
	if err != nil {
		return InitMessage{}, err
	}
	m.Role = zserial.Role(zidFlags & 0x03)
	zidLen := int(zidFlags>>4) + 1

	id, err := zserial.DecodeIdentifier(r, zidLen)
	if err != nil {
		return InitMessage{}, err
	}
	m.ID = id

	if header&flagInitS == flagInitS {
		cbyte, err := readByte(r)
		if err != nil {
			return InitMessage{}, err
		}
		m.SeqNumRes = cbyte & 0x03
		m.ReqIDRes = (cbyte & 0x0C) >> 2

		var batch [2]byte
		if _, err := io.ReadFull(r, batch[:]); err != nil {
			return InitMessage{}, err
		}
		m.BatchSize = binary.LittleEndian.Uint16(batch[:])
	} else {
		m.SeqNumRes = defaultResolutionSize
		m.ReqIDRes = defaultResolutionSize
		m.BatchSize = defaultMulticastBatchSize
	}

	if m.Ack {
		cookieLen, err := varint.DecodeUint64(r)
		if err != nil {
			return InitMessage{}, err
		}
		if cookieLen > 0 {
			cookie := make([]byte, cookieLen)
			if _, err := io.ReadFull(r, cookie); err != nil {
				return InitMessage{}, err
			}
			m.Cookie = cookie
		}
	}

	return m, nil
}

func writeByte(w io.Writer, b byte) error {
	var one [1]byte
	one[0] = b
	_, err := w.Write(one[:])
	return err
}

func readByte(r io.Reader) (byte, error) {
	var one [1]byte
	if _, err := io.ReadFull(r, one[:]); err != nil {
		return 0, err
	}
	return one[0], nil
}
