// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/zserial/zserial/varint"
)

const (
	flagOpenA uint8 = 1 << 5 // Ack: 0=OpenSyn, 1=OpenAck
	flagOpenT uint8 = 1 << 6 // Lease is whole seconds, else milliseconds
	flagOpenZ uint8 = 1 << 7 // Extensions follow
)

// OpenMessage is the realized OPEN-SYN/OPEN-ACK variant. Ack distinguishes
// the two: false is OpenSyn, true is OpenAck.
type OpenMessage struct {
	Ack       bool
	LeaseMS   uint32
	InitialSN uint32
	// Cookie is present on OpenSyn only: the responder's cookie from
	// InitAck, echoed back unchanged.
	Cookie []byte
}

// NewOpenSyn builds the initiator's OPEN-SYN.
func NewOpenSyn(leaseMS, initialSN uint32, cookie []byte) OpenMessage {
	return OpenMessage{LeaseMS: leaseMS, InitialSN: initialSN, Cookie: cookie}
}

// NewOpenAck builds the responder's OPEN-ACK.
func NewOpenAck(leaseMS, initialSN uint32) OpenMessage {
	return OpenMessage{Ack: true, LeaseMS: leaseMS, InitialSN: initialSN}
}

// header computes the OPEN header byte. T is set whenever the lease is an
// exact multiple of one second, letting the wire value shrink from
// milliseconds to seconds.
func (m OpenMessage) header() byte {
	h := MIDOpen
	if m.LeaseMS%1000 == 0 {
		h |= flagOpenT
	}
	if m.Ack {
		h |= flagOpenA
	}
	return h
}

// Encode writes m's header and body to w.
func (m OpenMessage) Encode(w io.Writer) error {
	header := m.header()
	if err := writeByte(w, header); err != nil {
		return err
	}

	lease := uint64(m.LeaseMS)
	if header&flagOpenT == flagOpenT {
		lease /= 1000
	}
	if _, err := w.Write(varint.AppendUint64(nil, lease)); err != nil {
		return err
	}
	if _, err := w.Write(varint.AppendUint64(nil, uint64(m.InitialSN))); err != nil {
		return err
	}

	if header&flagOpenA == 0 {
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

// DecodeOpen decodes an OPEN-SYN or OPEN-ACK body. header is the frame
// header byte already read by the caller. It returns ErrUnexpectedMessage
// if header's message ID is not MIDOpen, and ErrExtensionsUnsupported if
// the Z flag is set.
func DecodeOpen(r io.Reader, header byte) (OpenMessage, error) {
	if MessageID(header) != MIDOpen {
		return OpenMessage{}, ErrUnexpectedMessage
	}
	if header&flagOpenZ == flagOpenZ {
		return OpenMessage{}, ErrExtensionsUnsupported
	}

	var m OpenMessage
	m.Ack = header&flagOpenA == flagOpenA

	lease, err := varint.DecodeUint32(r)
	if err != nil {
		return OpenMessage{}, err
	}
	if header&flagOpenT == flagOpenT {
		lease *= 1000
	}
	m.LeaseMS = lease

	initialSN, err := varint.DecodeUint32(r)
	if err != nil {
		return OpenMessage{}, err
	}
	m.InitialSN = initialSN

	if !m.Ack {
		cookieLen, err := varint.DecodeUint64(r)
		if err != nil {
			return OpenMessage{}, err
		}
		if cookieLen > 0 {
			cookie := make([]byte, cookieLen)
			if _, err := io.ReadFull(r, cookie); err != nil {
				return OpenMessage{}, err
			}
			m.Cookie = cookie
		}
	}

	return m, nil
}
