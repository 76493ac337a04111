// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package zserial_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/zserial/zserial"
)

func trailingZeroBytes(b [16]byte) int {
	n := 0
	for i := len(b) - 1; i >= 0 && b[i] == 0; i-- {
		n++
	}
	return n
}

func TestIdentifierLenSuppressesTrailingZeros(t *testing.T) {
	cases := []struct {
		in   []byte
		want int
	}{
		{nil, 1},
		{[]byte{0x00}, 1},
		{[]byte{0x01}, 1},
		{[]byte{0x01, 0x00}, 1},
		{[]byte{0x00, 0x01}, 2},
		{[]byte{0x01, 0x02, 0x03}, 3},
		{bytes.Repeat([]byte{0xFF}, 16), 16},
	}
	for _, c := range cases {
		id := zserial.IdentifierFromBytes(c.in)
		if got := id.Len(); got != c.want {
			t.Fatalf("Len(%x)=%d want %d", c.in, got, c.want)
		}
	}
}

func TestIdentifierWireLengthFormula(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		var raw [16]byte
		rng.Read(raw[:])
		// Zero out a random-length tail to exercise the suppression rule.
		for j := 16 - rng.Intn(17); j < 16; j++ {
			raw[j] = 0
		}
		id := zserial.IdentifierFromBytes(raw[:])
		want := 16 - trailingZeroBytes(raw)
		if want < 1 {
			want = 1
		}
		if got := id.WireLen(); got != want {
			t.Fatalf("WireLen(%x)=%d want %d", raw, got, want)
		}
	}
}

func TestIdentifierEncodeDecodeRoundTrip(t *testing.T) {
	id := zserial.IdentifierFromBytes([]byte{0x49, 0x00, 0x27})
	var buf bytes.Buffer
	if err := id.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if buf.Len() != id.Len() {
		t.Fatalf("encoded %d bytes, want %d", buf.Len(), id.Len())
	}
	got, err := zserial.DecodeIdentifier(&buf, id.Len())
	if err != nil {
		t.Fatalf("DecodeIdentifier: %v", err)
	}
	if got.Bytes() != id.Bytes() {
		t.Fatalf("round trip: got %x want %x", got.Bytes(), id.Bytes())
	}
}

func TestDecodeIdentifierRejectsBadLength(t *testing.T) {
	for _, n := range []int{0, 17} {
		if _, err := zserial.DecodeIdentifier(bytes.NewReader(make([]byte, 32)), n); err == nil {
			t.Fatalf("DecodeIdentifier(n=%d): want error", n)
		}
	}
}

func TestNewAcceptsClientOnly(t *testing.T) {
	id := zserial.IdentifierFromBytes([]byte{0x01})

	if _, err := zserial.New(id, zserial.RoleClient); err != nil {
		t.Fatalf("New(client): %v", err)
	}
	for _, mode := range []zserial.Role{zserial.RoleRouter, zserial.RolePeer, 0b11} {
		if _, err := zserial.New(id, mode); err == nil {
			t.Fatalf("New(%v): want ErrInvalidParameter", mode)
		}
	}
}
