// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package varint_test

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/zserial/zserial/varint"
)

func TestRoundTripSmallValues(t *testing.T) {
	for _, v := range []uint64{0, 1, 0x7F, 0x80, 0x3FFF, 0x4000, 1 << 20, 1<<63 - 1, 1<<64 - 1} {
		var buf [10]byte
		n := varint.EncodeUint64(buf[:], v)
		wantLen := varint.EncodedLen(v)
		if n != wantLen {
			t.Fatalf("EncodeUint64(%d): wrote %d bytes, EncodedLen says %d", v, n, wantLen)
		}
		got, err := varint.DecodeUint64(bytes.NewReader(buf[:n]))
		if err != nil {
			t.Fatalf("DecodeUint64(%d): %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip %d => %d", v, got)
		}
	}
}

func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		v := rng.Uint64()
		buf := varint.AppendUint64(nil, v)
		got, err := varint.DecodeUint64(bytes.NewReader(buf))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got != v {
			t.Fatalf("round trip %d => %d", v, got)
		}
	}
}

func TestDecodeOverflow(t *testing.T) {
	// 11 continuation bytes never terminate within the 11-byte bound for a
	// 64-bit value.
	bad := bytes.Repeat([]byte{0x80}, 11)
	if _, err := varint.DecodeUint64(bytes.NewReader(bad)); !errors.Is(err, varint.ErrOverflow) {
		t.Fatalf("want ErrOverflow, got %v", err)
	}
}

func TestEncodedLenMinimal(t *testing.T) {
	cases := map[uint64]int{
		0:       1,
		1:       1,
		127:     1,
		128:     2,
		16383:   2,
		16384:   3,
		1 << 63: 10,
	}
	for v, want := range cases {
		if got := varint.EncodedLen(v); got != want {
			t.Fatalf("EncodedLen(%d)=%d want %d", v, got, want)
		}
	}
}
