// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cookiepool_test

import (
	"bytes"
	"testing"

	"github.com/zserial/zserial/cookiepool"
)

func TestAcquireRelease(t *testing.T) {
	p := cookiepool.New(1)

	h, err := p.Acquire([]byte{0xCA, 0xFE, 0xF0, 0x0D})
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if got := h.Bytes(); !bytes.Equal(got, []byte{0xCA, 0xFE, 0xF0, 0x0D}) {
		t.Fatalf("Bytes()=%x want CAFEF00D", got)
	}

	if _, err := p.Acquire([]byte{0x01}); err != cookiepool.ErrPoolExhausted {
		t.Fatalf("second Acquire err=%v want ErrPoolExhausted", err)
	}

	h.Release()

	if _, err := p.Acquire([]byte{0x01}); err != nil {
		t.Fatalf("Acquire after Release: %v", err)
	}
}

func TestAcquireTooLong(t *testing.T) {
	p := cookiepool.New(1)
	big := make([]byte, cookiepool.MaxCookieLen+1)
	if _, err := p.Acquire(big); err != cookiepool.ErrTooLong {
		t.Fatalf("err=%v want ErrTooLong", err)
	}
}

func TestReleaseZeroHandleNoop(t *testing.T) {
	var h cookiepool.Handle
	h.Release() // must not panic
}

func TestEmptyCookie(t *testing.T) {
	p := cookiepool.New(1)
	h, err := p.Acquire(nil)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if len(h.Bytes()) != 0 {
		t.Fatalf("Bytes()=%x want empty", h.Bytes())
	}
}
