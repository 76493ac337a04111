// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cookiepool implements a fixed-slot cookie pool in place of a
// heap: a statically sized array of (in_use, buf, len) slots. The
// session package borrows exactly one slot
// between INIT-ACK receipt and OPEN-ACK receipt; slot count defaults to 1
// to match the single-session-per-link constraint, but a caller juggling
// more than one in-flight handshake in tests can request more.
package cookiepool

import "errors"

// MaxCookieLen bounds a single cookie.
const MaxCookieLen = 1024

// ErrPoolExhausted reports that every slot in the pool is in use.
var ErrPoolExhausted = errors.New("cookiepool: no free slot")

// ErrTooLong reports that a cookie exceeds MaxCookieLen.
var ErrTooLong = errors.New("cookiepool: cookie too long")

type slot struct {
	inUse bool
	buf   [MaxCookieLen]byte
	n     int
}

// Pool is a fixed-size set of cookie slots. The zero value is not usable;
// construct with New.
type Pool struct {
	slots []slot
}

// New returns a Pool with n slots. n is typically 1, matching the
// single-session constraint; callers juggling multiple concurrent
// handshakes in a test harness may request more.
func New(n int) *Pool {
	return &Pool{slots: make([]slot, n)}
}

// Handle identifies a borrowed slot. The zero Handle is not a valid
// borrow; Acquire is the only way to obtain one.
type Handle struct {
	pool *Pool
	idx  int
}

// Acquire copies cookie into a free slot and returns a Handle referencing
// it. It returns ErrTooLong if cookie exceeds MaxCookieLen, or
// ErrPoolExhausted if every slot is already in use.
func (p *Pool) Acquire(cookie []byte) (Handle, error) {
	if len(cookie) > MaxCookieLen {
		return Handle{}, ErrTooLong
	}
	for i := range p.slots {
		if !p.slots[i].inUse {
			p.slots[i].inUse = true
			p.slots[i].n = copy(p.slots[i].buf[:], cookie)
			return Handle{pool: p, idx: i}, nil
		}
	}
	return Handle{}, ErrPoolExhausted
}

// Bytes returns the cookie bytes held by h. The returned slice aliases
// the pool's backing storage and is only valid until Release.
func (h Handle) Bytes() []byte {
	s := &h.pool.slots[h.idx]
	return s.buf[:s.n]
}

// Release returns h's slot to the pool. Releasing an already-released or
// zero Handle is a no-op.
func (h Handle) Release() {
	if h.pool == nil {
		return
	}
	h.pool.slots[h.idx] = slot{}
}
