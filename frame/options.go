// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frame

import (
	"io"
	"runtime"
	"time"

	"github.com/zserial/zserial"
)

// Option configures a Decoder or Encoder's retry policy for
// zserial.ErrWouldBlock.
type Option func(*retryPolicy)

// retryPolicy: negative means nonblocking (return ErrWouldBlock to the
// caller immediately), zero means cooperative yield-and-retry, positive
// sleeps for the duration between attempts. The default is 0
// (yield-and-retry): framing cannot tolerate truncation, so the codec
// blocks until at least one byte is available.
type retryPolicy struct {
	delay time.Duration
}

var defaultRetryPolicy = retryPolicy{delay: 0}

// WithRetryDelay sets the retry/wait policy used when the underlying
// Reader or Writer returns zserial.ErrWouldBlock.
func WithRetryDelay(d time.Duration) Option {
	return func(p *retryPolicy) { p.delay = d }
}

// WithNonblock makes Decode/Encode return zserial.ErrWouldBlock to the
// caller immediately instead of retrying -- for hosts that run their own
// cooperative scheduler above this codec.
func WithNonblock() Option {
	return func(p *retryPolicy) { p.delay = -1 }
}

func (p retryPolicy) waitOnce() bool {
	if p.delay < 0 {
		return false
	}
	if p.delay == 0 {
		runtime.Gosched()
		return true
	}
	time.Sleep(p.delay)
	return true
}

// readByteRetrying reads exactly one byte from r into one[0], retrying on
// zserial.ErrWouldBlock per p. The Reader adapter yields at least one
// byte per call when data is available, so byte-at-a-time reads are the
// only shape the decoder needs.
func readByteRetrying(r io.Reader, one []byte, p retryPolicy) error {
	for {
		n, err := r.Read(one)
		if n > 0 {
			return nil
		}
		if err != zserial.ErrWouldBlock {
			if err == nil {
				err = io.ErrNoProgress
			}
			return err
		}
		if !p.waitOnce() {
			return err
		}
	}
}
