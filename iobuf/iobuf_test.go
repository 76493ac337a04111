// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/zserial/zserial/iobuf"
)

func TestBufWriteAndCursor(t *testing.T) {
	b := iobuf.New(8)
	n, err := b.Write([]byte("hi"))
	if err != nil || n != 2 {
		t.Fatalf("Write: n=%d err=%v", n, err)
	}
	if b.Len() != 2 {
		t.Fatalf("Len=%d want 2", b.Len())
	}

	cur := b.Cursor(b.Len())
	out := make([]byte, 2)
	if _, err := cur.Read(out); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(out, []byte("hi")) {
		t.Fatalf("got %q want hi", out)
	}
}

func TestBufWriteOverflow(t *testing.T) {
	b := iobuf.New(2)
	if _, err := b.Write([]byte("abc")); !errors.Is(err, iobuf.ErrShortWrite) {
		t.Fatalf("want ErrShortWrite, got %v", err)
	}
}

func TestCursorReadSlice(t *testing.T) {
	b := iobuf.New(4)
	_, _ = b.Write([]byte{1, 2, 3, 4})
	cur := b.Cursor(4)
	s, err := cur.ReadSlice(3)
	if err != nil {
		t.Fatalf("ReadSlice: %v", err)
	}
	if !bytes.Equal(s, []byte{1, 2, 3}) {
		t.Fatalf("got %v", s)
	}
	if cur.Remaining() != 1 {
		t.Fatalf("remaining=%d want 1", cur.Remaining())
	}
	if _, err := cur.ReadSlice(2); !errors.Is(err, iobuf.ErrShortRead) {
		t.Fatalf("want ErrShortRead, got %v", err)
	}
}

func TestBufReset(t *testing.T) {
	b := iobuf.New(4)
	_, _ = b.Write([]byte{1, 2})
	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("Len=%d want 0 after Reset", b.Len())
	}
	if _, err := b.Write([]byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("Write after Reset: %v", err)
	}
}
