// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package frame implements a byte-stuffed, length-and-CRC-protected
// framing codec: a COBS-style stuffing variant with sentinel 0x00 and a
// trailing 0x00 terminator, wrapping a
// [header:1][len:2][payload:N][crc32:4] region.
//
// Two call shapes are provided over the same core stuffing routines
// (stuffEncode/stuffDecode), with byte-identical wire output:
//
//   - Encode/Decode stage one complete frame in a fixed-size local buffer.
//   - Encoder/Decoder do the same but own their scratch buffers across
//     calls, so a caller that keeps one alive for the lifetime of a link
//     never allocates per frame.
package frame

// stuffEncode writes the COBS-with-0x00-sentinel encoding of src into dst
// (which must have capacity for at least len(src) + len(src)/254 + 1) and
// returns the number of bytes written. It does not append the frame
// terminator; callers append a single trailing 0x00 themselves.
func stuffEncode(dst, src []byte) int {
	out := 0
	codeIdx := out
	out++
	code := byte(1)
	n := len(src)

	for i := 0; i < n; i++ {
		b := src[i]
		if b != 0 {
			dst[out] = b
			out++
			code++
		}
		if b == 0 || code == 0xFF {
			dst[codeIdx] = code
			code = 1
			codeIdx = out
			remaining := n - i - 1
			if b == 0 || remaining > 0 {
				out++
			}
		}
	}
	dst[codeIdx] = code
	return out
}

// stuffDecode reverses stuffEncode. src must not include the frame
// terminator. It returns ErrDecode if a block-length byte is zero or a
// block runs past the end of src, and ErrInvalidFrame if the decoded
// region would overflow dst.
func stuffDecode(dst, src []byte) (int, error) {
	out := 0
	i := 0
	n := len(src)

	for i < n {
		code := src[i]
		i++
		if code == 0 {
			return 0, ErrDecode
		}
		blockLen := int(code) - 1
		if i+blockLen > n {
			return 0, ErrDecode
		}
		if out+blockLen > len(dst) {
			return 0, ErrInvalidFrame
		}
		copy(dst[out:], src[i:i+blockLen])
		out += blockLen
		i += blockLen

		if code != 0xFF && i < n {
			if out >= len(dst) {
				return 0, ErrInvalidFrame
			}
			dst[out] = 0
			out++
		}
	}
	return out, nil
}
