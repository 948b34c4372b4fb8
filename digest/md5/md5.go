// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package md5 is a from-scratch MD5 [rfc1321], needed only by TLS 1.0/1.1 PRF
// and legacy HMAC-MD5 suites.
package md5

import (
	"encoding/binary"
	"math/bits"
	"unsafe"

	"github.com/hrissan/tlscrypto/constants"
	"github.com/hrissan/tlscrypto/digest"
)

const Size = 16
const BlockSize = 64

type State struct {
	h   [4]uint32
	x   [BlockSize]byte
	nx  int
	len uint64
}

var _ [constants.MaxDigestContext - unsafe.Sizeof(State{})]struct{}

var Algorithm = digest.Algorithm{
	ID:          digest.MD5,
	Name:        "MD5",
	Description: "MD5 Message-Digest Algorithm",
	Size:        Size,
	BlockSize:   BlockSize,
	ContextSize: int(unsafe.Sizeof(State{})),
	New:         func() digest.State { return &State{} },
	Sum:         sum,
}

var table = [64]uint32{
	0xd76aa478, 0xe8c7b756, 0x242070db, 0xc1bdceee, 0xf57c0faf, 0x4787c62a, 0xa8304613, 0xfd469501,
	0x698098d8, 0x8b44f7af, 0xffff5bb1, 0x895cd7be, 0x6b901122, 0xfd987193, 0xa679438e, 0x49b40821,
	0xf61e2562, 0xc040b340, 0x265e5a51, 0xe9b6c7aa, 0xd62f105d, 0x02441453, 0xd8a1e681, 0xe7d3fbc8,
	0x21e1cde6, 0xc33707d6, 0xf4d50d87, 0x455a14ed, 0xa9e3e905, 0xfcefa3f8, 0x676f02d9, 0x8d2a4c8a,
	0xfffa3942, 0x8771f681, 0x6d9d6122, 0xfde5380c, 0xa4beea44, 0x4bdecfa9, 0xf6bb4b60, 0xbebfbc70,
	0x289b7ec6, 0xeaa127fa, 0xd4ef3085, 0x04881d05, 0xd9d4d039, 0xe6db99e5, 0x1fa27cf8, 0xc4ac5665,
	0xf4292244, 0x432aff97, 0xab9423a7, 0xfc93a039, 0x655b59c3, 0x8f0ccc92, 0xffeff47d, 0x85845dd1,
	0x6fa87e4f, 0xfe2ce6e0, 0xa3014314, 0x4e0811a1, 0xf7537e82, 0xbd3af235, 0x2ad7d2bb, 0xeb86d391,
}

var shifts = [16]int{7, 12, 17, 22, 5, 9, 14, 20, 4, 11, 16, 23, 6, 10, 15, 21}

func (s *State) Init() {
	s.h = [4]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476}
	s.nx = 0
	s.len = 0
}

func (s *State) Update(p []byte) {
	s.len += uint64(len(p))
	if s.nx > 0 {
		n := copy(s.x[s.nx:], p)
		s.nx += n
		if s.nx == BlockSize {
			block(&s.h, s.x[:])
			s.nx = 0
		}
		p = p[n:]
	}
	if len(p) >= BlockSize {
		n := len(p) &^ (BlockSize - 1)
		block(&s.h, p[:n])
		p = p[n:]
	}
	if len(p) > 0 {
		s.nx = copy(s.x[:], p)
	}
}

func (s *State) Final(out []byte) {
	length := s.len
	var tmp [BlockSize + 8]byte
	tmp[0] = 0x80
	t := 56 - length%BlockSize
	if length%BlockSize >= 56 {
		t += BlockSize
	}
	binary.LittleEndian.PutUint64(tmp[t:], length<<3)
	s.Update(tmp[:t+8])
	if s.nx != 0 {
		panic("md5: buffer not empty after padding")
	}
	for i, v := range s.h {
		binary.LittleEndian.PutUint32(out[4*i:], v)
	}
	*s = State{}
}

func sum(out []byte, data []byte) {
	var s State
	s.Init()
	s.Update(data)
	s.Final(out)
}

func Sum(data []byte) (result [Size]byte) {
	sum(result[:], data)
	return
}

func block(h *[4]uint32, p []byte) {
	var x [16]uint32
	h0, h1, h2, h3 := h[0], h[1], h[2], h[3]
	for len(p) >= BlockSize {
		for i := 0; i < 16; i++ {
			x[i] = binary.LittleEndian.Uint32(p[4*i:])
		}
		a, b, c, d := h0, h1, h2, h3
		for i := 0; i < 64; i++ {
			var f uint32
			var g int
			switch {
			case i < 16:
				f = (b & c) | (^b & d)
				g = i
			case i < 32:
				f = (d & b) | (^d & c)
				g = (5*i + 1) & 15
			case i < 48:
				f = b ^ c ^ d
				g = (3*i + 5) & 15
			default:
				f = c ^ (b | ^d)
				g = (7 * i) & 15
			}
			f += a + table[i] + x[g]
			a, b, c, d = d, b+bits.RotateLeft32(f, shifts[(i>>4)<<2|i&3]), b, c
		}
		h0 += a
		h1 += b
		h2 += c
		h3 += d
		p = p[BlockSize:]
	}
	h[0], h[1], h[2], h[3] = h0, h1, h2, h3
}
