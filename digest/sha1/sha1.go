// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package sha1 is a from-scratch SHA-1 [rfc3174] kept for TLS 1.0-1.2 HMAC and PRF.
// SHA-1 is broken for collision resistance, HMAC-SHA1 is still acceptable.
package sha1

import (
	"encoding/binary"
	"math/bits"
	"unsafe"

	"github.com/hrissan/tlscrypto/constants"
	"github.com/hrissan/tlscrypto/digest"
)

const Size = 20
const BlockSize = 64

type State struct {
	h   [5]uint32
	x   [BlockSize]byte
	nx  int
	len uint64
}

var _ [constants.MaxDigestContext - unsafe.Sizeof(State{})]struct{}

var Algorithm = digest.Algorithm{
	ID:          digest.SHA1,
	Name:        "SHA1",
	Description: "Secure Hash Algorithm 1",
	Size:        Size,
	BlockSize:   BlockSize,
	ContextSize: int(unsafe.Sizeof(State{})),
	New:         func() digest.State { return &State{} },
	Sum:         sum,
}

func (s *State) Init() {
	s.h = [5]uint32{0x67452301, 0xEFCDAB89, 0x98BADCFE, 0x10325476, 0xC3D2E1F0}
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
	binary.BigEndian.PutUint64(tmp[t:], length<<3)
	s.Update(tmp[:t+8])
	if s.nx != 0 {
		panic("sha1: buffer not empty after padding")
	}
	for i, v := range s.h {
		binary.BigEndian.PutUint32(out[4*i:], v)
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

func block(h *[5]uint32, p []byte) {
	var w [16]uint32
	h0, h1, h2, h3, h4 := h[0], h[1], h[2], h[3], h[4]
	for len(p) >= BlockSize {
		for i := 0; i < 16; i++ {
			w[i] = binary.BigEndian.Uint32(p[4*i:])
		}
		a, b, c, d, e := h0, h1, h2, h3, h4
		for i := 0; i < 80; i++ {
			if i >= 16 {
				tmp := w[(i-3)&0xf] ^ w[(i-8)&0xf] ^ w[(i-14)&0xf] ^ w[i&0xf]
				w[i&0xf] = bits.RotateLeft32(tmp, 1)
			}
			var f, k uint32
			switch {
			case i < 20:
				f = b&c | (^b)&d
				k = 0x5A827999
			case i < 40:
				f = b ^ c ^ d
				k = 0x6ED9EBA1
			case i < 60:
				f = ((b | c) & d) | (b & c)
				k = 0x8F1BBCDC
			default:
				f = b ^ c ^ d
				k = 0xCA62C1D6
			}
			t := bits.RotateLeft32(a, 5) + f + e + w[i&0xf] + k
			a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
		}
		h0 += a
		h1 += b
		h2 += c
		h3 += d
		h4 += e
		p = p[BlockSize:]
	}
	h[0], h[1], h[2], h[3], h[4] = h0, h1, h2, h3, h4
}
