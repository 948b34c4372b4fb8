// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package md4 is a from-scratch MD4 [rfc1320]. Insecure, registered only
// for interoperability checks.
package md4

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
	ID:          digest.MD4,
	Name:        "MD4",
	Description: "MD4 Message-Digest Algorithm",
	Size:        Size,
	BlockSize:   BlockSize,
	ContextSize: int(unsafe.Sizeof(State{})),
	New:         func() digest.State { return &State{} },
	Sum:         sum,
}

// message word order and rotations of rounds 2 and 3
var order2 = [16]int{0, 4, 8, 12, 1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15}
var order3 = [16]int{0, 8, 4, 12, 2, 10, 6, 14, 1, 9, 5, 13, 3, 11, 7, 15}
var shifts1 = [4]int{3, 7, 11, 19}
var shifts2 = [4]int{3, 5, 9, 13}
var shifts3 = [4]int{3, 9, 11, 15}

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
		panic("md4: buffer not empty after padding")
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
		for i := 0; i < 16; i++ {
			f := (b & c) | (^b & d)
			a, b, c, d = d, bits.RotateLeft32(a+f+x[i], shifts1[i&3]), b, c
		}
		for i := 0; i < 16; i++ {
			g := (b & c) | (b & d) | (c & d)
			a, b, c, d = d, bits.RotateLeft32(a+g+x[order2[i]]+0x5A827999, shifts2[i&3]), b, c
		}
		for i := 0; i < 16; i++ {
			hh := b ^ c ^ d
			a, b, c, d = d, bits.RotateLeft32(a+hh+x[order3[i]]+0x6ED9EBA1, shifts3[i&3]), b, c
		}
		h0 += a
		h1 += b
		h2 += c
		h3 += d
		p = p[BlockSize:]
	}
	h[0], h[1], h[2], h[3] = h0, h1, h2, h3
}
