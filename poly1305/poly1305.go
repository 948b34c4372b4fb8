// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package poly1305 is a one-time authenticator [rfc7539:2.5] using
// 26-bit limbs and 32x32->64 bit products, constant time and allocation free.
package poly1305

import (
	"crypto/subtle"
	"encoding/binary"
	"unsafe"

	"github.com/hrissan/tlscrypto/constants"
)

const KeySize = 32
const TagSize = 16
const blockSize = 16

const limbMask = 0x3ffffff
const hibit = 1 << 24

// State must never be reused with the same key for different messages
type State struct {
	r         [5]uint32
	h         [5]uint32
	pad       [4]uint32
	buf       [blockSize]byte
	nbuf      int
	finalized bool
}

var _ [constants.MaxCipherContext - unsafe.Sizeof(State{})]struct{}

func le32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

func (s *State) Init(key *[KeySize]byte) {
	// r &= 0xffffffc0ffffffc0ffffffc0fffffff
	s.r[0] = le32(key[0:]) & 0x3ffffff
	s.r[1] = (le32(key[3:]) >> 2) & 0x3ffff03
	s.r[2] = (le32(key[6:]) >> 4) & 0x3ffc0ff
	s.r[3] = (le32(key[9:]) >> 6) & 0x3f03fff
	s.r[4] = (le32(key[12:]) >> 8) & 0x00fffff

	s.h = [5]uint32{}
	for i := range s.pad {
		s.pad[i] = le32(key[16+4*i:])
	}
	s.buf = [blockSize]byte{}
	s.nbuf = 0
	s.finalized = false
}

func (s *State) blocks(m []byte, hi uint32) {
	r0, r1, r2, r3, r4 := uint64(s.r[0]), uint64(s.r[1]), uint64(s.r[2]), uint64(s.r[3]), uint64(s.r[4])
	s1, s2, s3, s4 := r1*5, r2*5, r3*5, r4*5
	h0, h1, h2, h3, h4 := s.h[0], s.h[1], s.h[2], s.h[3], s.h[4]

	for len(m) >= blockSize {
		// h += m[i]
		h0 += le32(m[0:]) & limbMask
		h1 += (le32(m[3:]) >> 2) & limbMask
		h2 += (le32(m[6:]) >> 4) & limbMask
		h3 += (le32(m[9:]) >> 6) & limbMask
		h4 += (le32(m[12:]) >> 8) | hi

		// h *= r
		d0 := uint64(h0)*r0 + uint64(h1)*s4 + uint64(h2)*s3 + uint64(h3)*s2 + uint64(h4)*s1
		d1 := uint64(h0)*r1 + uint64(h1)*r0 + uint64(h2)*s4 + uint64(h3)*s3 + uint64(h4)*s2
		d2 := uint64(h0)*r2 + uint64(h1)*r1 + uint64(h2)*r0 + uint64(h3)*s4 + uint64(h4)*s3
		d3 := uint64(h0)*r3 + uint64(h1)*r2 + uint64(h2)*r1 + uint64(h3)*r0 + uint64(h4)*s4
		d4 := uint64(h0)*r4 + uint64(h1)*r3 + uint64(h2)*r2 + uint64(h3)*r1 + uint64(h4)*r0

		// (partial) h %= p
		c := uint32(d0 >> 26)
		h0 = uint32(d0) & limbMask
		d1 += uint64(c)
		c = uint32(d1 >> 26)
		h1 = uint32(d1) & limbMask
		d2 += uint64(c)
		c = uint32(d2 >> 26)
		h2 = uint32(d2) & limbMask
		d3 += uint64(c)
		c = uint32(d3 >> 26)
		h3 = uint32(d3) & limbMask
		d4 += uint64(c)
		c = uint32(d4 >> 26)
		h4 = uint32(d4) & limbMask
		h0 += c * 5
		c = h0 >> 26
		h0 &= limbMask
		h1 += c

		m = m[blockSize:]
	}
	s.h = [5]uint32{h0, h1, h2, h3, h4}
}

func (s *State) Update(m []byte) {
	if s.finalized {
		panic("poly1305: update after final")
	}
	if s.nbuf > 0 {
		n := copy(s.buf[s.nbuf:], m)
		s.nbuf += n
		m = m[n:]
		if s.nbuf < blockSize {
			return
		}
		s.blocks(s.buf[:], hibit)
		s.nbuf = 0
	}
	if len(m) >= blockSize {
		n := len(m) &^ (blockSize - 1)
		s.blocks(m[:n], hibit)
		m = m[n:]
	}
	if len(m) > 0 {
		s.nbuf = copy(s.buf[:], m)
	}
}

// Final writes the tag and zeroes all key-derived state
func (s *State) Final(mac *[TagSize]byte) {
	if s.finalized {
		panic("poly1305: final called twice")
	}
	if s.nbuf > 0 {
		s.buf[s.nbuf] = 1
		for i := s.nbuf + 1; i < blockSize; i++ {
			s.buf[i] = 0
		}
		s.blocks(s.buf[:], 0)
	}

	h0, h1, h2, h3, h4 := s.h[0], s.h[1], s.h[2], s.h[3], s.h[4]

	// fully carry h
	c := h1 >> 26
	h1 &= limbMask
	h2 += c
	c = h2 >> 26
	h2 &= limbMask
	h3 += c
	c = h3 >> 26
	h3 &= limbMask
	h4 += c
	c = h4 >> 26
	h4 &= limbMask
	h0 += c * 5
	c = h0 >> 26
	h0 &= limbMask
	h1 += c

	// compute h + -p
	g0 := h0 + 5
	c = g0 >> 26
	g0 &= limbMask
	g1 := h1 + c
	c = g1 >> 26
	g1 &= limbMask
	g2 := h2 + c
	c = g2 >> 26
	g2 &= limbMask
	g3 := h3 + c
	c = g3 >> 26
	g3 &= limbMask
	g4 := h4 + c - (1 << 26)

	// select h if h < p, or h + -p if h >= p
	mask := (g4 >> 31) - 1
	g0 &= mask
	g1 &= mask
	g2 &= mask
	g3 &= mask
	g4 &= mask
	mask = ^mask
	h0 = (h0 & mask) | g0
	h1 = (h1 & mask) | g1
	h2 = (h2 & mask) | g2
	h3 = (h3 & mask) | g3
	h4 = (h4 & mask) | g4

	// h = h % 2^128
	h0 = h0 | (h1 << 26)
	h1 = (h1 >> 6) | (h2 << 20)
	h2 = (h2 >> 12) | (h3 << 14)
	h3 = (h3 >> 18) | (h4 << 8)

	// mac = (h + pad) % 2^128
	f := uint64(h0) + uint64(s.pad[0])
	h0 = uint32(f)
	f = uint64(h1) + uint64(s.pad[1]) + (f >> 32)
	h1 = uint32(f)
	f = uint64(h2) + uint64(s.pad[2]) + (f >> 32)
	h2 = uint32(f)
	f = uint64(h3) + uint64(s.pad[3]) + (f >> 32)
	h3 = uint32(f)

	binary.LittleEndian.PutUint32(mac[0:], h0)
	binary.LittleEndian.PutUint32(mac[4:], h1)
	binary.LittleEndian.PutUint32(mac[8:], h2)
	binary.LittleEndian.PutUint32(mac[12:], h3)

	*s = State{finalized: true}
}

func (s *State) Finalized() bool { return s.finalized }

func Sum(mac *[TagSize]byte, m []byte, key *[KeySize]byte) {
	var s State
	s.Init(key)
	s.Update(m)
	s.Final(mac)
}

// Verify compares in constant time
func Verify(mac *[TagSize]byte, m []byte, key *[KeySize]byte) bool {
	var tag [TagSize]byte
	Sum(&tag, m, key)
	return subtle.ConstantTimeCompare(tag[:], mac[:]) == 1
}
