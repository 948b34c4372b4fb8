// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package sha3 implements the SHA-3 sponge [FIPS 202] over Keccak-f[1600].
package sha3

import (
	"encoding/binary"
	"unsafe"

	"github.com/hrissan/tlscrypto/constants"
	"github.com/hrissan/tlscrypto/digest"
)

const stateSize = 200

// State absorbs bytes directly into lanes, no separate block buffer
type State struct {
	a     [25]uint64
	pt    int // offset inside current block
	rsiz  int // rate in bytes
	mdlen int
}

var _ [constants.MaxDigestContext - unsafe.Sizeof(State{})]struct{}

func newState(mdlen int) *State {
	return &State{rsiz: stateSize - 2*mdlen, mdlen: mdlen}
}

func (s *State) Init() {
	if s.mdlen == 0 {
		panic("sha3 state created without output size")
	}
	s.a = [25]uint64{}
	s.pt = 0
	s.rsiz = stateSize - 2*s.mdlen
}

func (s *State) Size() int      { return s.mdlen }
func (s *State) BlockSize() int { return s.rsiz }

func (s *State) Update(data []byte) {
	for len(data) > 0 {
		if s.pt == 0 && len(data) >= s.rsiz {
			for k := 0; k < s.rsiz/8; k++ {
				s.a[k] ^= binary.LittleEndian.Uint64(data[8*k:])
			}
			KeccakF1600(&s.a)
			data = data[s.rsiz:]
			continue
		}
		s.a[s.pt>>3] ^= uint64(data[0]) << (8 * (s.pt & 7))
		s.pt++
		data = data[1:]
		if s.pt == s.rsiz {
			KeccakF1600(&s.a)
			s.pt = 0
		}
	}
}

func (s *State) Final(out []byte) {
	s.a[s.pt>>3] ^= uint64(0x06) << (8 * (s.pt & 7))
	last := s.rsiz - 1
	s.a[last>>3] ^= uint64(0x80) << (8 * (last & 7))
	KeccakF1600(&s.a)
	for i := 0; i < s.mdlen; i++ {
		out[i] = byte(s.a[i>>3] >> (8 * (i & 7)))
	}
	mdlen := s.mdlen
	*s = State{mdlen: mdlen}
}

func sum(mdlen int, out []byte, data []byte) {
	s := State{mdlen: mdlen}
	s.Init()
	s.Update(data)
	s.Final(out)
}

func Sum224(data []byte) (result [28]byte) {
	sum(28, result[:], data)
	return
}

func Sum256(data []byte) (result [32]byte) {
	sum(32, result[:], data)
	return
}

func Sum384(data []byte) (result [48]byte) {
	sum(48, result[:], data)
	return
}

func Sum512(data []byte) (result [64]byte) {
	sum(64, result[:], data)
	return
}

func descriptor(id digest.ID, name string, mdlen int) digest.Algorithm {
	return digest.Algorithm{
		ID:          id,
		Name:        name,
		Description: "SHA-3 Keccak sponge",
		Size:        mdlen,
		BlockSize:   stateSize - 2*mdlen,
		ContextSize: int(unsafe.Sizeof(State{})),
		New:         func() digest.State { return newState(mdlen) },
		Sum:         func(out []byte, data []byte) { sum(mdlen, out, data) },
	}
}

var Algorithm224 = descriptor(digest.SHA3_224, "SHA3-224", 28)
var Algorithm256 = descriptor(digest.SHA3_256, "SHA3-256", 32)
var Algorithm384 = descriptor(digest.SHA3_384, "SHA3-384", 48)
var Algorithm512 = descriptor(digest.SHA3_512, "SHA3-512", 64)
