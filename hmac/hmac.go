// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package hmac is HMAC [rfc2104] over any registered digest.
// HMAC IDs are equal to IDs of digests they wrap.
package hmac

import (
	"unsafe"

	"github.com/hrissan/tlscrypto/constants"
	"github.com/hrissan/tlscrypto/digest"
	"github.com/hrissan/tlscrypto/registry"
)

type Algorithm struct {
	ID          digest.ID
	Name        string
	Description string
	Size        int
	BlockSize   int
	ContextSize int
	Digest      *digest.Algorithm
}

func (a *Algorithm) RegistryID() int          { return int(a.ID) }
func (a *Algorithm) RegistryName() string     { return a.Name }
func (a *Algorithm) RegistryContextSize() int { return a.ContextSize }

func (a *Algorithm) IsNone() bool { return a.ID == digest.None }

// New makes HMAC descriptor for a digest
func New(d *digest.Algorithm) *Algorithm {
	if d.BlockSize > constants.MaxDigestBlockSize || d.Size > constants.MaxHashLength {
		panic("digest block or size exceeds HMAC storage")
	}
	return &Algorithm{
		ID:          d.ID,
		Name:        "HMAC-" + d.Name,
		Description: "HMAC over " + d.Description,
		Size:        d.Size,
		BlockSize:   d.BlockSize,
		ContextSize: d.ContextSize + int(unsafe.Sizeof(State{})),
		Digest:      d,
	}
}

type Registry = registry.Registry[*Algorithm]

var NoneAlgorithm = Algorithm{
	ID:          digest.None,
	Name:        "NONE",
	Description: "no HMAC",
	Digest:      &digest.NoneAlgorithm,
}

func NewRegistry() *Registry {
	return registry.New[*Algorithm]("hmac", constants.HMACRegistryCapacity, constants.MaxHMACContext, &NoneAlgorithm)
}

// State is reusable, Init with the same algorithm does not allocate.
// We keep only the outer pad, outer hash is computed in Final with the same digest context.
type State struct {
	alg  *Algorithm
	ctx  digest.Context
	opad [constants.MaxDigestBlockSize]byte
}

func (s *State) Init(alg *Algorithm, key []byte) {
	if alg.IsNone() {
		panic("HMAC state initialized with none algorithm")
	}
	s.alg = alg
	bs := alg.BlockSize
	var k0 [constants.MaxDigestBlockSize]byte
	if len(key) > bs {
		alg.Digest.Hash(k0[:], key) // zero padded to block size
	} else {
		copy(k0[:], key)
	}
	var ipad [constants.MaxDigestBlockSize]byte
	for i := 0; i < bs; i++ {
		ipad[i] = k0[i] ^ 0x36
		s.opad[i] = k0[i] ^ 0x5c
	}
	clear(k0[:])
	s.ctx.Init(alg.Digest)
	s.ctx.Update(ipad[:bs])
	clear(ipad[:])
}

func (s *State) Algorithm() *Algorithm { return s.alg }

func (s *State) Update(data []byte) {
	s.ctx.Update(data)
}

// Final writes exactly Size bytes into out and returns them, then wipes key pads
func (s *State) Final(out []byte) []byte {
	size := s.alg.Size
	if len(out) < size {
		panic("HMAC output shorter than MAC size")
	}
	var inner [constants.MaxHashLength]byte
	s.ctx.Final(inner[:])
	s.ctx.Reset()
	s.ctx.Update(s.opad[:s.alg.BlockSize])
	s.ctx.Update(inner[:size])
	out = s.ctx.Final(out)
	clear(inner[:])
	clear(s.opad[:])
	return out
}

// MAC is one-shot HMAC, writes exactly Size bytes into out
func (a *Algorithm) MAC(out []byte, key []byte, msg []byte) {
	var s State
	s.Init(a, key)
	s.Update(msg)
	s.Final(out)
}

// MACVector processes segments as if they were concatenated, without copying them
func (a *Algorithm) MACVector(out []byte, key []byte, segments ...[]byte) {
	var s State
	s.Init(a, key)
	for _, seg := range segments {
		s.Update(seg)
	}
	s.Final(out)
}

func (a *Algorithm) MACSum(key []byte, segments ...[]byte) (result digest.Sum) {
	result.SetZero(a.Size)
	a.MACVector(result.GetValue(), key, segments...)
	return
}
