// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package sha2 bridges SHA-2 from the standard library into the digest registry.
package sha2

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"unsafe"

	"github.com/hrissan/tlscrypto/constants"
	"github.com/hrissan/tlscrypto/digest"
)

// state owns the bridged hasher, allocated once per digest.Context
type state struct {
	newHash func() hash.Hash
	h       hash.Hash
	sum     [constants.MaxHashLength]byte
}

var _ [constants.MaxDigestContext - unsafe.Sizeof(state{})]struct{}

func (s *state) Init() {
	if s.h == nil {
		s.h = s.newHash()
	}
	s.h.Reset()
}

func (s *state) Update(data []byte) {
	_, _ = s.h.Write(data)
}

func (s *state) Final(out []byte) {
	copy(out, s.h.Sum(s.sum[:0]))
	clear(s.sum[:])
	s.h.Reset()
}

func descriptor(id digest.ID, name string, size int, blockSize int, newHash func() hash.Hash, oneShot func(out []byte, data []byte)) digest.Algorithm {
	return digest.Algorithm{
		ID:          id,
		Name:        name,
		Description: "SHA-2 (standard library)",
		Size:        size,
		BlockSize:   blockSize,
		ContextSize: int(unsafe.Sizeof(state{})),
		New:         func() digest.State { return &state{newHash: newHash} },
		Sum:         oneShot,
	}
}

var Algorithm224 = descriptor(digest.SHA224, "SHA224", sha256.Size224, sha256.BlockSize, sha256.New224,
	func(out []byte, data []byte) {
		s := sha256.Sum224(data)
		copy(out, s[:])
	})

var Algorithm256 = descriptor(digest.SHA256, "SHA256", sha256.Size, sha256.BlockSize, sha256.New,
	func(out []byte, data []byte) {
		s := sha256.Sum256(data)
		copy(out, s[:])
	})

var Algorithm384 = descriptor(digest.SHA384, "SHA384", sha512.Size384, sha512.BlockSize, sha512.New384,
	func(out []byte, data []byte) {
		s := sha512.Sum384(data)
		copy(out, s[:])
	})

var Algorithm512 = descriptor(digest.SHA512, "SHA512", sha512.Size, sha512.BlockSize, sha512.New,
	func(out []byte, data []byte) {
		s := sha512.Sum512(data)
		copy(out, s[:])
	})
