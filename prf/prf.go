// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package prf is the TLS pseudo random function [rfc5246:5],
// and the TLS 1.0/1.1 variant [rfc2246:5] combining P_MD5 and P_SHA1.
package prf

import (
	"fmt"

	"github.com/hrissan/tlscrypto/constants"
	"github.com/hrissan/tlscrypto/digest"
	"github.com/hrissan/tlscrypto/hmac"
	"github.com/hrissan/tlscrypto/registry"
)

type ID uint8

// IDs of hash based PRFs mirror digest IDs
const (
	None    ID = 0
	Null    ID = 1
	MD5SHA1 ID = ID(digest.MD5SHA1)
	SHA256  ID = ID(digest.SHA256)
	SHA384  ID = ID(digest.SHA384)
	SHA512  ID = ID(digest.SHA512)
)

func (id ID) String() string {
	switch id {
	case None:
		return "NONE"
	case Null:
		return "NULL"
	case MD5SHA1:
		return "TLS1.0-PRF"
	}
	if id > Null && id < constants.PRFRegistryCapacity {
		return "PRF-" + digest.ID(id).String()
	}
	return fmt.Sprintf("PRF(%d)", uint8(id))
}

type Algorithm struct {
	ID          ID
	Name        string
	Description string
	ContextSize int

	HMAC   *hmac.Algorithm // P_hash, or P_MD5 for TLS 1.0
	Legacy *hmac.Algorithm // P_SHA1 for TLS 1.0, nil otherwise

	derive func(a *Algorithm, out []byte, secret []byte, label []byte, seed0 []byte, seed1 []byte)
}

func (a *Algorithm) RegistryID() int          { return int(a.ID) }
func (a *Algorithm) RegistryName() string     { return a.Name }
func (a *Algorithm) RegistryContextSize() int { return a.ContextSize }

func (a *Algorithm) IsNone() bool { return a.ID == None }

// Derive fills out with PRF(secret, label, seed0 || seed1).
// Label and seed parts are fed to HMAC as separate segments.
func (a *Algorithm) Derive(out []byte, secret []byte, label []byte, seed0 []byte, seed1 []byte) {
	a.derive(a, out, secret, label, seed0, seed1)
}

// context is the hmac state plus chaining value and one output block
const contextOverhead = 2 * constants.MaxHashLength

// NewPHash makes TLS 1.2 PRF over an HMAC, ID is the HMAC digest ID
func NewPHash(h *hmac.Algorithm) *Algorithm {
	return &Algorithm{
		ID:          ID(h.ID),
		Name:        "PRF-" + h.Digest.Name,
		Description: "TLS 1.2 P_hash over " + h.Name,
		ContextSize: h.ContextSize + contextOverhead,
		HMAC:        h,
		derive: func(a *Algorithm, out []byte, secret []byte, label []byte, seed0 []byte, seed1 []byte) {
			pHash(a.HMAC, out, false, secret, label, seed0, seed1)
		},
	}
}

// NewTLS10 makes TLS 1.0/1.1 PRF from HMAC-MD5 and HMAC-SHA1
func NewTLS10(md5 *hmac.Algorithm, sha1 *hmac.Algorithm) *Algorithm {
	if md5.ID != digest.MD5 || sha1.ID != digest.SHA1 {
		panic("TLS 1.0 PRF requires HMAC-MD5 and HMAC-SHA1")
	}
	return &Algorithm{
		ID:          MD5SHA1,
		Name:        "PRF-MD5-SHA1",
		Description: "TLS 1.0 P_MD5 xor P_SHA1",
		ContextSize: max(md5.ContextSize, sha1.ContextSize) + contextOverhead,
		HMAC:        md5,
		Legacy:      sha1,
		derive: func(a *Algorithm, out []byte, secret []byte, label []byte, seed0 []byte, seed1 []byte) {
			// halves overlap by one byte when secret length is odd
			half := (len(secret) + 1) / 2
			pHash(a.HMAC, out, false, secret[:half], label, seed0, seed1)
			pHash(a.Legacy, out, true, secret[len(secret)-half:], label, seed0, seed1)
		},
	}
}

var NoneAlgorithm = Algorithm{
	ID:          None,
	Name:        "NONE",
	Description: "no PRF",
	derive:      func(*Algorithm, []byte, []byte, []byte, []byte, []byte) {},
}

// NullAlgorithm derives all zero key material, used with the null cipher
var NullAlgorithm = Algorithm{
	ID:          Null,
	Name:        "NULL",
	Description: "zero output PRF",
	derive: func(_ *Algorithm, out []byte, _ []byte, _ []byte, _ []byte, _ []byte) {
		clear(out)
	},
}

type Registry = registry.Registry[*Algorithm]

func NewRegistry() *Registry {
	return registry.New[*Algorithm]("prf", constants.PRFRegistryCapacity, constants.MaxHMACContext, &NoneAlgorithm)
}

// A(0) = label||seed, A(i) = HMAC(secret, A(i-1)), output = HMAC(secret, A(i)||label||seed)...
func pHash(h *hmac.Algorithm, out []byte, xor bool, secret []byte, label []byte, seed0 []byte, seed1 []byte) {
	var s hmac.State
	var a [constants.MaxHashLength]byte
	var block [constants.MaxHashLength]byte
	size := h.Size

	s.Init(h, secret)
	s.Update(label)
	s.Update(seed0)
	s.Update(seed1)
	s.Final(a[:])
	for len(out) != 0 {
		s.Init(h, secret)
		s.Update(a[:size])
		s.Update(label)
		s.Update(seed0)
		s.Update(seed1)
		s.Final(block[:])
		n := min(size, len(out))
		if xor {
			for i := 0; i < n; i++ {
				out[i] ^= block[i]
			}
		} else {
			copy(out, block[:n])
		}
		out = out[n:]
		if len(out) != 0 {
			s.Init(h, secret)
			s.Update(a[:size])
			s.Final(a[:])
		}
	}
	clear(a[:])
	clear(block[:])
}
