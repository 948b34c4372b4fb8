// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package cipher defines record cipher identities, descriptors and the
// contract every record protection adapter satisfies.
package cipher

import (
	"github.com/hrissan/tlscrypto/backend"
	"github.com/hrissan/tlscrypto/constants"
	"github.com/hrissan/tlscrypto/hmac"
	"github.com/hrissan/tlscrypto/record"
	"github.com/hrissan/tlscrypto/registry"
	"github.com/hrissan/tlscrypto/stats"
	"github.com/hrissan/tlscrypto/tlsrand"
)

// Cipher protects records of one connection direction. Lifecycle is
// Init, then SetKey and SetIV (and SetMAC for MAC-then-encrypt), then any
// number of Encrypt or Decrypt calls. Encrypt or Decrypt before key and IV
// are set panics.
//
// Sequence number increments exactly once per record which passed capacity
// checks, whether it was accepted or not. Authentication and format failures
// return the single tlserrors.ErrRecordRejected.
type Cipher interface {
	// Init forgets key, IV, MAC key and resets sequence number to 0
	Init()
	// Key and MAC key are borrowed, must stay unchanged while the cipher is used
	SetKey(key []byte)
	SetIV(iv []byte)
	SetMAC(mac []byte)
	SetSequence(seq uint64)
	Sequence() uint64
	Algorithm() *Algorithm

	// Encrypt writes record payload into dst, dst must not overlap plaintext.
	// hdr.ContentType and hdr.Version describe plaintext, hdr.Length is ignored.
	Encrypt(dst []byte, hdr record.Header, plaintext []byte) (int, error)
	// Decrypt writes plaintext into dst, dst must not overlap payload.
	// hdr is the record header as received, hdr.Length is ignored, len(payload) is used.
	Decrypt(dst []byte, hdr record.Header, payload []byte) (int, record.ContentType, error)
	// DecryptInPlace returns plaintext aliasing payload, payload is garbage after failure
	DecryptInPlace(hdr record.Header, payload []byte) ([]byte, record.ContentType, error)
}

// Env is what adapters need from outside, copied into each adapter
type Env struct {
	Provider           backend.Provider
	Stats              stats.Stats
	Rand               tlsrand.Rand
	MaxPlaintextLength int
	// MAC overrides MAC of MAC-then-encrypt ciphers, nil means descriptor default
	MAC *hmac.Algorithm
}

func DefaultEnv() Env {
	return Env{
		Provider:           backend.Default(),
		Stats:              stats.NopStats(),
		Rand:               tlsrand.CryptoRand(),
		MaxPlaintextLength: record.MaxPlaintextLength,
	}
}

type Algorithm struct {
	ID          ID
	Name        string
	Description string
	Dialect     Dialect

	KeySize        int
	BlockSize      int
	IVSize         int // stored by SetIV
	FixedIVSize    int // part of nonce from key schedule, GCM in TLS 1.2
	ExplicitIVSize int // carried in each record
	MACSize        int // HMAC size of MAC-then-encrypt ciphers
	TagSize        int // AEAD tag size
	ContextSize    int

	MAC *hmac.Algorithm // default MAC of MAC-then-encrypt ciphers

	New func(env Env, alg *Algorithm) Cipher
}

func (a *Algorithm) RegistryID() int          { return int(a.ID) }
func (a *Algorithm) RegistryName() string     { return a.Name }
func (a *Algorithm) RegistryContextSize() int { return a.ContextSize }

func (a *Algorithm) Type() Type           { return a.ID.Type() }
func (a *Algorithm) Mode() Mode           { return a.ID.Mode() }
func (a *Algorithm) Primitive() Primitive { return a.ID.Primitive() }
func (a *Algorithm) IsNone() bool         { return a.ID == NoneID }

func (a *Algorithm) NewCipher(env Env) Cipher {
	return a.New(env, a)
}

// SealedSize is the payload size Encrypt produces for plaintext of size n
// with MAC size macSize (ignored except for block ciphers)
func (a *Algorithm) SealedSize(n int, macSize int) int {
	switch {
	case a.Type() == TypeBlock:
		bs := a.BlockSize
		return a.ExplicitIVSize + (n+macSize+1+bs-1)/bs*bs
	case a.Type() == TypeAEAD && a.Dialect == DialectRFC8446:
		return n + 1 + a.TagSize // inner content type
	case a.Type() == TypeAEAD:
		return a.ExplicitIVSize + n + a.TagSize
	}
	return n
}

// MaxPayloadSize is the largest record payload accepted by Decrypt
func (a *Algorithm) MaxPayloadSize(maxPlaintext int) int {
	switch {
	case a.Type() == TypeNull || a.Type() == TypeNone:
		return maxPlaintext
	case a.Dialect == DialectRFC8446:
		return record.MaxCiphertextLength13(maxPlaintext)
	}
	return record.MaxCiphertextLength12(maxPlaintext)
}

type Registry = registry.Registry[*Algorithm]

func NewRegistry(dialect Dialect) *Registry {
	return registry.New[*Algorithm]("cipher/"+dialect.String(), constants.CipherRegistryCapacity,
		constants.MaxCipherContext, &NoneAlgorithm)
}
