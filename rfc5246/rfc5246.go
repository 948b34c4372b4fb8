// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package rfc5246 is TLS 1.2 record protection [rfc5246:6.2.3]:
// AES-CBC with HMAC, AES-GCM [rfc5288] and ChaCha20-Poly1305 [rfc7905].
package rfc5246

import (
	"github.com/hrissan/tlscrypto/cipher"
	"github.com/hrissan/tlscrypto/digest/sha1"
	"github.com/hrissan/tlscrypto/hmac"
)

// HMAC-SHA1 unless a cipher suite binds another MAC through cipher.Env
var defaultMAC = hmac.New(&sha1.Algorithm)

func cbcDescriptor(id cipher.ID, name string, keySize int) *cipher.Algorithm {
	return &cipher.Algorithm{
		ID:             id,
		Name:           name,
		Description:    "TLS 1.1+ CBC with explicit IV and HMAC",
		Dialect:        cipher.DialectRFC5246,
		KeySize:        keySize,
		BlockSize:      16,
		IVSize:         16,
		ExplicitIVSize: 16,
		MACSize:        defaultMAC.Size,
		ContextSize:    cbcContextSize,
		MAC:            defaultMAC,
		New:            newCBC,
	}
}

func gcmDescriptor(id cipher.ID, name string, keySize int) *cipher.Algorithm {
	return &cipher.Algorithm{
		ID:             id,
		Name:           name,
		Description:    "TLS 1.2 AES-GCM with 4 byte salt and 8 byte explicit nonce",
		Dialect:        cipher.DialectRFC5246,
		KeySize:        keySize,
		BlockSize:      16,
		IVSize:         4,
		FixedIVSize:    4,
		ExplicitIVSize: 8,
		TagSize:        16,
		ContextSize:    aeadContextSize,
		New: func(env cipher.Env, alg *cipher.Algorithm) cipher.Cipher {
			c := &aead{Base: cipher.NewBase(env, alg)}
			c.aead = c.Env.Provider.AESGCM(alg.TagSize)
			return c
		},
	}
}

var AES128CBC = cbcDescriptor(cipher.AES128CBCID, "AES128-CBC", 16)
var AES256CBC = cbcDescriptor(cipher.AES256CBCID, "AES256-CBC", 32)
var AES128GCM = gcmDescriptor(cipher.AES128GCMID, "AES128-GCM", 16)
var AES256GCM = gcmDescriptor(cipher.AES256GCMID, "AES256-GCM", 32)

var ChaCha20Poly1305 = &cipher.Algorithm{
	ID:          cipher.ChaCha20Poly1305ID,
	Name:        "CHACHA20-POLY1305",
	Description: "TLS 1.2 ChaCha20-Poly1305 with sequence number nonce",
	Dialect:     cipher.DialectRFC5246,
	KeySize:     32,
	BlockSize:   64,
	IVSize:      12,
	FixedIVSize: 12,
	TagSize:     16,
	ContextSize: aeadContextSize,
	New: func(env cipher.Env, alg *cipher.Algorithm) cipher.Cipher {
		c := &aead{Base: cipher.NewBase(env, alg)}
		c.aead = c.Env.Provider.ChaCha20Poly1305()
		return c
	},
}

// Algorithms are descriptors registered in the TLS 1.2 cipher registry, null cipher included
func Algorithms() []*cipher.Algorithm {
	return []*cipher.Algorithm{cipher.Null12, AES128CBC, AES256CBC, AES128GCM, AES256GCM, ChaCha20Poly1305}
}
