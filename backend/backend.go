// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package backend supplies raw AEAD and block primitives to record adapters.
// Calls take raw key, nonce and data spans. Instances copy key bytes into
// owned storage and cache one keyed primitive, so steady state does not allocate.
package backend

import (
	"crypto/subtle"

	"github.com/hrissan/tlscrypto/tlserrors"
)

type AEAD interface {
	// Seal appends ciphertext and tag to dst, dst may be plaintext[:0]
	Seal(dst []byte, key []byte, nonce []byte, plaintext []byte, ad []byte) []byte
	// Open appends plaintext to dst, dst may be ciphertext[:0]
	Open(dst []byte, key []byte, nonce []byte, ciphertext []byte, ad []byte) ([]byte, bool)
	Overhead() int
	NonceSize() int
}

type Block interface {
	// src must be multiple of BlockSize, dst at least as long as src, dst may be src
	EncryptCBC(dst []byte, key []byte, iv []byte, src []byte) bool
	DecryptCBC(dst []byte, key []byte, iv []byte, src []byte) bool
	BlockSize() int
}

// Provider makes new unkeyed instances, each instance belongs to one adapter
type Provider interface {
	Name() string
	AESGCM(tagSize int) AEAD
	ChaCha20Poly1305() AEAD
	AESCBC() Block
}

const NameGo = "go"
const NameNative = "native"

func Names() []string {
	return []string{NameGo, NameNative}
}

func Lookup(name string) (Provider, error) {
	switch name {
	case NameGo:
		return goProvider{}, nil
	case NameNative:
		return nativeProvider{}, nil
	}
	return nil, tlserrors.ErrUnknownBackend
}

func Default() Provider {
	return goProvider{}
}

// keyStorage remembers the key the cached primitive was made with
type keyStorage struct {
	key  [32]byte
	size int
	set  bool
}

// changed copies key if it differs from the stored one
func (k *keyStorage) changed(key []byte) bool {
	if len(key) > len(k.key) {
		panic("backend key longer than 32 bytes")
	}
	if k.set && k.size == len(key) && subtle.ConstantTimeCompare(k.key[:k.size], key) == 1 {
		return false
	}
	clear(k.key[:])
	k.size = copy(k.key[:], key)
	k.set = true
	return true
}

func (k *keyStorage) value() []byte { return k.key[:k.size] }
