// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package backend

import (
	"github.com/hrissan/tlscrypto/chachapoly"
)

// nativeProvider uses our Poly1305 for ChaCha20-Poly1305, AES comes from the Go provider
type nativeProvider struct {
	goProvider
}

func (nativeProvider) Name() string { return NameNative }

func (nativeProvider) ChaCha20Poly1305() AEAD {
	return &nativeChaCha{}
}

type nativeChaCha struct {
	keys keyStorage
}

func (n *nativeChaCha) Seal(dst []byte, key []byte, nonce []byte, plaintext []byte, ad []byte) []byte {
	n.keys.changed(key)
	return chachapoly.Seal(dst, n.keys.value(), nonce, plaintext, ad)
}

func (n *nativeChaCha) Open(dst []byte, key []byte, nonce []byte, ciphertext []byte, ad []byte) ([]byte, bool) {
	n.keys.changed(key)
	return chachapoly.Open(dst, n.keys.value(), nonce, ciphertext, ad)
}

func (n *nativeChaCha) Overhead() int  { return chachapoly.Overhead }
func (n *nativeChaCha) NonceSize() int { return chachapoly.NonceSize }
