// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package chachapoly is ChaCha20-Poly1305 AEAD [rfc8439:2.8] composed from
// the ChaCha20 keystream and our Poly1305.
package chachapoly

import (
	"crypto/subtle"
	"encoding/binary"

	"github.com/hrissan/tlscrypto/poly1305"
	"golang.org/x/crypto/chacha20"
)

const KeySize = 32
const NonceSize = 12
const Overhead = poly1305.TagSize

func newCipher(key []byte, nonce []byte) (*chacha20.Cipher, [poly1305.KeySize]byte) {
	if len(key) != KeySize || len(nonce) != NonceSize {
		panic("chachapoly: wrong key or nonce size")
	}
	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		panic("chacha20.NewUnauthenticatedCipher fails " + err.Error())
	}
	var block [64]byte
	c.XORKeyStream(block[:], block[:]) // counter 0 is the one-time Poly1305 key
	var polyKey [poly1305.KeySize]byte
	copy(polyKey[:], block[:])
	clear(block[:])
	c.SetCounter(1)
	return c, polyKey
}

func updatePadded(p *poly1305.State, data []byte) {
	p.Update(data)
	if rem := len(data) % 16; rem != 0 {
		var zeros [16]byte
		p.Update(zeros[:16-rem])
	}
}

func computeTag(tag *[poly1305.TagSize]byte, polyKey *[poly1305.KeySize]byte, ad []byte, ciphertext []byte) {
	var p poly1305.State
	p.Init(polyKey)
	updatePadded(&p, ad)
	updatePadded(&p, ciphertext)
	var lengths [16]byte
	binary.LittleEndian.PutUint64(lengths[0:], uint64(len(ad)))
	binary.LittleEndian.PutUint64(lengths[8:], uint64(len(ciphertext)))
	p.Update(lengths[:])
	p.Final(tag)
	clear(polyKey[:])
}

// Seal appends ciphertext and tag to dst, dst may be plaintext[:0]
func Seal(dst []byte, key []byte, nonce []byte, plaintext []byte, ad []byte) []byte {
	c, polyKey := newCipher(key, nonce)
	ret, out := sliceForAppend(dst, len(plaintext)+Overhead)
	c.XORKeyStream(out[:len(plaintext)], plaintext)
	var tag [poly1305.TagSize]byte
	computeTag(&tag, &polyKey, ad, out[:len(plaintext)])
	copy(out[len(plaintext):], tag[:])
	return ret
}

// Open authenticates before decrypting, on failure dst contents are not touched
func Open(dst []byte, key []byte, nonce []byte, ciphertext []byte, ad []byte) ([]byte, bool) {
	if len(ciphertext) < Overhead {
		return nil, false
	}
	body := ciphertext[:len(ciphertext)-Overhead]
	c, polyKey := newCipher(key, nonce)
	var tag [poly1305.TagSize]byte
	computeTag(&tag, &polyKey, ad, body)
	if subtle.ConstantTimeCompare(tag[:], ciphertext[len(body):]) != 1 {
		return nil, false
	}
	ret, out := sliceForAppend(dst, len(body))
	c.XORKeyStream(out, body)
	return ret, true
}

func sliceForAppend(in []byte, n int) (head, tail []byte) {
	if total := len(in) + n; cap(in) >= total {
		head = in[:total]
	} else {
		head = make([]byte, total)
		copy(head, in)
	}
	tail = head[len(in):]
	return
}
