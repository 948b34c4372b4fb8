// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package rfc8446 is TLS 1.3 record protection [rfc8446:5.2].
// Every record is application_data on the wire, real content type is the last
// non-zero byte of the decrypted inner plaintext.
package rfc8446

import (
	"unsafe"

	"github.com/hrissan/tlscrypto/backend"
	"github.com/hrissan/tlscrypto/cipher"
	"github.com/hrissan/tlscrypto/constants"
	"github.com/hrissan/tlscrypto/record"
	"github.com/hrissan/tlscrypto/tlserrors"
)

type aead struct {
	cipher.Base
	aead backend.AEAD
}

var _ [constants.MaxCipherContext - unsafe.Sizeof(aead{})]struct{}

func descriptor(id cipher.ID, name string, keySize int, blockSize int, aesGCM bool) *cipher.Algorithm {
	return &cipher.Algorithm{
		ID:          id,
		Name:        name,
		Description: "TLS 1.3 AEAD with per-record nonce from IV and sequence number",
		Dialect:     cipher.DialectRFC8446,
		KeySize:     keySize,
		BlockSize:   blockSize,
		IVSize:      constants.AEADNonceSize,
		FixedIVSize: constants.AEADNonceSize,
		TagSize:     constants.AEADTagSize,
		ContextSize: int(unsafe.Sizeof(aead{})),
		New: func(env cipher.Env, alg *cipher.Algorithm) cipher.Cipher {
			c := &aead{Base: cipher.NewBase(env, alg)}
			if aesGCM {
				c.aead = c.Env.Provider.AESGCM(alg.TagSize)
			} else {
				c.aead = c.Env.Provider.ChaCha20Poly1305()
			}
			return c
		},
	}
}

var AES128GCM = descriptor(cipher.AES128GCMID, "AES128-GCM", 16, 16, true)
var AES256GCM = descriptor(cipher.AES256GCMID, "AES256-GCM", 32, 16, true)
var ChaCha20Poly1305 = descriptor(cipher.ChaCha20Poly1305ID, "CHACHA20-POLY1305", 32, 64, false)

// Algorithms are descriptors registered in the TLS 1.3 cipher registry, null cipher included
func Algorithms() []*cipher.Algorithm {
	return []*cipher.Algorithm{cipher.Null13, AES128GCM, AES256GCM, ChaCha20Poly1305}
}

func (c *aead) nonce(seq uint64) (nonce [constants.AEADNonceSize]byte) {
	copy(nonce[:], c.IV())
	cipher.FillIVSequence(nonce[:], seq)
	return
}

// Encrypt seals TLSInnerPlaintext without padding, hdr.Version is ignored,
// caller writes the outer header with application_data and TLS 1.2 version.
func (c *aead) Encrypt(dst []byte, hdr record.Header, plaintext []byte) (int, error) {
	c.CheckArmed()
	if err := c.CheckEncrypt(dst, len(plaintext)); err != nil {
		return 0, err
	}
	seq, err := c.NextSequence()
	if err != nil {
		return 0, err
	}
	n := len(plaintext)
	copy(dst, plaintext)
	dst[n] = byte(hdr.ContentType)
	nonce := c.nonce(seq)
	ad := record.AdditionalData13(c.Algorithm().SealedSize(n, 0))
	sealed := c.aead.Seal(dst[:0], c.Key(), nonce[:], dst[:n+1], ad[:])
	return len(sealed), nil
}

func (c *aead) Decrypt(dst []byte, hdr record.Header, payload []byte) (int, record.ContentType, error) {
	c.CheckArmed()
	if err := c.CheckDecrypt(len(payload)); err != nil {
		return 0, 0, err
	}
	if len(dst) < len(payload)-c.Algorithm().TagSize {
		return 0, 0, tlserrors.ErrOutputTooSmall
	}
	result, ct, err := c.open(dst[:0], hdr, payload)
	if err != nil {
		return 0, 0, err
	}
	return len(result), ct, nil
}

func (c *aead) DecryptInPlace(hdr record.Header, payload []byte) ([]byte, record.ContentType, error) {
	c.CheckArmed()
	if err := c.CheckDecrypt(len(payload)); err != nil {
		return nil, 0, err
	}
	return c.open(payload[:0], hdr, payload)
}

func (c *aead) open(dst []byte, hdr record.Header, payload []byte) ([]byte, record.ContentType, error) {
	seq, err := c.NextSequence()
	if err != nil {
		return nil, 0, err
	}
	// at least content type byte
	if hdr.ContentType != record.ContentTypeApplicationData || len(payload) < c.Algorithm().TagSize+1 {
		return nil, 0, c.Reject(seq)
	}
	nonce := c.nonce(seq)
	ad := hdr
	ad.Length = uint16(len(payload)) // fits, checked against MaxPayload
	adBytes := ad.Bytes()
	inner, ok := c.aead.Open(dst, c.Key(), nonce[:], payload, adBytes[:])
	if !ok {
		return nil, 0, c.Reject(seq)
	}
	offset, ct := record.FindInnerContentType(inner)
	if offset < 0 {
		return nil, 0, c.Reject(seq)
	}
	return inner[:offset], ct, nil
}
