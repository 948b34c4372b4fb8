// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package rfc5246

import (
	"encoding/binary"
	"unsafe"

	"github.com/hrissan/tlscrypto/backend"
	"github.com/hrissan/tlscrypto/cipher"
	"github.com/hrissan/tlscrypto/constants"
	"github.com/hrissan/tlscrypto/record"
	"github.com/hrissan/tlscrypto/tlserrors"
)

// aead is GenericAEADCipher [rfc5246:6.2.3.3]. AES-GCM carries 8 byte explicit
// nonce in each record [rfc5288:3], ChaCha20-Poly1305 has none [rfc7905:2].
type aead struct {
	cipher.Base
	aead backend.AEAD
}

const aeadContextSize = int(unsafe.Sizeof(aead{}))

var _ [constants.MaxCipherContext - unsafe.Sizeof(aead{})]struct{}

// ChaChaNonce is IV xor (0^4 || BE64(seq))
func ChaChaNonce(iv []byte, seq uint64) (nonce [constants.AEADNonceSize]byte) {
	copy(nonce[:], iv)
	cipher.FillIVSequence(nonce[:], seq)
	return
}

func (c *aead) nonce(seq uint64, explicit []byte) (nonce [constants.AEADNonceSize]byte) {
	alg := c.Algorithm()
	if alg.ExplicitIVSize == 0 {
		return ChaChaNonce(c.IV(), seq)
	}
	copy(nonce[:alg.FixedIVSize], c.IV())
	copy(nonce[alg.FixedIVSize:], explicit)
	return
}

func (c *aead) Encrypt(dst []byte, hdr record.Header, plaintext []byte) (int, error) {
	c.CheckArmed()
	if err := c.CheckEncrypt(dst, len(plaintext)); err != nil {
		return 0, err
	}
	seq, err := c.NextSequence()
	if err != nil {
		return 0, err
	}
	explicitSize := c.Algorithm().ExplicitIVSize
	explicit := dst[:explicitSize]
	if explicitSize != 0 {
		// sequence number is unique per key, so good explicit nonce
		binary.BigEndian.PutUint64(explicit, seq)
	}
	nonce := c.nonce(seq, explicit)
	ad := record.AdditionalData12(seq, hdr.ContentType, hdr.Version, len(plaintext))
	sealed := c.aead.Seal(dst[explicitSize:explicitSize], c.Key(), nonce[:], plaintext, ad[:])
	return explicitSize + len(sealed), nil
}

// plaintextLen is -1 for records shorter than explicit nonce and tag
func (c *aead) plaintextLen(payload []byte) int {
	alg := c.Algorithm()
	return max(len(payload)-alg.ExplicitIVSize-alg.TagSize, -1)
}

func (c *aead) Decrypt(dst []byte, hdr record.Header, payload []byte) (int, record.ContentType, error) {
	c.CheckArmed()
	if err := c.CheckDecrypt(len(payload)); err != nil {
		return 0, 0, err
	}
	n := c.plaintextLen(payload)
	if len(dst) < n {
		return 0, 0, tlserrors.ErrOutputTooSmall
	}
	out, err := c.open(dst[:0], hdr, payload)
	if err != nil {
		return 0, 0, err
	}
	return len(out), hdr.ContentType, nil
}

func (c *aead) DecryptInPlace(hdr record.Header, payload []byte) ([]byte, record.ContentType, error) {
	c.CheckArmed()
	if err := c.CheckDecrypt(len(payload)); err != nil {
		return nil, 0, err
	}
	explicitSize := min(c.Algorithm().ExplicitIVSize, len(payload))
	out, err := c.open(payload[explicitSize:explicitSize], hdr, payload)
	if err != nil {
		return nil, 0, err
	}
	return out, hdr.ContentType, nil
}

func (c *aead) open(dst []byte, hdr record.Header, payload []byte) ([]byte, error) {
	seq, err := c.NextSequence()
	if err != nil {
		return nil, err
	}
	n := c.plaintextLen(payload)
	if n < 0 {
		return nil, c.Reject(seq)
	}
	explicitSize := c.Algorithm().ExplicitIVSize
	nonce := c.nonce(seq, payload[:explicitSize])
	ad := record.AdditionalData12(seq, hdr.ContentType, hdr.Version, n)
	out, ok := c.aead.Open(dst, c.Key(), nonce[:], payload[explicitSize:], ad[:])
	if !ok {
		return nil, c.Reject(seq)
	}
	return out, nil
}
