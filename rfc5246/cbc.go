// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package rfc5246

import (
	"crypto/subtle"
	"unsafe"

	"github.com/hrissan/tlscrypto/backend"
	"github.com/hrissan/tlscrypto/cipher"
	"github.com/hrissan/tlscrypto/constants"
	"github.com/hrissan/tlscrypto/digest"
	"github.com/hrissan/tlscrypto/hmac"
	"github.com/hrissan/tlscrypto/record"
	"github.com/hrissan/tlscrypto/tlserrors"
)

// cbc is GenericBlockCipher [rfc5246:6.2.3.2] with MAC-then-encrypt.
// Decryption does the same work for valid and invalid padding, and
// reports every failure with the same error.
type cbc struct {
	cipher.Base
	block backend.Block
	mac   hmac.State
	dummy digest.Context
}

const cbcContextSize = int(unsafe.Sizeof(cbc{}))

var _ [constants.MaxCipherContext - unsafe.Sizeof(cbc{})]struct{}

func newCBC(env cipher.Env, alg *cipher.Algorithm) cipher.Cipher {
	c := &cbc{Base: cipher.NewBase(env, alg)}
	c.block = c.Env.Provider.AESCBC()
	return c
}

// RunningIV is the last ciphertext block of the last processed record
func (c *cbc) RunningIV() []byte { return c.IV() }

func (c *cbc) Encrypt(dst []byte, hdr record.Header, plaintext []byte) (int, error) {
	c.CheckArmed()
	if err := c.CheckEncrypt(dst, len(plaintext)); err != nil {
		return 0, err
	}
	seq, err := c.NextSequence()
	if err != nil {
		return 0, err
	}
	alg := c.Algorithm()
	macSize := c.MACKeySize()
	n := alg.SealedSize(len(plaintext), macSize)
	explicitIV := dst[:alg.ExplicitIVSize]
	body := dst[alg.ExplicitIVSize:n]
	c.Env.Rand.Read(explicitIV)

	copy(body, plaintext)
	ad := record.AdditionalData12(seq, hdr.ContentType, hdr.Version, len(plaintext))
	c.mac.Init(c.MAC(), c.MACKey())
	c.mac.Update(ad[:])
	c.mac.Update(plaintext)
	c.mac.Final(body[len(plaintext):])
	paddingLen := len(body) - len(plaintext) - macSize - 1
	for i := len(plaintext) + macSize; i < len(body); i++ {
		body[i] = byte(paddingLen) // < block size
	}
	if !c.block.EncryptCBC(body, c.Key(), explicitIV, body) {
		panic("CBC encryption of aligned record fails")
	}
	copy(c.IV(), body[len(body)-alg.BlockSize:])
	return n, nil
}

// layout returns explicit IV and ciphertext, false if record cannot be a valid record
func (c *cbc) layout(payload []byte) (explicitIV []byte, body []byte, ok bool) {
	alg := c.Algorithm()
	if len(payload) < alg.ExplicitIVSize {
		return nil, nil, false
	}
	explicitIV = payload[:alg.ExplicitIVSize]
	body = payload[alg.ExplicitIVSize:]
	minBody := max(alg.BlockSize, c.MACKeySize()+1)
	if len(body) < minBody || len(body)%alg.BlockSize != 0 {
		return nil, nil, false
	}
	return explicitIV, body, true
}

func (c *cbc) Decrypt(dst []byte, hdr record.Header, payload []byte) (int, record.ContentType, error) {
	c.CheckArmed()
	if err := c.CheckDecrypt(len(payload)); err != nil {
		return 0, 0, err
	}
	if len(dst) < len(payload)-c.Algorithm().ExplicitIVSize {
		return 0, 0, tlserrors.ErrOutputTooSmall
	}
	seq, err := c.NextSequence()
	if err != nil {
		return 0, 0, err
	}
	explicitIV, body, ok := c.layout(payload)
	if !ok {
		return 0, 0, c.Reject(seq)
	}
	n, ok := c.open(dst[:len(body)], seq, hdr, explicitIV, body)
	if !ok {
		return 0, 0, c.Reject(seq)
	}
	return n, hdr.ContentType, nil
}

func (c *cbc) DecryptInPlace(hdr record.Header, payload []byte) ([]byte, record.ContentType, error) {
	c.CheckArmed()
	if err := c.CheckDecrypt(len(payload)); err != nil {
		return nil, 0, err
	}
	seq, err := c.NextSequence()
	if err != nil {
		return nil, 0, err
	}
	explicitIV, body, ok := c.layout(payload)
	if !ok {
		return nil, 0, c.Reject(seq)
	}
	n, ok := c.open(body, seq, hdr, explicitIV, body)
	if !ok {
		return nil, 0, c.Reject(seq)
	}
	return body[:n], hdr.ContentType, nil
}

// open decrypts body into out (may be body), then checks padding and MAC
// without branching on padding validity
func (c *cbc) open(out []byte, seq uint64, hdr record.Header, explicitIV []byte, body []byte) (int, bool) {
	bs := c.Algorithm().BlockSize
	copy(c.IV(), body[len(body)-bs:]) // before body is overwritten
	if !c.block.DecryptCBC(out, c.Key(), explicitIV, body) {
		return 0, false
	}
	macSize := c.MACKeySize()
	toRemove, good := extractPadding(out, macSize)
	n := len(out) - toRemove - macSize

	var expected [constants.MaxHashLength]byte
	ad := record.AdditionalData12(seq, hdr.ContentType, hdr.Version, n)
	c.mac.Init(c.MAC(), c.MACKey())
	c.mac.Update(ad[:])
	c.mac.Update(out[:n])
	c.mac.Final(expected[:])

	// padding bytes go through the same digest, so total hashed length
	// does not depend on padding length
	var scratch [constants.MaxHashLength]byte
	c.dummy.Init(c.MAC().Digest)
	c.dummy.Update(out[n+macSize:])
	c.dummy.Final(scratch[:])

	macOK := subtle.ConstantTimeCompare(expected[:macSize], out[n:n+macSize])
	ok := macOK & subtle.ConstantTimeByteEq(good, 255)
	return n, ok == 1
}

// extractPadding returns number of bytes to remove (padding and its length byte)
// and good = 255 if padding is valid and leaves room for MAC, 0 otherwise.
// With invalid padding only the length byte is removed.
// Requires len(data) > macSize.
func extractPadding(data []byte, macSize int) (toRemove int, good byte) {
	paddingLen := data[len(data)-1]
	t := uint(len(data)-1-macSize) - uint(paddingLen)
	// if len(data)-1-macSize >= paddingLen then the MSB of t is zero
	good = byte(int32(^t) >> 31)

	// last 256 bytes at most, so work does not depend on paddingLen
	toCheck := min(256, len(data))
	for i := 0; i < toCheck; i++ {
		t := uint(paddingLen) - uint(i)
		// if i <= paddingLen then the MSB of t is zero
		mask := byte(int32(^t) >> 31)
		b := data[len(data)-1-i]
		good &^= mask&paddingLen ^ mask&b
	}

	// all bits of good must be set
	good &= good << 4
	good &= good << 2
	good &= good << 1
	good = uint8(int8(good) >> 7)

	toRemove = int(good&paddingLen) + 1
	return
}
