// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package cipher

import (
	"unsafe"

	"github.com/hrissan/tlscrypto/constants"
	"github.com/hrissan/tlscrypto/record"
	"github.com/hrissan/tlscrypto/tlserrors"
)

// nullCipher is TLS_NULL_WITH_NULL_NULL record protection, identity transform
type nullCipher struct {
	Base
}

var _ [constants.MaxCipherContext - unsafe.Sizeof(nullCipher{})]struct{}

func nullDescriptor(dialect Dialect) *Algorithm {
	return &Algorithm{
		ID:          NullID,
		Name:        "NULL",
		Description: "identity transform before keys are negotiated",
		Dialect:     dialect,
		ContextSize: int(unsafe.Sizeof(nullCipher{})),
		New: func(env Env, alg *Algorithm) Cipher {
			c := &nullCipher{Base: NewBase(env, alg)}
			c.keySet = true
			c.ivSet = true
			return c
		},
	}
}

var Null12 = nullDescriptor(DialectRFC5246)
var Null13 = nullDescriptor(DialectRFC8446)

func (c *nullCipher) Init() {
	c.Base.Init()
	c.keySet = true
	c.ivSet = true
}

func (c *nullCipher) Encrypt(dst []byte, hdr record.Header, plaintext []byte) (int, error) {
	if err := c.CheckEncrypt(dst, len(plaintext)); err != nil {
		return 0, err
	}
	if _, err := c.NextSequence(); err != nil {
		return 0, err
	}
	return copy(dst, plaintext), nil
}

func (c *nullCipher) Decrypt(dst []byte, hdr record.Header, payload []byte) (int, record.ContentType, error) {
	if err := c.CheckDecrypt(len(payload)); err != nil {
		return 0, 0, err
	}
	if len(dst) < len(payload) {
		return 0, 0, tlserrors.ErrOutputTooSmall
	}
	if _, err := c.NextSequence(); err != nil {
		return 0, 0, err
	}
	return copy(dst, payload), hdr.ContentType, nil
}

func (c *nullCipher) DecryptInPlace(hdr record.Header, payload []byte) ([]byte, record.ContentType, error) {
	if err := c.CheckDecrypt(len(payload)); err != nil {
		return nil, 0, err
	}
	if _, err := c.NextSequence(); err != nil {
		return nil, 0, err
	}
	return payload, hdr.ContentType, nil
}

// noneCipher is the registry sentinel, it refuses to process records
type noneCipher struct {
	alg *Algorithm
}

var NoneAlgorithm = Algorithm{
	ID:          NoneID,
	Name:        "NONE",
	Description: "no cipher",
	New: func(env Env, alg *Algorithm) Cipher {
		return &noneCipher{alg: alg}
	},
}

func (c *noneCipher) Init()                 {}
func (c *noneCipher) SetKey([]byte)         {}
func (c *noneCipher) SetIV([]byte)          {}
func (c *noneCipher) SetMAC([]byte)         {}
func (c *noneCipher) SetSequence(uint64)    {}
func (c *noneCipher) Sequence() uint64      { return 0 }
func (c *noneCipher) Algorithm() *Algorithm { return c.alg }

func (c *noneCipher) Encrypt([]byte, record.Header, []byte) (int, error) {
	return 0, tlserrors.ErrNoneCipher
}

func (c *noneCipher) Decrypt([]byte, record.Header, []byte) (int, record.ContentType, error) {
	return 0, 0, tlserrors.ErrNoneCipher
}

func (c *noneCipher) DecryptInPlace(record.Header, []byte) ([]byte, record.ContentType, error) {
	return nil, 0, tlserrors.ErrNoneCipher
}
