// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package keys derives record protection key material for TLS 1.2 and TLS 1.3
// and binds it to record ciphers. All storage is fixed-size.
package keys

import (
	"github.com/hrissan/tlscrypto/cipher"
	"github.com/hrissan/tlscrypto/constants"
)

// Material is key material of one direction. Ciphers borrow MAC key and key,
// so Material must outlive the cipher it was bound to.
type Material struct {
	MACKey [constants.MaxMACKeySize]byte
	Key    [constants.MaxKeySize]byte
	IV     [constants.MaxIVSize]byte

	macKeySize uint8
	keySize    uint8
	ivSize     uint8
}

// SetSizes clears material and sets sizes for alg with MAC size macSize (0 for AEAD)
func (m *Material) SetSizes(alg *cipher.Algorithm, macSize int) {
	if macSize > len(m.MACKey) || alg.KeySize > len(m.Key) || alg.IVSize > len(m.IV) {
		panic("cipher key material exceeds storage")
	}
	*m = Material{
		macKeySize: uint8(macSize),     // safe due to check above
		keySize:    uint8(alg.KeySize), // safe due to check above
		ivSize:     uint8(alg.IVSize),  // safe due to check above
	}
}

func (m *Material) MACKeyBytes() []byte { return m.MACKey[:m.macKeySize] }
func (m *Material) KeyBytes() []byte    { return m.Key[:m.keySize] }
func (m *Material) IVBytes() []byte     { return m.IV[:m.ivSize] }

// Bind resets c and arms it with this material, sequence number starts from 0
func (m *Material) Bind(c cipher.Cipher) {
	c.Init()
	c.SetKey(m.KeyBytes())
	c.SetIV(m.IVBytes())
	if m.macKeySize != 0 {
		c.SetMAC(m.MACKeyBytes())
	}
}

func (m *Material) Wipe() {
	*m = Material{}
}
