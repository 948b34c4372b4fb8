// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package cipher

import (
	"encoding/binary"
	"math"

	"github.com/hrissan/tlscrypto/backend"
	"github.com/hrissan/tlscrypto/constants"
	"github.com/hrissan/tlscrypto/hmac"
	"github.com/hrissan/tlscrypto/record"
	"github.com/hrissan/tlscrypto/stats"
	"github.com/hrissan/tlscrypto/tlserrors"
	"github.com/hrissan/tlscrypto/tlsrand"
)

// Base keeps key material, sequence number and lifecycle state,
// adapters embed it and implement Encrypt and Decrypt.
type Base struct {
	Env Env

	alg        *Algorithm
	mac        *hmac.Algorithm
	maxPayload int

	key    []byte
	macKey []byte
	iv     [constants.MaxIVSize]byte
	seq    uint64

	keySet bool
	ivSet  bool
	macSet bool
}

func NewBase(env Env, alg *Algorithm) Base {
	if env.Provider == nil {
		env.Provider = backend.Default()
	}
	if env.Stats == nil {
		env.Stats = stats.NopStats()
	}
	if env.Rand == nil {
		env.Rand = tlsrand.CryptoRand()
	}
	if env.MaxPlaintextLength <= 0 || env.MaxPlaintextLength > record.MaxPlaintextLength {
		env.MaxPlaintextLength = record.MaxPlaintextLength
	}
	if alg.IVSize > constants.MaxIVSize || alg.KeySize > constants.MaxKeySize {
		panic("cipher descriptor key or IV size exceeds storage")
	}
	mac := alg.MAC
	if env.MAC != nil && alg.Type() == TypeBlock {
		mac = env.MAC
	}
	return Base{
		Env:        env,
		alg:        alg,
		mac:        mac,
		maxPayload: alg.MaxPayloadSize(env.MaxPlaintextLength),
	}
}

func (b *Base) Init() {
	b.key = nil
	clear(b.iv[:])
	b.macKey = nil
	b.seq = 0
	b.keySet = false
	b.ivSet = false
	b.macSet = false
}

func (b *Base) SetKey(key []byte) {
	if len(key) != b.alg.KeySize {
		panic("cipher key size differs from descriptor key size")
	}
	b.key = key
	b.keySet = true
}

func (b *Base) SetIV(iv []byte) {
	if len(iv) != b.alg.IVSize {
		panic("cipher IV size differs from descriptor IV size")
	}
	copy(b.iv[:], iv)
	b.ivSet = true
}

func (b *Base) SetMAC(macKey []byte) {
	if len(macKey) != b.MACKeySize() {
		panic("cipher MAC key size differs from MAC size")
	}
	b.macKey = macKey
	b.macSet = true
}

// MACKeySize is size of MAC key and MAC itself, 0 for AEAD ciphers
func (b *Base) MACKeySize() int {
	if b.mac == nil {
		return 0
	}
	return b.mac.Size
}

func (b *Base) MAC() *hmac.Algorithm { return b.mac }

func (b *Base) Key() []byte    { return b.key }
func (b *Base) MACKey() []byte { return b.macKey }

// IV is the stored IV, adapters may update it (running CBC IV)
func (b *Base) IV() []byte { return b.iv[:b.alg.IVSize] }

func (b *Base) SetSequence(seq uint64) { b.seq = seq }
func (b *Base) Sequence() uint64       { return b.seq }
func (b *Base) Algorithm() *Algorithm  { return b.alg }

// MaxPayload is the largest payload Decrypt accepts
func (b *Base) MaxPayload() int { return b.maxPayload }

// CheckArmed panics if record processing is attempted before keys are set
func (b *Base) CheckArmed() {
	if !b.keySet || !b.ivSet {
		panic("cipher used before SetKey and SetIV")
	}
	if b.MACKeySize() != 0 && !b.macSet {
		panic("cipher used before SetMAC")
	}
}

// CheckEncrypt is capacity check done before any work, sequence is not advanced
func (b *Base) CheckEncrypt(dst []byte, plaintextLen int) error {
	if plaintextLen > b.Env.MaxPlaintextLength {
		return tlserrors.ErrRecordOverflow
	}
	if len(dst) < b.alg.SealedSize(plaintextLen, b.MACKeySize()) {
		return tlserrors.ErrOutputTooSmall
	}
	return nil
}

// CheckDecrypt is capacity check done before any work, sequence is not advanced
func (b *Base) CheckDecrypt(payloadLen int) error {
	if payloadLen > b.maxPayload {
		return tlserrors.ErrRecordOverflow
	}
	return nil
}

// NextSequence returns sequence number for this record and advances it.
// Sequence never wraps, the last value is reserved as exhausted marker.
func (b *Base) NextSequence() (uint64, error) {
	if b.seq == math.MaxUint64 {
		b.Env.Stats.SequenceExhausted(b.alg.Name)
		return 0, tlserrors.ErrSequenceExhausted
	}
	seq := b.seq
	b.seq++
	return seq, nil
}

// Reject reports record which failed authentication or format checks
func (b *Base) Reject(seq uint64) error {
	b.Env.Stats.RecordRejected(b.alg.Name, seq, tlserrors.ErrRecordRejected)
	return tlserrors.ErrRecordRejected
}

// FillIVSequence XORs big endian seq into the last 8 bytes of iv [rfc8446:5.3] [rfc7905:2].
// Panics if len(iv) is < 8.
func FillIVSequence(iv []byte, seq uint64) {
	maskBytes := iv[len(iv)-8:]
	mask := binary.BigEndian.Uint64(maskBytes)
	binary.BigEndian.PutUint64(maskBytes, seq^mask)
}
