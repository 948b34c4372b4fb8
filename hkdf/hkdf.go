// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package hkdf is HKDF [rfc5869] over registered HMACs, plus TLS 1.3
// HKDF-Expand-Label and Derive-Secret [rfc8446:7.1].
package hkdf

import (
	"github.com/hrissan/tlscrypto/constants"
	"github.com/hrissan/tlscrypto/digest"
	"github.com/hrissan/tlscrypto/hmac"
	"github.com/hrissan/tlscrypto/registry"
	"github.com/hrissan/tlscrypto/safecast"
	"golang.org/x/crypto/cryptobyte"
)

type ID uint8

const (
	None   ID = 0
	SHA256 ID = ID(digest.SHA256)
	SHA384 ID = ID(digest.SHA384)
	SHA512 ID = ID(digest.SHA512)
)

const labelPrefix = "tls13 "

// 2 bytes length, 1+255 label, 1+255 context
const maxLabelInfo = 2 + 256 + 256

type Algorithm struct {
	ID          ID
	Name        string
	Description string
	ContextSize int
	HMAC        *hmac.Algorithm
}

func (a *Algorithm) RegistryID() int          { return int(a.ID) }
func (a *Algorithm) RegistryName() string     { return a.Name }
func (a *Algorithm) RegistryContextSize() int { return a.ContextSize }

func (a *Algorithm) IsNone() bool { return a.ID == None }

func (a *Algorithm) Size() int { return a.HMAC.Size }

func New(h *hmac.Algorithm) *Algorithm {
	return &Algorithm{
		ID:          ID(h.ID),
		Name:        "HKDF-" + h.Digest.Name,
		Description: "HKDF over " + h.Name,
		ContextSize: h.ContextSize + constants.MaxHashLength,
		HMAC:        h,
	}
}

var NoneAlgorithm = Algorithm{
	ID:          None,
	Name:        "NONE",
	Description: "no HKDF",
	HMAC:        &hmac.NoneAlgorithm,
}

type Registry = registry.Registry[*Algorithm]

func NewRegistry() *Registry {
	return registry.New[*Algorithm]("hkdf", constants.HKDFRegistryCapacity, constants.MaxHMACContext, &NoneAlgorithm)
}

// Extract returns PRK, empty salt means hash length of zeroes
func (a *Algorithm) Extract(salt []byte, keymaterial []byte) (result digest.Sum) {
	var zeroes [constants.MaxHashLength]byte
	if len(salt) == 0 {
		salt = zeroes[:a.Size()]
	}
	result.SetZero(a.Size())
	a.HMAC.MAC(result.GetValue(), salt, keymaterial)
	return
}

// Expand fills dst with OKM, dst must not be longer than 255 hash lengths
func (a *Algorithm) Expand(dst []byte, prk []byte, info []byte) {
	size := a.Size()
	if len(dst) > 255*size {
		panic("HKDF expand output too long")
	}
	var s hmac.State
	var t [constants.MaxHashLength]byte
	var counter [1]byte
	for offset := 0; offset < len(dst); {
		s.Init(a.HMAC, prk)
		if offset != 0 {
			s.Update(t[:size])
		}
		s.Update(info)
		counter[0]++
		s.Update(counter[:])
		s.Final(t[:])
		offset += copy(dst[offset:], t[:size])
	}
	clear(t[:])
}

// ExpandLabel fills dst with HKDF-Expand-Label(secret, label, context, len(dst))
func (a *Algorithm) ExpandLabel(dst []byte, secret []byte, label string, context []byte) {
	var storage [maxLabelInfo]byte
	b := cryptobyte.NewFixedBuilder(storage[:0])
	b.AddUint16(safecast.Length16(len(dst)))
	b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes([]byte(labelPrefix))
		b.AddBytes([]byte(label))
	})
	b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(context)
	})
	info, err := b.Bytes()
	if err != nil {
		panic("HKDF label or context too long: " + err.Error())
	}
	a.Expand(dst, secret, info)
}

func (a *Algorithm) ExpandLabelSum(secret []byte, label string, context []byte, length int) (result digest.Sum) {
	result.SetZero(length)
	a.ExpandLabel(result.GetValue(), secret, label, context)
	return
}

// DeriveSecret is Derive-Secret(secret, label, messages) for a ready transcript hash
func (a *Algorithm) DeriveSecret(secret []byte, label string, transcriptHash []byte) digest.Sum {
	return a.ExpandLabelSum(secret, label, transcriptHash, a.Size())
}
