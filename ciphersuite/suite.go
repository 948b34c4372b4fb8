// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package ciphersuite binds IANA cipher suite IDs to registered algorithm IDs.
// Suites are plain data, algorithms.Tables resolves them to descriptors.
package ciphersuite

import (
	"fmt"
	"math"

	"github.com/hrissan/tlscrypto/backend"
	"github.com/hrissan/tlscrypto/cipher"
	"github.com/hrissan/tlscrypto/digest"
	"github.com/hrissan/tlscrypto/hkdf"
	"github.com/hrissan/tlscrypto/prf"
	"github.com/hrissan/tlscrypto/tlserrors"
)

type ID uint16

const (
	// [rfc8446:4.5.3] AEAD Limits - 2^36 limit for 3 ciphers at the top
	TLS_AES_128_GCM_SHA256       ID = 0x1301
	TLS_AES_256_GCM_SHA384       ID = 0x1302
	TLS_CHACHA20_POLY1305_SHA256 ID = 0x1303

	// ciphers below are not recommended to be implemented
	TLS_AES_128_CCM_SHA256   ID = 0x1304
	TLS_AES_128_CCM_8_SHA256 ID = 0x1305

	TLS_RSA_WITH_AES_128_CBC_SHA    ID = 0x002F
	TLS_RSA_WITH_AES_256_CBC_SHA    ID = 0x0035
	TLS_RSA_WITH_AES_128_CBC_SHA256 ID = 0x003C
	TLS_RSA_WITH_AES_256_CBC_SHA256 ID = 0x003D
	TLS_RSA_WITH_AES_128_GCM_SHA256 ID = 0x009C
	TLS_RSA_WITH_AES_256_GCM_SHA384 ID = 0x009D

	TLS_ECDHE_ECDSA_WITH_AES_128_CBC_SHA    ID = 0xC009
	TLS_ECDHE_ECDSA_WITH_AES_256_CBC_SHA    ID = 0xC00A
	TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA      ID = 0xC013
	TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA      ID = 0xC014
	TLS_ECDHE_ECDSA_WITH_AES_128_CBC_SHA256 ID = 0xC023
	TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA256   ID = 0xC027
	TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256 ID = 0xC02B
	TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384 ID = 0xC02C
	TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256   ID = 0xC02F
	TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384   ID = 0xC030

	TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256   ID = 0xCCA8
	TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256 ID = 0xCCA9
)

type KeyExchange uint8

const (
	KeyExchangeAny        KeyExchange = iota // TLS 1.3, negotiated separately
	KeyExchangeRSA                           // static RSA, no forward secrecy
	KeyExchangeECDHERSA
	KeyExchangeECDHEECDSA
)

func (k KeyExchange) String() string {
	switch k {
	case KeyExchangeAny:
		return "any"
	case KeyExchangeRSA:
		return "RSA"
	case KeyExchangeECDHERSA:
		return "ECDHE-RSA"
	case KeyExchangeECDHEECDSA:
		return "ECDHE-ECDSA"
	}
	return fmt.Sprintf("kx(%d)", uint8(k))
}

type Suite struct {
	ID          ID
	Name        string
	Dialect     cipher.Dialect
	Cipher      cipher.ID
	MAC         digest.ID // HMAC digest of CBC suites, None for AEAD
	PRF         prf.ID    // TLS 1.2 only
	HKDF        hkdf.ID   // TLS 1.3 only
	Transcript  digest.ID // handshake transcript hash
	KeyExchange KeyExchange
	// when we protect or deprotect 3/4 of this number of records, we ask for KeyUpdate
	// if peer does not respond quickly. and we reach it, we close connection for good
	ProtectionLimit uint64
}

func (s *Suite) String() string { return s.Name }

// [rfc8446:5.5] For AES-GCM, up to 2^24.5 full-size records (about 24 million) may be encrypted
const limitAESGCM = 1 << 24

// [rfc8446:5.5] For ChaCha20/Poly1305, the record sequence number would wrap before the safety limit is reached
const limitChaCha = math.MaxUint64

// CBC-HMAC suites have no key update, sequence number is the only limit
const limitCBC = math.MaxUint64

func tls13(id ID, name string, c cipher.ID, h digest.ID, limit uint64) Suite {
	return Suite{ID: id, Name: name, Dialect: cipher.DialectRFC8446, Cipher: c,
		HKDF: hkdf.ID(h), Transcript: h, KeyExchange: KeyExchangeAny, ProtectionLimit: limit}
}

func tls12(id ID, name string, kx KeyExchange, c cipher.ID, mac digest.ID, h digest.ID, limit uint64) Suite {
	return Suite{ID: id, Name: name, Dialect: cipher.DialectRFC5246, Cipher: c, MAC: mac,
		PRF: prf.ID(h), Transcript: h, KeyExchange: kx, ProtectionLimit: limit}
}

// suites in preference order for hardware with AES instructions
var suites = [...]Suite{
	tls13(TLS_AES_128_GCM_SHA256, "TLS_AES_128_GCM_SHA256", cipher.AES128GCMID, digest.SHA256, limitAESGCM),
	tls13(TLS_AES_256_GCM_SHA384, "TLS_AES_256_GCM_SHA384", cipher.AES256GCMID, digest.SHA384, limitAESGCM),
	tls13(TLS_CHACHA20_POLY1305_SHA256, "TLS_CHACHA20_POLY1305_SHA256", cipher.ChaCha20Poly1305ID, digest.SHA256, limitChaCha),

	tls12(TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256, "TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256", KeyExchangeECDHEECDSA, cipher.AES128GCMID, digest.None, digest.SHA256, limitAESGCM),
	tls12(TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256, "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256", KeyExchangeECDHERSA, cipher.AES128GCMID, digest.None, digest.SHA256, limitAESGCM),
	tls12(TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384, "TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384", KeyExchangeECDHEECDSA, cipher.AES256GCMID, digest.None, digest.SHA384, limitAESGCM),
	tls12(TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384, "TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384", KeyExchangeECDHERSA, cipher.AES256GCMID, digest.None, digest.SHA384, limitAESGCM),
	tls12(TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256, "TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256", KeyExchangeECDHEECDSA, cipher.ChaCha20Poly1305ID, digest.None, digest.SHA256, limitChaCha),
	tls12(TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256, "TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256", KeyExchangeECDHERSA, cipher.ChaCha20Poly1305ID, digest.None, digest.SHA256, limitChaCha),
	tls12(TLS_ECDHE_ECDSA_WITH_AES_128_CBC_SHA256, "TLS_ECDHE_ECDSA_WITH_AES_128_CBC_SHA256", KeyExchangeECDHEECDSA, cipher.AES128CBCID, digest.SHA256, digest.SHA256, limitCBC),
	tls12(TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA256, "TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA256", KeyExchangeECDHERSA, cipher.AES128CBCID, digest.SHA256, digest.SHA256, limitCBC),
	tls12(TLS_ECDHE_ECDSA_WITH_AES_128_CBC_SHA, "TLS_ECDHE_ECDSA_WITH_AES_128_CBC_SHA", KeyExchangeECDHEECDSA, cipher.AES128CBCID, digest.SHA1, digest.SHA256, limitCBC),
	tls12(TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA, "TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA", KeyExchangeECDHERSA, cipher.AES128CBCID, digest.SHA1, digest.SHA256, limitCBC),
	tls12(TLS_ECDHE_ECDSA_WITH_AES_256_CBC_SHA, "TLS_ECDHE_ECDSA_WITH_AES_256_CBC_SHA", KeyExchangeECDHEECDSA, cipher.AES256CBCID, digest.SHA1, digest.SHA256, limitCBC),
	tls12(TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA, "TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA", KeyExchangeECDHERSA, cipher.AES256CBCID, digest.SHA1, digest.SHA256, limitCBC),
	tls12(TLS_RSA_WITH_AES_128_GCM_SHA256, "TLS_RSA_WITH_AES_128_GCM_SHA256", KeyExchangeRSA, cipher.AES128GCMID, digest.None, digest.SHA256, limitAESGCM),
	tls12(TLS_RSA_WITH_AES_256_GCM_SHA384, "TLS_RSA_WITH_AES_256_GCM_SHA384", KeyExchangeRSA, cipher.AES256GCMID, digest.None, digest.SHA384, limitAESGCM),
	tls12(TLS_RSA_WITH_AES_128_CBC_SHA256, "TLS_RSA_WITH_AES_128_CBC_SHA256", KeyExchangeRSA, cipher.AES128CBCID, digest.SHA256, digest.SHA256, limitCBC),
	tls12(TLS_RSA_WITH_AES_256_CBC_SHA256, "TLS_RSA_WITH_AES_256_CBC_SHA256", KeyExchangeRSA, cipher.AES256CBCID, digest.SHA256, digest.SHA256, limitCBC),
	tls12(TLS_RSA_WITH_AES_128_CBC_SHA, "TLS_RSA_WITH_AES_128_CBC_SHA", KeyExchangeRSA, cipher.AES128CBCID, digest.SHA1, digest.SHA256, limitCBC),
	tls12(TLS_RSA_WITH_AES_256_CBC_SHA, "TLS_RSA_WITH_AES_256_CBC_SHA", KeyExchangeRSA, cipher.AES256CBCID, digest.SHA1, digest.SHA256, limitCBC),
}

// Lookup returns tlserrors.ErrUnsupportedSuite for suites not in the table
func Lookup(id ID) (*Suite, error) {
	for i := range suites {
		if suites[i].ID == id {
			return &suites[i], nil
		}
	}
	return nil, tlserrors.ErrUnsupportedSuite
}

// GetSuite is Lookup for suites known to be supported
func GetSuite(id ID) *Suite {
	s, err := Lookup(id)
	if err != nil {
		panic("unsupported ciphersuite ID")
	}
	return s
}

// Suites returns all supported suites of the dialect in table order
func Suites(dialect cipher.Dialect) []*Suite {
	var result []*Suite
	for i := range suites {
		if suites[i].Dialect == dialect {
			result = append(result, &suites[i])
		}
	}
	return result
}

// Preferred orders suites of the dialect for our CPU. Without hardware AES and
// carry-less multiplication ChaCha20-Poly1305 goes before AES-GCM.
// CBC suites are always last. Otherwise order of the table is kept.
func Preferred(dialect cipher.Dialect, features backend.Features) []ID {
	var gcm, chacha, cbc []ID
	for _, s := range Suites(dialect) {
		switch {
		case s.Cipher == cipher.ChaCha20Poly1305ID:
			chacha = append(chacha, s.ID)
		case s.Cipher.Mode() == cipher.ModeCBC:
			cbc = append(cbc, s.ID)
		default:
			gcm = append(gcm, s.ID)
		}
	}
	if features.HardwareAESGCM() {
		return append(append(gcm, chacha...), cbc...)
	}
	return append(append(chacha, gcm...), cbc...)
}
