// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package ciphersuite

import (
	"testing"

	"github.com/hrissan/tlscrypto/backend"
	"github.com/hrissan/tlscrypto/cipher"
	"github.com/hrissan/tlscrypto/digest"
	"github.com/hrissan/tlscrypto/hkdf"
	"github.com/hrissan/tlscrypto/prf"
	"github.com/hrissan/tlscrypto/tlserrors"
	"github.com/stretchr/testify/require"
)

func TestTableConsistency(t *testing.T) {
	seen := map[ID]bool{}
	for i := range suites {
		s := &suites[i]
		require.False(t, seen[s.ID], s.Name)
		seen[s.ID] = true
		require.NotZero(t, s.Transcript, s.Name)
		require.NotZero(t, s.ProtectionLimit, s.Name)
		switch s.Dialect {
		case cipher.DialectRFC8446:
			require.Equal(t, hkdf.ID(s.Transcript), s.HKDF, s.Name)
			require.Equal(t, prf.None, s.PRF, s.Name)
			require.Equal(t, cipher.TypeAEAD, s.Cipher.Type(), s.Name)
			require.Equal(t, KeyExchangeAny, s.KeyExchange, s.Name)
		case cipher.DialectRFC5246:
			require.Equal(t, prf.ID(s.Transcript), s.PRF, s.Name)
			require.Equal(t, hkdf.None, s.HKDF, s.Name)
			require.Equal(t, s.Cipher.Type() == cipher.TypeBlock, s.MAC != digest.None, s.Name)
		default:
			t.Fatalf("%s: unknown dialect", s.Name)
		}
	}
}

func TestLookup(t *testing.T) {
	s, err := Lookup(TLS_AES_256_GCM_SHA384)
	require.NoError(t, err)
	require.Equal(t, cipher.AES256GCMID, s.Cipher)
	require.Equal(t, hkdf.SHA384, s.HKDF)
	require.Equal(t, uint64(1<<24), s.ProtectionLimit)

	s = GetSuite(TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA)
	require.Equal(t, digest.SHA1, s.MAC)
	require.Equal(t, prf.SHA256, s.PRF)
	require.Equal(t, "ECDHE-RSA", s.KeyExchange.String())

	_, err = Lookup(TLS_AES_128_CCM_SHA256)
	require.ErrorIs(t, err, tlserrors.ErrUnsupportedSuite)
	require.Panics(t, func() { GetSuite(TLS_AES_128_CCM_8_SHA256) })
}

func TestPreferred(t *testing.T) {
	hardware := backend.Features{AES: true, CLMUL: true}
	require.Equal(t, []ID{TLS_AES_128_GCM_SHA256, TLS_AES_256_GCM_SHA384, TLS_CHACHA20_POLY1305_SHA256},
		Preferred(cipher.DialectRFC8446, hardware))
	require.Equal(t, []ID{TLS_CHACHA20_POLY1305_SHA256, TLS_AES_128_GCM_SHA256, TLS_AES_256_GCM_SHA384},
		Preferred(cipher.DialectRFC8446, backend.Features{}))

	legacy := Preferred(cipher.DialectRFC5246, backend.Features{})
	require.Len(t, legacy, len(Suites(cipher.DialectRFC5246)))
	require.Equal(t, TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256, legacy[0])
	last := GetSuite(legacy[len(legacy)-1])
	require.Equal(t, cipher.ModeCBC, last.Cipher.Mode())
}
