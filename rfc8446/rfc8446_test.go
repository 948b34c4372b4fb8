// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package rfc8446

import (
	"bytes"
	"crypto/aes"
	stdcipher "crypto/cipher"
	"encoding/hex"
	"testing"

	"github.com/hrissan/tlscrypto/backend"
	"github.com/hrissan/tlscrypto/cipher"
	"github.com/hrissan/tlscrypto/record"
	"github.com/hrissan/tlscrypto/stats"
	"github.com/hrissan/tlscrypto/tlserrors"
	"golang.org/x/crypto/chacha20poly1305"
)

var outerHeader = record.Header{ContentType: record.ContentTypeApplicationData, Version: record.VersionTLS12}

func seqBytes(n int, start byte) []byte {
	result := make([]byte, n)
	for i := range result {
		result[i] = start + byte(i)
	}
	return result
}

func armed(t testing.TB, alg *cipher.Algorithm, env cipher.Env) cipher.Cipher {
	c := alg.NewCipher(env)
	c.Init()
	c.SetKey(seqBytes(alg.KeySize, 0))
	c.SetIV(seqBytes(alg.IVSize, 1))
	return c
}

func reference(t *testing.T, alg *cipher.Algorithm) stdcipher.AEAD {
	key := seqBytes(alg.KeySize, 0)
	if alg == ChaCha20Poly1305 {
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			t.Fatal(err)
		}
		return aead
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	aead, err := stdcipher.NewGCM(block)
	if err != nil {
		t.Fatal(err)
	}
	return aead
}

func referenceNonce(seq uint64) []byte {
	nonce := seqBytes(12, 1)
	for i := 0; i < 8; i++ {
		nonce[4+i] ^= byte(seq >> (56 - 8*i))
	}
	return nonce
}

func TestGCMVector(t *testing.T) {
	// computed independently: key 00..0f, IV 01..0c, inner plaintext "hello, world" || handshake
	want := []string{
		"6e60044a5cd97fb2572e6121bb" + "41dfe71941fbe148e47d6bb9adff1123",
		"3d1160107b35ff97192691f1cb" + "7707a19f441ad8eb8bdf9967e69078d4",
	}
	hdr := record.Header{ContentType: record.ContentTypeHandshake, Version: record.VersionTLS12}
	for _, name := range backend.Names() {
		provider, err := backend.Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		env := cipher.DefaultEnv()
		env.Provider = provider
		enc := armed(t, AES128GCM, env)
		dec := armed(t, AES128GCM, env)
		for _, w := range want {
			dst := make([]byte, 64)
			n, err := enc.Encrypt(dst, hdr, []byte("hello, world"))
			if err != nil {
				t.Fatal(err)
			}
			if got := hex.EncodeToString(dst[:n]); got != w {
				t.Fatalf("%s: record %s want %s", name, got, w)
			}
			out := make([]byte, n)
			m, ct, err := dec.Decrypt(out, outerHeader, dst[:n])
			if err != nil || ct != record.ContentTypeHandshake || string(out[:m]) != "hello, world" {
				t.Fatalf("%s: decrypt %d %v %v", name, m, ct, err)
			}
		}
	}
}

func TestInnerPadding(t *testing.T) {
	for _, alg := range []*cipher.Algorithm{AES128GCM, AES256GCM, ChaCha20Poly1305} {
		ref := reference(t, alg)
		dec := armed(t, alg, cipher.DefaultEnv())
		for seq, padding := range []int{0, 1, 15, 16, 17, 100} {
			inner := append([]byte("ping"), byte(record.ContentTypeAlert))
			inner = append(inner, make([]byte, padding)...)
			ad := record.AdditionalData13(len(inner) + ref.Overhead())
			payload := ref.Seal(nil, referenceNonce(uint64(seq)), inner, ad[:])
			result, ct, err := dec.DecryptInPlace(outerHeader, payload)
			if err != nil || ct != record.ContentTypeAlert || string(result) != "ping" {
				t.Fatalf("%s: padding %d: %q %v %v", alg.Name, padding, result, ct, err)
			}
		}
	}
}

func TestRejects(t *testing.T) {
	ref := reference(t, AES128GCM)
	seal := func(inner []byte) []byte {
		ad := record.AdditionalData13(len(inner) + ref.Overhead())
		return ref.Seal(nil, referenceNonce(0), inner, ad[:])
	}
	valid := seal([]byte{1, 2, 3, byte(record.ContentTypeApplicationData)})
	cases := map[string]struct {
		hdr     record.Header
		payload []byte
	}{
		"only padding":   {outerHeader, seal(make([]byte, 20))},
		"empty inner":    {outerHeader, seal(nil)},
		"short":          {outerHeader, valid[:16]},
		"truncated":      {outerHeader, valid[:len(valid)-1]},
		"outer type":     {record.Header{ContentType: record.ContentTypeHandshake, Version: record.VersionTLS12}, valid},
		"outer version":  {record.Header{ContentType: record.ContentTypeApplicationData, Version: record.VersionTLS10}, valid},
		"flipped tag":    {outerHeader, append(append([]byte{}, valid[:len(valid)-1]...), valid[len(valid)-1]^0x80)},
		"flipped header": {outerHeader, append([]byte{valid[0] ^ 1}, valid[1:]...)},
	}
	for name, tc := range cases {
		counters := &stats.Counters{}
		env := cipher.DefaultEnv()
		env.Stats = counters
		c := armed(t, AES128GCM, env)
		out := make([]byte, len(tc.payload))
		if _, _, err := c.Decrypt(out, tc.hdr, tc.payload); err != tlserrors.ErrRecordRejected {
			t.Fatalf("%s: error %v", name, err)
		}
		if c.Sequence() != 1 || counters.Rejected.Load() != 1 {
			t.Fatalf("%s: rejection must advance sequence and be reported", name)
		}
	}
	c := armed(t, AES128GCM, cipher.DefaultEnv())
	result, ct, err := c.DecryptInPlace(outerHeader, valid)
	if err != nil || ct != record.ContentTypeApplicationData || !bytes.Equal(result, []byte{1, 2, 3}) {
		t.Fatalf("valid record rejected: %v", err)
	}
}

func TestChaChaMirror(t *testing.T) {
	enc := armed(t, ChaCha20Poly1305, cipher.DefaultEnv())
	enc.SetSequence(1000)
	plaintext := seqBytes(300, 9)
	dst := make([]byte, ChaCha20Poly1305.SealedSize(len(plaintext), 0))
	n, err := enc.Encrypt(dst, record.Header{ContentType: record.ContentTypeApplicationData}, plaintext)
	if err != nil {
		t.Fatal(err)
	}
	inner := append(append([]byte{}, plaintext...), byte(record.ContentTypeApplicationData))
	ad := record.AdditionalData13(n)
	want := reference(t, ChaCha20Poly1305).Seal(nil, referenceNonce(1000), inner, ad[:])
	if !bytes.Equal(dst[:n], want) {
		t.Fatalf("record differs from reference AEAD")
	}
}

func TestRoundTripSizes(t *testing.T) {
	for _, alg := range Algorithms() {
		enc := armed(t, alg, cipher.DefaultEnv())
		dec := armed(t, alg, cipher.DefaultEnv())
		for _, size := range []int{0, 1, 100, record.MaxPlaintextLength} {
			plaintext := seqBytes(size, 5)
			dst := make([]byte, alg.SealedSize(size, 0))
			n, err := enc.Encrypt(dst, record.Header{ContentType: record.ContentTypeApplicationData}, plaintext)
			if err != nil || n != len(dst) {
				t.Fatalf("%s: encrypt %d: %v", alg.Name, size, err)
			}
			if alg == cipher.Null13 {
				continue
			}
			result, _, err := dec.DecryptInPlace(outerHeader, dst[:n])
			if err != nil || !bytes.Equal(result, plaintext) {
				t.Fatalf("%s: decrypt %d: %v", alg.Name, size, err)
			}
		}
	}
}

func TestRegister(t *testing.T) {
	reg := cipher.NewRegistry(cipher.DialectRFC8446)
	for _, alg := range Algorithms() {
		reg.MustRegister(alg)
	}
	if reg.Lookup(int(cipher.ChaCha20Poly1305ID)) != ChaCha20Poly1305 {
		t.Fatalf("ChaCha20-Poly1305 not found")
	}
	if !reg.Lookup(int(cipher.AES128CBCID)).IsNone() {
		t.Fatalf("CBC must not exist in TLS 1.3 registry")
	}
}
