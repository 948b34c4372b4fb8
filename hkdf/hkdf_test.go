// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package hkdf

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"io"
	"testing"

	"github.com/hrissan/tlscrypto/digest/sha2"
	"github.com/hrissan/tlscrypto/hmac"
	xhkdf "golang.org/x/crypto/hkdf"
)

func mustHex(t testing.TB, s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestRFC5869Case1(t *testing.T) {
	alg := New(hmac.New(&sha2.Algorithm256))
	ikm := bytes.Repeat([]byte{0x0b}, 22)
	salt := mustHex(t, "000102030405060708090a0b0c")
	info := mustHex(t, "f0f1f2f3f4f5f6f7f8f9")
	prk := alg.Extract(salt, ikm)
	if got := hex.EncodeToString(prk.GetValue()); got != "077709362c2e32df0ddc3f0dc47bba6390b6c73bb50f9c3122ec844ad7c2b3e5" {
		t.Fatalf("PRK %s", got)
	}
	okm := make([]byte, 42)
	alg.Expand(okm, prk.GetValue(), info)
	if got := hex.EncodeToString(okm); got != "3cb25f25faacd57a90434f64d0362f2a2d2d0a90cf1a5a4c5db02d56ecc4c5bf34007208d5b887185865" {
		t.Fatalf("OKM %s", got)
	}
}

func TestTLS13EarlySecret(t *testing.T) {
	// [rfc8448:3] early secret without PSK and "derived" secret
	alg := New(hmac.New(&sha2.Algorithm256))
	early := alg.Extract(nil, make([]byte, 32))
	if got := hex.EncodeToString(early.GetValue()); got != "33ad0a1c607ec03b09e6cd9893680ce210adf300aa1f2660e1b22e10f170f92a" {
		t.Fatalf("early secret %s", got)
	}
	emptyHash := sha256.Sum256(nil)
	derived := alg.DeriveSecret(early.GetValue(), "derived", emptyHash[:])
	if got := hex.EncodeToString(derived.GetValue()); got != "6f2615a108c702c5678f54fc9dbab69716c076189c48250cebeac3576c3611ba" {
		t.Fatalf("derived secret %s", got)
	}
}

func TestExpandTooLong(t *testing.T) {
	alg := New(hmac.New(&sha2.Algorithm256))
	defer func() {
		if recover() == nil {
			t.Fatalf("expand beyond 255 blocks must panic")
		}
	}()
	alg.Expand(make([]byte, 255*32+1), make([]byte, 32), nil)
}

func checkMirror(t *testing.T, alg *Algorithm, mirror func() hash.Hash, salt []byte, ikm []byte, info []byte, n int) {
	t.Helper()
	prk := alg.Extract(salt, ikm)
	if want := xhkdf.Extract(mirror, ikm, salt); !bytes.Equal(prk.GetValue(), want) {
		t.Fatalf("%s extract %x want %x", alg.Name, prk.GetValue(), want)
	}
	want := make([]byte, n)
	if _, err := io.ReadFull(xhkdf.Expand(mirror, prk.GetValue(), info), want); err != nil {
		t.Fatal(err)
	}
	got := make([]byte, n)
	alg.Expand(got, prk.GetValue(), info)
	if !bytes.Equal(got, want) {
		t.Fatalf("%s expand %x want %x", alg.Name, got, want)
	}
}

func TestMirror(t *testing.T) {
	algs := []struct {
		alg    *Algorithm
		mirror func() hash.Hash
	}{
		{New(hmac.New(&sha2.Algorithm256)), sha256.New},
		{New(hmac.New(&sha2.Algorithm384)), sha512.New384},
		{New(hmac.New(&sha2.Algorithm512)), sha512.New},
	}
	for _, a := range algs {
		for _, n := range []int{0, 1, 12, 16, 32, 48, 64, 65, 1000} {
			checkMirror(t, a.alg, a.mirror, []byte("salt"), []byte("input key material"), []byte("info"), n)
			checkMirror(t, a.alg, a.mirror, nil, nil, nil, n)
		}
	}
}

func FuzzMirror(f *testing.F) {
	f.Add([]byte("salt"), []byte("ikm"), []byte("info"), 42)
	alg := New(hmac.New(&sha2.Algorithm256))
	f.Fuzz(func(t *testing.T, salt []byte, ikm []byte, info []byte, n int) {
		n = n % 500
		if n < 0 {
			n = -n
		}
		checkMirror(t, alg, sha256.New, salt, ikm, info, n)
	})
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(New(hmac.New(&sha2.Algorithm384)))
	if got := reg.Lookup(int(SHA384)); got.Size() != 48 {
		t.Fatalf("lookup returned %s", got.Name)
	}
	if !reg.Lookup(int(SHA256)).IsNone() {
		t.Fatalf("unregistered HKDF must be sentinel")
	}
}
