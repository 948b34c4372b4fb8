// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package poly1305

import (
	"bytes"
	"encoding/hex"
	"testing"

	xpoly1305 "golang.org/x/crypto/poly1305"
)

func mustHex(t testing.TB, s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestRFC7539(t *testing.T) {
	// [rfc7539:2.5.2]
	var key [KeySize]byte
	copy(key[:], mustHex(t, "85d6be7857556d337f4452fe42d506a80103808afb0db2fd4abff6af4149f51b"))
	msg := []byte("Cryptographic Forum Research Group")
	want := "a8061dc1305136c6c22b8baf0c0127a9"

	var mac [TagSize]byte
	Sum(&mac, msg, &key)
	if hex.EncodeToString(mac[:]) != want {
		t.Errorf("poly1305 tag %x, want %s", mac, want)
	}
	if !Verify(&mac, msg, &key) {
		t.Errorf("verify of correct tag failed")
	}
	mac[15] ^= 1
	if Verify(&mac, msg, &key) {
		t.Errorf("verify of wrong tag succeeded")
	}
}

func TestFinalZeroesState(t *testing.T) {
	var key [KeySize]byte
	for i := range key {
		key[i] = byte(i + 1)
	}
	var s State
	s.Init(&key)
	s.Update([]byte("some message longer than one block"))
	var mac [TagSize]byte
	s.Final(&mac)
	if s != (State{finalized: true}) {
		t.Errorf("state must be zeroed after final")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("update after final must panic")
		}
	}()
	s.Update([]byte{1})
}

// wraps h close to p, exercising the final conditional subtraction
func TestLargeAccumulator(t *testing.T) {
	var key [KeySize]byte
	for i := range key {
		key[i] = 0xff
	}
	msg := bytes.Repeat([]byte{0xff}, 16*17+3)
	checkMirror(t, &key, msg, 7)
}

func checkMirror(t *testing.T, key *[KeySize]byte, msg []byte, chunk int) {
	t.Helper()
	var want [TagSize]byte
	xpoly1305.Sum(&want, msg, key)

	var s State
	s.Init(key)
	if chunk <= 0 {
		chunk = 1
	}
	for rest := msg; len(rest) > 0; {
		n := min(chunk, len(rest))
		s.Update(rest[:n])
		rest = rest[n:]
		chunk = chunk%31 + 1
	}
	var got [TagSize]byte
	s.Final(&got)
	if got != want {
		t.Fatalf("tag %x, mirror %x (len %d)", got, want, len(msg))
	}
}

func TestMirrorLengths(t *testing.T) {
	var key [KeySize]byte
	for i := range key {
		key[i] = byte(i * 13)
	}
	msg := make([]byte, 100)
	for i := range msg {
		msg[i] = byte(i * 29)
	}
	for n := 0; n <= len(msg); n++ {
		for _, chunk := range []int{1, 3, 16, 17, 100} {
			checkMirror(t, &key, msg[:n], chunk)
		}
	}
}

func FuzzMirror(f *testing.F) {
	f.Add(bytes.Repeat([]byte{0xff}, KeySize), []byte("Cryptographic Forum Research Group"), 5)
	f.Fuzz(func(t *testing.T, keyData []byte, msg []byte, chunk int) {
		var key [KeySize]byte
		copy(key[:], keyData)
		checkMirror(t, &key, msg, chunk%64)
	})
}

func BenchmarkSum1K(b *testing.B) {
	var key [KeySize]byte
	var mac [TagSize]byte
	msg := make([]byte, 1024)
	b.SetBytes(int64(len(msg)))
	for i := 0; i < b.N; i++ {
		Sum(&mac, msg, &key)
	}
}
