// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package digesttest has shared checks for digest implementations
package digesttest

import (
	"bytes"
	"hash"
	"testing"

	"github.com/hrissan/tlscrypto/digest"
)

// CheckAgainstMirror compares one-shot and chunked streaming results
// of alg with the mirror implementation.
func CheckAgainstMirror(t *testing.T, alg *digest.Algorithm, mirror hash.Hash, data []byte, chunk int) {
	t.Helper()
	mirror.Reset()
	mirror.Write(data)
	want := mirror.Sum(nil)
	if len(want) != alg.Size {
		t.Fatalf("%s: mirror size %d differs from descriptor size %d", alg.Name, len(want), alg.Size)
	}

	oneShot := make([]byte, alg.Size)
	alg.Hash(oneShot, data)
	if !bytes.Equal(oneShot, want) {
		t.Fatalf("%s: one-shot %x, mirror %x", alg.Name, oneShot, want)
	}

	var ctx digest.Context
	ctx.Init(alg)
	if chunk <= 0 {
		chunk = 1
	}
	for rest := data; len(rest) > 0; {
		n := min(chunk, len(rest))
		ctx.Update(rest[:n])
		rest = rest[n:]
		chunk = chunk*3/2 + 1 // vary chunk sizes inside one stream
	}
	streamed := make([]byte, alg.Size+8)
	got := ctx.Final(streamed)
	if !bytes.Equal(got, want) {
		t.Fatalf("%s: streamed %x, mirror %x", alg.Name, got, want)
	}
	for _, b := range streamed[alg.Size:] {
		if b != 0 {
			t.Fatalf("%s: Final wrote past digest size", alg.Name)
		}
	}
}

// TestData produces deterministic input of given length
func TestData(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i*7 + i>>8)
	}
	return data
}

// CheckLengths runs the mirror check for lengths around block boundaries
func CheckLengths(t *testing.T, alg *digest.Algorithm, mirror hash.Hash) {
	t.Helper()
	for n := 0; n <= 3*alg.BlockSize+3; n++ {
		for _, chunk := range []int{1, 5, alg.BlockSize - 1, alg.BlockSize, 1000} {
			CheckAgainstMirror(t, alg, mirror, TestData(n), chunk)
		}
	}
}
