// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package digest_test

import (
	"bytes"
	"testing"

	"github.com/hrissan/tlscrypto/digest"
	"github.com/hrissan/tlscrypto/digest/md5"
	"github.com/hrissan/tlscrypto/digest/sha1"
)

func TestContextReuse(t *testing.T) {
	var ctx digest.Context
	ctx.Init(&sha1.Algorithm)
	ctx.Update([]byte("abc"))
	first := ctx.FinalSum()

	ctx.Init(&sha1.Algorithm)
	ctx.Update([]byte("ab"))
	ctx.Update([]byte("c"))
	second := ctx.FinalSum()
	if first != second {
		t.Errorf("reinitialized context must produce the same digest")
	}

	ctx.Init(&md5.Algorithm)
	ctx.Update([]byte("abc"))
	m := ctx.FinalSum()
	want := md5.Sum([]byte("abc"))
	if !bytes.Equal(m.GetValue(), want[:]) {
		t.Errorf("context switched algorithm incorrectly")
	}
}

func TestContextFinalTwicePanics(t *testing.T) {
	var ctx digest.Context
	ctx.Init(&sha1.Algorithm)
	var out [sha1.Size]byte
	ctx.Final(out[:])
	defer func() {
		if recover() == nil {
			t.Errorf("second Final must panic")
		}
	}()
	ctx.Final(out[:])
}

func TestShortOutputPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("short output must panic instead of writing past it")
		}
	}()
	var out [sha1.Size - 1]byte
	sha1.Algorithm.Hash(out[:], nil)
}

func TestRegistryNone(t *testing.T) {
	reg := digest.NewRegistry()
	reg.MustRegister(&sha1.Algorithm)
	if reg.Lookup(int(digest.SHA256)) != &digest.NoneAlgorithm {
		t.Errorf("unknown digest must resolve to NONE")
	}
	if reg.Lookup(int(digest.SHA1)) != &sha1.Algorithm {
		t.Errorf("registered digest must resolve")
	}
	if digest.SHA3_256.String() != "SHA3-256" || digest.ID(200).String() != "DIGEST(200)" {
		t.Errorf("unexpected ID names")
	}
}

func TestSum(t *testing.T) {
	var s digest.Sum
	s.SetValue([]byte{1, 2, 3})
	if s.Len() != 3 || s.Cap() != 64 {
		t.Errorf("unexpected sum size")
	}
	var other digest.Sum
	other.SetZero(5)
	other.SetValue([]byte{1, 2, 3})
	if s != other {
		t.Errorf("sums with equal values must compare equal")
	}
	s.Wipe()
	if s.Len() != 0 {
		t.Errorf("wipe must reset size")
	}
}
