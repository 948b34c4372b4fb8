// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package registry

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hrissan/tlscrypto/tlserrors"
)

type testAlgorithm struct {
	id          int
	name        string
	contextSize int
}

func (a *testAlgorithm) RegistryID() int          { return a.id }
func (a *testAlgorithm) RegistryName() string     { return a.name }
func (a *testAlgorithm) RegistryContextSize() int { return a.contextSize }

var testNone = &testAlgorithm{name: "NONE"}

func newTestRegistry() *Registry[*testAlgorithm] {
	return New[*testAlgorithm]("test", 16, 100, testNone)
}

func TestRegisterLookup(t *testing.T) {
	r := newTestRegistry()
	a := &testAlgorithm{id: 5, name: "A", contextSize: 100}
	if err := r.Register(a); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if r.Lookup(5) != a {
		t.Errorf("lookup must return registered descriptor")
	}
	b := &testAlgorithm{id: 5, name: "B", contextSize: 1}
	if err := r.Register(b); !errors.Is(err, tlserrors.ErrRegistryDuplicateID) {
		t.Errorf("duplicate registration must fail, got %v", err)
	}
	if r.Lookup(5) != a {
		t.Errorf("original descriptor must stay resolvable after duplicate registration")
	}
	if r.Len() != 1 {
		t.Errorf("unexpected count %d", r.Len())
	}
}

func TestRegisterRejects(t *testing.T) {
	r := newTestRegistry()
	cases := []struct {
		alg *testAlgorithm
		err error
	}{
		{&testAlgorithm{id: 0, name: "zero"}, tlserrors.ErrRegistryReservedID},
		{&testAlgorithm{id: 16, name: "range"}, tlserrors.ErrRegistryIDOutOfRange},
		{&testAlgorithm{id: -1, name: "negative"}, tlserrors.ErrRegistryIDOutOfRange},
		{&testAlgorithm{id: 3, name: "large", contextSize: 101}, tlserrors.ErrRegistryContextTooLarge},
	}
	for _, c := range cases {
		if err := r.Register(c.alg); !errors.Is(err, c.err) {
			t.Errorf("%s: expected %v, got %v", c.alg.name, c.err, err)
		}
	}
	if r.Len() != 0 || r.Contains(3) {
		t.Errorf("rejected descriptors must not be stored")
	}
}

func TestLookupSentinel(t *testing.T) {
	r := newTestRegistry()
	r.MustRegister(&testAlgorithm{id: 1, name: "one"})
	for _, id := range []int{-100, -1, 0, 2, 15, 16, 1 << 20} {
		if got := r.Lookup(id); got != testNone {
			t.Errorf("lookup(%d) must return sentinel, got %v", id, got.name)
		}
	}
}

func TestEnumerateAscending(t *testing.T) {
	r := newTestRegistry()
	for _, id := range []int{9, 2, 14, 7} {
		r.MustRegister(&testAlgorithm{id: id, name: "x"})
	}
	var got []int
	r.Enumerate(func(a *testAlgorithm) {
		got = append(got, a.id)
	})
	if diff := cmp.Diff([]int{2, 7, 9, 14}, got); diff != "" {
		t.Errorf("enumeration order mismatch (-want +got):\n%s", diff)
	}
}

func TestFreeze(t *testing.T) {
	r := newTestRegistry()
	r.MustRegister(&testAlgorithm{id: 1, name: "one"})
	r.Freeze()
	if err := r.Register(&testAlgorithm{id: 2, name: "two"}); !errors.Is(err, tlserrors.ErrRegistryFrozen) {
		t.Errorf("registration after freeze must fail, got %v", err)
	}
	if !r.Frozen() || r.Lookup(1).name != "one" {
		t.Errorf("frozen registry must stay readable")
	}
}

func TestMustRegisterPanics(t *testing.T) {
	r := newTestRegistry()
	r.MustRegister(&testAlgorithm{id: 1, name: "one"})
	defer func() {
		if recover() == nil {
			t.Errorf("MustRegister must panic on duplicate")
		}
	}()
	r.MustRegister(&testAlgorithm{id: 1, name: "again"})
}
