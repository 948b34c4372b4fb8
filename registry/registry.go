// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package registry

import (
	"github.com/hrissan/tlscrypto/tlserrors"
)

// Descriptor is implemented by pointers to immutable algorithm descriptors
type Descriptor interface {
	RegistryID() int
	RegistryName() string
	RegistryContextSize() int
}

// Registry is a fixed-capacity table indexed by algorithm ID.
// Slot 0 always holds the sentinel. It is populated during initialization,
// then frozen, after that concurrent readers need no synchronization.
type Registry[D Descriptor] struct {
	family     string
	maxContext int
	sentinel   D
	slots      []D
	occupied   []bool
	count      int
	frozen     bool
}

func New[D Descriptor](family string, capacity int, maxContext int, sentinel D) *Registry[D] {
	if capacity < 1 {
		panic("registry capacity must be at least 1")
	}
	if sentinel.RegistryID() != 0 {
		panic("registry sentinel must have ID 0")
	}
	r := &Registry[D]{
		family:     family,
		maxContext: maxContext,
		sentinel:   sentinel,
		slots:      make([]D, capacity),
		occupied:   make([]bool, capacity),
	}
	r.slots[0] = sentinel
	return r
}

// Register fails for the sentinel ID, out of range IDs, occupied IDs,
// oversized contexts and after Freeze. Existing descriptor is never replaced.
func (r *Registry[D]) Register(d D) error {
	if r.frozen {
		return tlserrors.ErrRegistryFrozen
	}
	id := d.RegistryID()
	if id == 0 {
		return tlserrors.ErrRegistryReservedID
	}
	if id < 0 || id >= len(r.slots) {
		return tlserrors.ErrRegistryIDOutOfRange
	}
	if d.RegistryContextSize() > r.maxContext {
		return tlserrors.ErrRegistryContextTooLarge
	}
	if r.occupied[id] {
		return tlserrors.ErrRegistryDuplicateID
	}
	r.slots[id] = d
	r.occupied[id] = true
	r.count++
	return nil
}

func (r *Registry[D]) MustRegister(d D) {
	if err := r.Register(d); err != nil {
		panic(r.family + " " + d.RegistryName() + ": " + err.Error())
	}
}

// Lookup returns sentinel for unknown, reserved and out of range IDs
func (r *Registry[D]) Lookup(id int) D {
	if id <= 0 || id >= len(r.slots) || !r.occupied[id] {
		return r.sentinel
	}
	return r.slots[id]
}

func (r *Registry[D]) Contains(id int) bool {
	return id > 0 && id < len(r.slots) && r.occupied[id]
}

// Enumerate visits registered descriptors in ascending ID order, sentinel is skipped
func (r *Registry[D]) Enumerate(visit func(d D)) {
	for id := 1; id < len(r.slots); id++ {
		if r.occupied[id] {
			visit(r.slots[id])
		}
	}
}

func (r *Registry[D]) Freeze()             { r.frozen = true }
func (r *Registry[D]) Frozen() bool        { return r.frozen }
func (r *Registry[D]) Len() int            { return r.count }
func (r *Registry[D]) Family() string      { return r.family }
func (r *Registry[D]) Capacity() int       { return len(r.slots) }
func (r *Registry[D]) MaxContextSize() int { return r.maxContext }
func (r *Registry[D]) Sentinel() D         { return r.sentinel }
