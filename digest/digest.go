// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package digest

import (
	"github.com/hrissan/tlscrypto/constants"
	"github.com/hrissan/tlscrypto/registry"
)

// State is a concrete fixed-size algorithm state.
// Final writes exactly Size bytes, after Final state must be initialized again.
type State interface {
	Init()
	Update(data []byte)
	Final(out []byte)
}

type Algorithm struct {
	ID          ID
	Name        string
	Description string
	Size        int // msg_size
	BlockSize   int
	ContextSize int

	New func() State
	// one-shot, must not allocate
	Sum func(out []byte, data []byte)
}

func (a *Algorithm) RegistryID() int          { return int(a.ID) }
func (a *Algorithm) RegistryName() string     { return a.Name }
func (a *Algorithm) RegistryContextSize() int { return a.ContextSize }

// Hash writes exactly Size bytes into out
func (a *Algorithm) Hash(out []byte, data []byte) {
	if len(out) < a.Size {
		panic("digest output shorter than digest size")
	}
	a.Sum(out[:a.Size], data)
}

// HashSum is Hash into fixed storage
func (a *Algorithm) HashSum(data []byte) (result Sum) {
	result.SetZero(a.Size)
	a.Sum(result.GetValue(), data)
	return
}

func (a *Algorithm) IsNone() bool { return a.ID == None }

type Registry = registry.Registry[*Algorithm]

func NewRegistry() *Registry {
	return registry.New[*Algorithm]("digest", constants.DigestRegistryCapacity, constants.MaxDigestContext, &NoneAlgorithm)
}

type noneState struct{}

func (noneState) Init()         {}
func (noneState) Update([]byte) {}
func (noneState) Final([]byte)  {}

var NoneAlgorithm = Algorithm{
	ID:          None,
	Name:        "NONE",
	Description: "no digest",
	New:         func() State { return noneState{} },
	Sum:         func([]byte, []byte) {},
}
