// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package stats

import (
	"sync/atomic"
)

// Counters counts events, optionally forwarding them to Next
type Counters struct {
	Next Stats

	Registered         atomic.Int64
	RegistrationErrors atomic.Int64
	Frozen             atomic.Int64
	Rejected           atomic.Int64
	Exhausted          atomic.Int64
}

var _ Stats = (*Counters)(nil)

func (c *Counters) AlgorithmRegistered(family string, id int, name string) {
	c.Registered.Add(1)
	if c.Next != nil {
		c.Next.AlgorithmRegistered(family, id, name)
	}
}

func (c *Counters) RegistrationFailed(family string, id int, name string, err error) {
	c.RegistrationErrors.Add(1)
	if c.Next != nil {
		c.Next.RegistrationFailed(family, id, name, err)
	}
}

func (c *Counters) RegistryFrozen(family string, count int) {
	c.Frozen.Add(1)
	if c.Next != nil {
		c.Next.RegistryFrozen(family, count)
	}
}

func (c *Counters) BackendSelected(name string, features string) {
	if c.Next != nil {
		c.Next.BackendSelected(name, features)
	}
}

func (c *Counters) RecordRejected(cipher string, seq uint64, err error) {
	c.Rejected.Add(1)
	if c.Next != nil {
		c.Next.RecordRejected(cipher, seq, err)
	}
}

func (c *Counters) SequenceExhausted(cipher string) {
	c.Exhausted.Add(1)
	if c.Next != nil {
		c.Next.SequenceExhausted(cipher)
	}
}
