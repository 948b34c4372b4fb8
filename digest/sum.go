// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package digest

import (
	"github.com/hrissan/tlscrypto/constants"
)

// We want fixed-size storage for hashes, as we want to do as few allocations as possible
type Sum struct {
	data [constants.MaxHashLength]byte
	size byte
}

func (h *Sum) GetValue() []byte {
	return h.data[0:h.size]
}

func (h *Sum) Len() int {
	return int(h.size) // widening
}

func (h *Sum) Cap() int {
	return len(h.data)
}

func (h *Sum) SetZero(size int) {
	if size > len(h.data) {
		panic("zero hash length exceeds hash storage size")
	}
	*h = Sum{size: byte(size)} // safe due to check above
}

func (h *Sum) SetValue(data []byte) {
	if len(data) > len(h.data) {
		panic("hash length exceeds hash storage size")
	}
	// clear data, so objects are equal by built-in operator
	*h = Sum{size: byte(len(data))} // safe due to check above
	copy(h.data[:], data)
}

// Wipe clears secret material kept in the storage
func (h *Sum) Wipe() {
	clear(h.data[:])
	h.size = 0
}
