// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package tlsrand

import (
	"crypto/rand"
	"io"
)

// Explicit CBC IVs and exchange secrets are drawn from Rand,
// tests replace it with a deterministic stream.
type Rand interface {
	Read(data []byte)
}

type readerRand struct {
	r io.Reader
}

func (c *readerRand) Read(data []byte) {
	if _, err := io.ReadFull(c.r, data); err != nil {
		panic("tlsrand: failed to read random bytes: " + err.Error())
	}
}

// fixedRand produces a counter stream, so consecutive reads differ
type fixedRand struct {
	counter byte
}

func (c *fixedRand) Read(data []byte) {
	for i := range data {
		data[i] = c.counter
		c.counter++
	}
}

func CryptoRand() Rand {
	return &readerRand{r: rand.Reader}
}

// FromReader is for recorded or externally seeded streams
func FromReader(r io.Reader) Rand {
	return &readerRand{r: r}
}

// FixedRand stream starts from 1, so the first 16 bytes are 01..10
func FixedRand() Rand {
	return &fixedRand{counter: 1}
}
