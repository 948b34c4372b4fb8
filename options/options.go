// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package options

import (
	"fmt"

	"github.com/hrissan/tlscrypto/backend"
	"github.com/hrissan/tlscrypto/exchange"
	"github.com/hrissan/tlscrypto/record"
	"github.com/hrissan/tlscrypto/stats"
	"github.com/hrissan/tlscrypto/tlsrand"
)

const MinPlaintextLength = 64

type Options struct {
	Backend string // backend.NameGo or backend.NameNative
	Rnd     tlsrand.Rand
	Stats   stats.Stats

	// records with payload above MaxPlaintextLength plus expansion are rejected before decryption
	MaxPlaintextLength int
	// MD4, MD5, SHA-1, MD5+SHA1 and TLS 1.0 PRF, also required for CBC suites with SHA-1 MAC
	LegacyDigests bool
	// key exchange groups to register, nil means all
	Groups []exchange.GroupID
}

func DefaultOptions(stats stats.Stats) *Options {
	return &Options{
		Backend:            backend.NameGo,
		Rnd:                tlsrand.CryptoRand(),
		Stats:              stats,
		MaxPlaintextLength: record.MaxPlaintextLength,
		LegacyDigests:      true,
	}
}

func (opts *Options) Validate() error {
	if _, err := backend.Lookup(opts.Backend); err != nil {
		return fmt.Errorf("backend %q (known %v): %w", opts.Backend, backend.Names(), err)
	}
	if opts.Rnd == nil {
		return fmt.Errorf("Rnd must be set")
	}
	if opts.Stats == nil {
		return fmt.Errorf("Stats must be set, use stats.NopStats() to discard events")
	}
	if opts.MaxPlaintextLength < MinPlaintextLength || opts.MaxPlaintextLength > record.MaxPlaintextLength {
		return fmt.Errorf("MaxPlaintextLength (%d) should be in range %d..%d", opts.MaxPlaintextLength, MinPlaintextLength, record.MaxPlaintextLength)
	}
	seen := map[exchange.GroupID]bool{}
	for _, id := range opts.Groups {
		if !isKnownGroup(id) {
			return fmt.Errorf("key exchange group %v is not supported", id)
		}
		if seen[id] {
			return fmt.Errorf("key exchange group %v is listed twice", id)
		}
		seen[id] = true
	}
	return nil
}

func isKnownGroup(id exchange.GroupID) bool {
	for _, g := range exchange.Groups() {
		if g.ID == id {
			return true
		}
	}
	return false
}
