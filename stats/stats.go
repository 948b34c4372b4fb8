// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package stats

import (
	"log"
	"sync/atomic"
)

type Stats interface {
	// registry layer
	// family: digest, hmac, prf, hkdf, cipher/rfc5246, cipher/rfc8446, exchange
	AlgorithmRegistered(family string, id int, name string)
	RegistrationFailed(family string, id int, name string, err error)
	RegistryFrozen(family string, count int)

	// backend layer
	BackendSelected(name string, features string)

	// record layer
	// err is always static, it never tells which check failed
	RecordRejected(cipher string, seq uint64, err error)
	SequenceExhausted(cipher string)
}

type StatsLog struct {
	level              atomic.Int32
	printRegistrations atomic.Bool
	printRecords       atomic.Bool
}

func NewStatsLog() *StatsLog {
	return &StatsLog{}
}

func NewStatsLogVerbose() *StatsLog {
	s := &StatsLog{}
	s.level.Store(1)
	s.printRegistrations.Store(true)
	s.printRecords.Store(true)
	return s
}

func (s *StatsLog) SetLevel(level int32) { s.level.Store(level) }

func (s *StatsLog) AlgorithmRegistered(family string, id int, name string) {
	if !s.printRegistrations.Load() {
		return
	}
	log.Printf("tlscrypto: registered %s id=%d name=%s", family, id, name)
}

func (s *StatsLog) RegistrationFailed(family string, id int, name string, err error) {
	if s.level.Load() < 0 {
		return
	}
	log.Printf("tlscrypto: failed to register %s id=%d name=%s: %v", family, id, name, err)
}

func (s *StatsLog) RegistryFrozen(family string, count int) {
	if !s.printRegistrations.Load() {
		return
	}
	log.Printf("tlscrypto: registry %s frozen with %d algorithms", family, count)
}

func (s *StatsLog) BackendSelected(name string, features string) {
	if s.level.Load() < 1 {
		return
	}
	log.Printf("tlscrypto: backend %s selected, cpu features: %s", name, features)
}

func (s *StatsLog) RecordRejected(cipher string, seq uint64, err error) {
	if !s.printRecords.Load() {
		return
	}
	log.Printf("tlscrypto: %s record seq=%d rejected: %v", cipher, seq, err)
}

func (s *StatsLog) SequenceExhausted(cipher string) {
	if s.level.Load() < 0 {
		return
	}
	log.Printf("tlscrypto: %s sequence number exhausted, keys must be replaced", cipher)
}

type nopStats struct{}

func (nopStats) AlgorithmRegistered(string, int, string)       {}
func (nopStats) RegistrationFailed(string, int, string, error) {}
func (nopStats) RegistryFrozen(string, int)                    {}
func (nopStats) BackendSelected(string, string)                {}
func (nopStats) RecordRejected(string, uint64, error)          {}
func (nopStats) SequenceExhausted(string)                      {}

func NopStats() Stats { return nopStats{} }
