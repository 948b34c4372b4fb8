// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package stats

import (
	"github.com/rs/zerolog"
)

// StatsZerolog reports events as structured log lines
type StatsZerolog struct {
	logger zerolog.Logger
}

func NewStatsZerolog(logger zerolog.Logger) *StatsZerolog {
	return &StatsZerolog{logger: logger.With().Str("component", "tlscrypto").Logger()}
}

func (s *StatsZerolog) AlgorithmRegistered(family string, id int, name string) {
	s.logger.Debug().Str("family", family).Int("id", id).Str("name", name).Msg("algorithm registered")
}

func (s *StatsZerolog) RegistrationFailed(family string, id int, name string, err error) {
	s.logger.Error().Str("family", family).Int("id", id).Str("name", name).Err(err).Msg("algorithm registration failed")
}

func (s *StatsZerolog) RegistryFrozen(family string, count int) {
	s.logger.Debug().Str("family", family).Int("count", count).Msg("registry frozen")
}

func (s *StatsZerolog) BackendSelected(name string, features string) {
	s.logger.Info().Str("backend", name).Str("features", features).Msg("backend selected")
}

func (s *StatsZerolog) RecordRejected(cipher string, seq uint64, err error) {
	s.logger.Warn().Str("cipher", cipher).Uint64("seq", seq).Err(err).Msg("record rejected")
}

func (s *StatsZerolog) SequenceExhausted(cipher string) {
	s.logger.Error().Str("cipher", cipher).Msg("sequence number exhausted")
}
