// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Command cryptoinfo prints registered algorithms, CPU features and,
// on Linux, kernel crypto API drivers for primitives used by record adapters.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/hrissan/tlscrypto/algorithms"
	"github.com/hrissan/tlscrypto/backend"
	"github.com/hrissan/tlscrypto/backend/kernel"
	"github.com/hrissan/tlscrypto/cipher"
	"github.com/hrissan/tlscrypto/ciphersuite"
	"github.com/hrissan/tlscrypto/digest"
	"github.com/hrissan/tlscrypto/exchange"
	"github.com/hrissan/tlscrypto/hkdf"
	"github.com/hrissan/tlscrypto/hmac"
	"github.com/hrissan/tlscrypto/options"
	"github.com/hrissan/tlscrypto/prf"
	"github.com/hrissan/tlscrypto/stats"
	"github.com/rs/zerolog"
)

func main() {
	backendName := flag.String("backend", backend.NameGo, "record primitive backend, go or native")
	probeKernel := flag.Bool("kernel", false, "list kernel crypto API drivers (Linux only)")
	legacy := flag.Bool("legacy", true, "register MD4, MD5, SHA-1 and TLS 1.0 PRF")
	verbose := flag.Bool("verbose", false, "log every registration")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()
	if !*verbose {
		log = log.Level(zerolog.InfoLevel)
	}

	opts := options.DefaultOptions(stats.NewStatsZerolog(log))
	opts.Backend = *backendName
	opts.LegacyDigests = *legacy
	tables, err := algorithms.New(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build algorithm tables")
	}
	printTables(log, tables)

	if *probeKernel {
		if err := printKernel(log); err != nil {
			log.Fatal().Err(err).Msg("kernel crypto API probe failed")
		}
	}
}

func printTables(log zerolog.Logger, tables *algorithms.Tables) {
	tables.Digests.Enumerate(func(d *digest.Algorithm) {
		log.Info().Str("family", tables.Digests.Family()).Int("id", int(d.ID)).Str("name", d.Name).
			Int("size", d.Size).Int("block", d.BlockSize).Int("context", d.ContextSize).Msg(d.Description)
	})
	tables.HMACs.Enumerate(func(h *hmac.Algorithm) {
		log.Info().Str("family", tables.HMACs.Family()).Int("id", int(h.ID)).Str("name", h.Name).
			Int("context", h.ContextSize).Msg(h.Description)
	})
	tables.PRFs.Enumerate(func(p *prf.Algorithm) {
		log.Info().Str("family", tables.PRFs.Family()).Int("id", int(p.ID)).Str("name", p.Name).
			Bool("legacy", p.Legacy != nil).Msg(p.Description)
	})
	tables.HKDFs.Enumerate(func(h *hkdf.Algorithm) {
		log.Info().Str("family", tables.HKDFs.Family()).Int("id", int(h.ID)).Str("name", h.Name).Msg(h.Description)
	})
	for _, reg := range []*cipher.Registry{tables.Ciphers12, tables.Ciphers13} {
		reg.Enumerate(func(c *cipher.Algorithm) {
			log.Info().Str("family", reg.Family()).Hex("id", []byte{byte(c.ID >> 8), byte(c.ID)}).Str("name", c.Name).
				Stringer("identity", c.ID).Int("key", c.KeySize).Int("iv", c.IVSize).Int("context", c.ContextSize).
				Msg(c.Description)
		})
	}
	tables.Groups.Enumerate(func(g *exchange.Group) {
		log.Info().Str("family", tables.Groups.Family()).Int("id", int(g.ID)).Str("name", g.Name).
			Int("public", g.PublicSize).Int("shared", g.SharedSize).Msg(g.Description)
	})
	log.Info().Hex("body", exchange.AppendSupportedGroups(nil, tables.Groups)).Msg("supported_groups extension")
	for _, dialect := range []cipher.Dialect{cipher.DialectRFC8446, cipher.DialectRFC5246} {
		for i, id := range tables.SupportedSuites(dialect) {
			s := ciphersuite.GetSuite(id)
			log.Info().Stringer("dialect", dialect).Int("preference", i).Str("suite", s.Name).
				Stringer("kx", s.KeyExchange).Uint64("limit", s.ProtectionLimit).Msg("cipher suite")
		}
	}
}

func printKernel(log zerolog.Logger) error {
	conn, err := kernel.Dial()
	if err != nil {
		return err
	}
	defer conn.Close()
	algs, err := conn.Algorithms()
	if err != nil {
		return err
	}
	log.Info().Int("count", len(algs)).Msg("kernel crypto API algorithms")
	for _, s := range kernel.Supports(algs, kernel.RecordPrimitives) {
		if s.Driver == "" {
			log.Warn().Str("name", s.Name).Msg("no kernel driver")
			continue
		}
		log.Info().Str("name", s.Name).Str("driver", s.Driver).Int("priority", s.Priority).Msg("kernel driver")
	}
	return nil
}
