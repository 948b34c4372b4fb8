// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package algorithms builds the registries once, at startup. After New
// returns, Tables are read-only and shared by all connections.
package algorithms

import (
	"fmt"

	"github.com/hrissan/tlscrypto/backend"
	"github.com/hrissan/tlscrypto/cipher"
	"github.com/hrissan/tlscrypto/ciphersuite"
	"github.com/hrissan/tlscrypto/digest"
	"github.com/hrissan/tlscrypto/digest/md4"
	"github.com/hrissan/tlscrypto/digest/md5"
	"github.com/hrissan/tlscrypto/digest/md5sha1"
	"github.com/hrissan/tlscrypto/digest/sha1"
	"github.com/hrissan/tlscrypto/digest/sha2"
	"github.com/hrissan/tlscrypto/digest/sha3"
	"github.com/hrissan/tlscrypto/exchange"
	"github.com/hrissan/tlscrypto/hkdf"
	"github.com/hrissan/tlscrypto/hmac"
	"github.com/hrissan/tlscrypto/options"
	"github.com/hrissan/tlscrypto/prf"
	"github.com/hrissan/tlscrypto/registry"
	"github.com/hrissan/tlscrypto/rfc5246"
	"github.com/hrissan/tlscrypto/rfc8446"
	"github.com/hrissan/tlscrypto/stats"
	"github.com/hrissan/tlscrypto/tlserrors"
)

type Tables struct {
	opts     options.Options
	provider backend.Provider
	features backend.Features

	Digests   *digest.Registry
	HMACs     *hmac.Registry
	PRFs      *prf.Registry
	HKDFs     *hkdf.Registry
	Ciphers12 *cipher.Registry
	Ciphers13 *cipher.Registry
	Groups    *exchange.Registry
}

func New(opts *options.Options) (*Tables, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	provider, err := backend.Lookup(opts.Backend)
	if err != nil {
		return nil, err // checked by Validate
	}
	t := &Tables{
		opts:      *opts,
		provider:  provider,
		features:  backend.DetectFeatures(),
		Digests:   digest.NewRegistry(),
		HMACs:     hmac.NewRegistry(),
		PRFs:      prf.NewRegistry(),
		HKDFs:     hkdf.NewRegistry(),
		Ciphers12: cipher.NewRegistry(cipher.DialectRFC5246),
		Ciphers13: cipher.NewRegistry(cipher.DialectRFC8446),
		Groups:    exchange.NewRegistry(),
	}
	opts.Stats.BackendSelected(provider.Name(), t.features.String())

	digests := []*digest.Algorithm{
		&sha2.Algorithm224, &sha2.Algorithm256, &sha2.Algorithm384, &sha2.Algorithm512,
		&sha3.Algorithm224, &sha3.Algorithm256, &sha3.Algorithm384, &sha3.Algorithm512,
	}
	if opts.LegacyDigests {
		digests = append(digests, &md4.Algorithm, &md5.Algorithm, &sha1.Algorithm, &md5sha1.Algorithm)
	}
	if err := register(opts.Stats, t.Digests, digests...); err != nil {
		return nil, err
	}

	var hmacs []*hmac.Algorithm
	t.Digests.Enumerate(func(d *digest.Algorithm) {
		hmacs = append(hmacs, hmac.New(d))
	})
	if err := register(opts.Stats, t.HMACs, hmacs...); err != nil {
		return nil, err
	}

	prfs := []*prf.Algorithm{&prf.NullAlgorithm}
	hkdfs := []*hkdf.Algorithm{}
	for _, id := range []digest.ID{digest.SHA256, digest.SHA384, digest.SHA512} {
		h := t.HMACs.Lookup(int(id))
		prfs = append(prfs, prf.NewPHash(h))
		hkdfs = append(hkdfs, hkdf.New(h))
	}
	if opts.LegacyDigests {
		prfs = append(prfs, prf.NewTLS10(t.HMACs.Lookup(int(digest.MD5)), t.HMACs.Lookup(int(digest.SHA1))))
	}
	if err := register(opts.Stats, t.PRFs, prfs...); err != nil {
		return nil, err
	}
	if err := register(opts.Stats, t.HKDFs, hkdfs...); err != nil {
		return nil, err
	}

	if err := register(opts.Stats, t.Ciphers12, rfc5246.Algorithms()...); err != nil {
		return nil, err
	}
	if err := register(opts.Stats, t.Ciphers13, rfc8446.Algorithms()...); err != nil {
		return nil, err
	}

	var groups []*exchange.Group
	for _, g := range exchange.Groups() {
		if opts.Groups == nil || containsGroup(opts.Groups, g.ID) {
			groups = append(groups, g)
		}
	}
	if err := register(opts.Stats, t.Groups, groups...); err != nil {
		return nil, err
	}
	return t, nil
}

func containsGroup(ids []exchange.GroupID, id exchange.GroupID) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}

// register fills and freezes reg, the first error is fatal for the whole Tables
func register[D registry.Descriptor](st stats.Stats, reg *registry.Registry[D], descriptors ...D) error {
	for _, d := range descriptors {
		if err := reg.Register(d); err != nil {
			st.RegistrationFailed(reg.Family(), d.RegistryID(), d.RegistryName(), err)
			return fmt.Errorf("registering %s %s: %w", reg.Family(), d.RegistryName(), err)
		}
		st.AlgorithmRegistered(reg.Family(), d.RegistryID(), d.RegistryName())
	}
	reg.Freeze()
	st.RegistryFrozen(reg.Family(), reg.Len())
	return nil
}

func (t *Tables) Options() options.Options   { return t.opts }
func (t *Tables) Provider() backend.Provider { return t.provider }
func (t *Tables) Features() backend.Features { return t.features }

// Env is passed to every cipher made by these tables
func (t *Tables) Env() cipher.Env {
	return cipher.Env{
		Provider:           t.provider,
		Stats:              t.opts.Stats,
		Rand:               t.opts.Rnd,
		MaxPlaintextLength: t.opts.MaxPlaintextLength,
	}
}

func (t *Tables) CipherRegistry(dialect cipher.Dialect) (*cipher.Registry, error) {
	switch dialect {
	case cipher.DialectRFC5246:
		return t.Ciphers12, nil
	case cipher.DialectRFC8446:
		return t.Ciphers13, nil
	}
	return nil, tlserrors.ErrUnknownAlgorithm
}

// NewCipher makes unkeyed cipher with default MAC
func (t *Tables) NewCipher(dialect cipher.Dialect, id cipher.ID) (cipher.Cipher, error) {
	reg, err := t.CipherRegistry(dialect)
	if err != nil {
		return nil, err
	}
	alg := reg.Lookup(int(id))
	if alg.IsNone() {
		return nil, tlserrors.ErrUnknownAlgorithm
	}
	return alg.NewCipher(t.Env()), nil
}

// Suite is cipher suite with all its algorithms resolved
type Suite struct {
	*ciphersuite.Suite
	Cipher     *cipher.Algorithm
	MAC        *hmac.Algorithm // nil for AEAD
	PRF        *prf.Algorithm  // none for TLS 1.3
	HKDF       *hkdf.Algorithm // none for TLS 1.2
	Transcript *digest.Algorithm
}

// MACSize is MAC key size for keys.ExpandKeyBlock12
func (s *Suite) MACSize() int {
	if s.MAC == nil {
		return 0
	}
	return s.MAC.Size
}

// ResolveSuite returns tlserrors.ErrUnsupportedSuite for unknown suites and
// tlserrors.ErrUnknownAlgorithm if any of suite algorithms is not registered.
func (t *Tables) ResolveSuite(id ciphersuite.ID) (Suite, error) {
	cs, err := ciphersuite.Lookup(id)
	if err != nil {
		return Suite{}, err
	}
	reg, err := t.CipherRegistry(cs.Dialect)
	if err != nil {
		return Suite{}, err
	}
	s := Suite{
		Suite:      cs,
		Cipher:     reg.Lookup(int(cs.Cipher)),
		PRF:        t.PRFs.Lookup(int(cs.PRF)),
		HKDF:       t.HKDFs.Lookup(int(cs.HKDF)),
		Transcript: t.Digests.Lookup(int(cs.Transcript)),
	}
	if s.Cipher.IsNone() || s.Transcript.IsNone() {
		return Suite{}, tlserrors.ErrUnknownAlgorithm
	}
	if cs.Dialect == cipher.DialectRFC5246 && s.PRF.IsNone() {
		return Suite{}, tlserrors.ErrUnknownAlgorithm
	}
	if cs.Dialect == cipher.DialectRFC8446 && s.HKDF.IsNone() {
		return Suite{}, tlserrors.ErrUnknownAlgorithm
	}
	if cs.MAC != digest.None {
		s.MAC = t.HMACs.Lookup(int(cs.MAC))
		if s.MAC.IsNone() {
			return Suite{}, tlserrors.ErrUnknownAlgorithm
		}
	}
	return s, nil
}

// NewSuiteCipher makes unkeyed cipher bound to MAC of the suite
func (t *Tables) NewSuiteCipher(id ciphersuite.ID) (cipher.Cipher, Suite, error) {
	s, err := t.ResolveSuite(id)
	if err != nil {
		return nil, Suite{}, err
	}
	env := t.Env()
	env.MAC = s.MAC
	return s.Cipher.NewCipher(env), s, nil
}

// SupportedSuites are suites of the dialect in our preference order,
// which can be resolved with registered algorithms
func (t *Tables) SupportedSuites(dialect cipher.Dialect) []ciphersuite.ID {
	var result []ciphersuite.ID
	for _, id := range ciphersuite.Preferred(dialect, t.features) {
		if _, err := t.ResolveSuite(id); err == nil {
			result = append(result, id)
		}
	}
	return result
}
