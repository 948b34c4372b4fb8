// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package exchange is the registry of (EC)DHE groups used by TLS key shares.
// Group arithmetic comes from crypto/ecdh, x/crypto/curve25519 and circl x448.
package exchange

import (
	"fmt"
	"unsafe"

	"github.com/hrissan/tlscrypto/constants"
	"github.com/hrissan/tlscrypto/registry"
	"github.com/hrissan/tlscrypto/tlsrand"
)

// GroupID is NamedGroup from [rfc8446:4.2.7]
type GroupID uint16

const (
	GroupNone      GroupID = 0
	GroupSecp256r1 GroupID = 23
	GroupSecp384r1 GroupID = 24
	GroupSecp521r1 GroupID = 25
	GroupX25519    GroupID = 29
	GroupX448      GroupID = 30
)

func (g GroupID) String() string {
	switch g {
	case GroupNone:
		return "none"
	case GroupSecp256r1:
		return "secp256r1"
	case GroupSecp384r1:
		return "secp384r1"
	case GroupSecp521r1:
		return "secp521r1"
	case GroupX25519:
		return "x25519"
	case GroupX448:
		return "x448"
	}
	return fmt.Sprintf("group(%d)", uint16(g))
}

type impl interface {
	generateSecret(rnd tlsrand.Rand, secret []byte)
	derivePublic(public []byte, secret []byte) error
	deriveShared(shared []byte, peerPublic []byte, secret []byte) error
}

type Group struct {
	ID          GroupID
	Name        string
	Description string
	PublicSize  int
	SecretSize  int
	SharedSize  int
	ContextSize int

	impl impl
}

func (g *Group) RegistryID() int          { return int(g.ID) }
func (g *Group) RegistryName() string     { return g.Name }
func (g *Group) RegistryContextSize() int { return g.ContextSize }
func (g *Group) IsNone() bool             { return g.ID == GroupNone }

// GenerateSecret fills secret with a valid private scalar, len(secret) must be SecretSize
func (g *Group) GenerateSecret(rnd tlsrand.Rand, secret []byte) {
	g.checkSize(secret, g.SecretSize)
	g.impl.generateSecret(rnd, secret)
}

// DerivePublic writes public key (uncompressed point for NIST curves)
func (g *Group) DerivePublic(public []byte, secret []byte) error {
	g.checkSize(public, g.PublicSize)
	g.checkSize(secret, g.SecretSize)
	return g.impl.derivePublic(public, secret)
}

// DeriveShared returns tlserrors.ErrExchangeInvalidPublic for malformed or low order peer keys
func (g *Group) DeriveShared(shared []byte, peerPublic []byte, secret []byte) error {
	g.checkSize(shared, g.SharedSize)
	g.checkSize(secret, g.SecretSize)
	return g.impl.deriveShared(shared, peerPublic, secret)
}

func (g *Group) checkSize(data []byte, size int) {
	if len(data) != size {
		panic("exchange buffer size differs from group size")
	}
}

func newGroup(id GroupID, description string, publicSize, secretSize, sharedSize int, impl impl) *Group {
	return &Group{
		ID:          id,
		Name:        id.String(),
		Description: description,
		PublicSize:  publicSize,
		SecretSize:  secretSize,
		SharedSize:  sharedSize,
		ContextSize: int(unsafe.Sizeof(KeyShare{})),
		impl:        impl,
	}
}

var NoneGroup = Group{ID: GroupNone, Name: "none", Description: "sentinel", impl: noneImpl{}}

var Secp256r1 = newGroup(GroupSecp256r1, "NIST P-256 ECDHE", 65, 32, 32, nistImpl{curve: 256})
var Secp384r1 = newGroup(GroupSecp384r1, "NIST P-384 ECDHE", 97, 48, 48, nistImpl{curve: 384})
var Secp521r1 = newGroup(GroupSecp521r1, "NIST P-521 ECDHE", 133, 66, 66, nistImpl{curve: 521})
var X25519 = newGroup(GroupX25519, "Curve25519 ECDHE [rfc7748]", 32, 32, 32, x25519Impl{})
var X448 = newGroup(GroupX448, "Curve448 ECDHE [rfc7748]", 56, 56, 56, x448Impl{})

// Groups are all groups we can register, in preference order
func Groups() []*Group {
	return []*Group{X25519, Secp256r1, Secp384r1, X448, Secp521r1}
}

type Registry = registry.Registry[*Group]

func NewRegistry() *Registry {
	return registry.New[*Group]("exchange", constants.ExchangeRegistryCapacity, constants.MaxExchangeContext, &NoneGroup)
}

// KeyShare is fixed storage for one ephemeral key pair
type KeyShare struct {
	group  *Group
	secret [constants.MaxExchangeSecretSize]byte
	public [constants.MaxExchangePublicSize]byte
}

var _ [constants.MaxExchangeContext - unsafe.Sizeof(KeyShare{})]struct{}

// Generate makes new key pair, previous secret is wiped
func (k *KeyShare) Generate(group *Group, rnd tlsrand.Rand) error {
	k.Wipe()
	k.group = group
	secret := k.secret[:group.SecretSize]
	group.GenerateSecret(rnd, secret)
	return group.DerivePublic(k.public[:group.PublicSize], secret)
}

func (k *KeyShare) Group() *Group { return k.group }

func (k *KeyShare) Public() []byte {
	if k.group == nil {
		return nil
	}
	return k.public[:k.group.PublicSize]
}

// Shared computes shared secret with peer public key into fixed storage
func (k *KeyShare) Shared(peerPublic []byte) (result [constants.MaxExchangeSecretSize]byte, size int, err error) {
	if k.group == nil {
		panic("key share used before Generate")
	}
	size = k.group.SharedSize
	err = k.group.DeriveShared(result[:size], peerPublic, k.secret[:k.group.SecretSize])
	return
}

func (k *KeyShare) Wipe() {
	clear(k.secret[:])
	clear(k.public[:])
	k.group = nil
}
