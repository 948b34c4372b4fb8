// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package exchange

import (
	"crypto/ecdh"

	"github.com/cloudflare/circl/dh/x448"
	"github.com/hrissan/tlscrypto/tlserrors"
	"github.com/hrissan/tlscrypto/tlsrand"
	"golang.org/x/crypto/curve25519"
)

type noneImpl struct{}

func (noneImpl) generateSecret(rnd tlsrand.Rand, secret []byte) {
	panic("none group cannot generate secrets")
}

func (noneImpl) derivePublic(public []byte, secret []byte) error {
	return tlserrors.ErrExchangeInvalidSecret
}

func (noneImpl) deriveShared(shared []byte, peerPublic []byte, secret []byte) error {
	return tlserrors.ErrExchangeInvalidPublic
}

type nistImpl struct {
	curve int
}

func (n nistImpl) ecdh() ecdh.Curve {
	switch n.curve {
	case 256:
		return ecdh.P256()
	case 384:
		return ecdh.P384()
	case 521:
		return ecdh.P521()
	}
	panic("unknown NIST curve")
}

// generateSecret samples scalars until one is in [1, order-1]
func (n nistImpl) generateSecret(rnd tlsrand.Rand, secret []byte) {
	curve := n.ecdh()
	for {
		rnd.Read(secret)
		if n.curve == 521 {
			secret[0] &= 0x01 // 521 bits in 66 bytes
		}
		if _, err := curve.NewPrivateKey(secret); err == nil {
			return
		}
	}
}

func (n nistImpl) derivePublic(public []byte, secret []byte) error {
	priv, err := n.ecdh().NewPrivateKey(secret)
	if err != nil {
		return tlserrors.ErrExchangeInvalidSecret
	}
	copy(public, priv.PublicKey().Bytes())
	return nil
}

func (n nistImpl) deriveShared(shared []byte, peerPublic []byte, secret []byte) error {
	curve := n.ecdh()
	priv, err := curve.NewPrivateKey(secret)
	if err != nil {
		return tlserrors.ErrExchangeInvalidSecret
	}
	pub, err := curve.NewPublicKey(peerPublic) // checks point is on curve
	if err != nil {
		return tlserrors.ErrExchangeInvalidPublic
	}
	result, err := priv.ECDH(pub)
	if err != nil {
		return tlserrors.ErrExchangeInvalidPublic
	}
	copy(shared, result)
	return nil
}

type x25519Impl struct{}

// any 32 bytes are valid X25519 secret, clamping is done by scalar multiplication
func (x25519Impl) generateSecret(rnd tlsrand.Rand, secret []byte) {
	rnd.Read(secret)
}

func (x25519Impl) derivePublic(public []byte, secret []byte) error {
	result, err := curve25519.X25519(secret, curve25519.Basepoint)
	if err != nil {
		panic("curve25519.X25519 failed")
	}
	copy(public, result)
	return nil
}

func (x25519Impl) deriveShared(shared []byte, peerPublic []byte, secret []byte) error {
	result, err := curve25519.X25519(secret, peerPublic)
	if err != nil { // wrong length or low order point
		return tlserrors.ErrExchangeInvalidPublic
	}
	copy(shared, result)
	return nil
}

type x448Impl struct{}

func (x448Impl) generateSecret(rnd tlsrand.Rand, secret []byte) {
	rnd.Read(secret)
}

func (x448Impl) derivePublic(public []byte, secret []byte) error {
	var pub, sec x448.Key
	copy(sec[:], secret)
	x448.KeyGen(&pub, &sec)
	copy(public, pub[:])
	clear(sec[:])
	return nil
}

func (x448Impl) deriveShared(shared []byte, peerPublic []byte, secret []byte) error {
	if len(peerPublic) != x448.Size {
		return tlserrors.ErrExchangeInvalidPublic
	}
	var pub, sec, result x448.Key
	copy(pub[:], peerPublic)
	copy(sec[:], secret)
	ok := x448.Shared(&result, &sec, &pub)
	clear(sec[:])
	if !ok {
		return tlserrors.ErrExchangeInvalidPublic
	}
	copy(shared, result[:])
	return nil
}
