// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package cipher

import (
	"fmt"
)

type Type uint8

const (
	TypeNone   Type = 0
	TypeNull   Type = 1
	TypeStream Type = 2
	TypeBlock  Type = 3
	TypeAEAD   Type = 4
)

type Mode uint8

const (
	ModeNone     Mode = 0
	ModeNull     Mode = 1
	ModeECB      Mode = 2
	ModeCBC      Mode = 3
	ModeOFB      Mode = 4
	ModeCTR      Mode = 5
	ModeGCM      Mode = 6
	ModeCCM      Mode = 7
	ModeCCM8     Mode = 8
	ModeXTS      Mode = 9
	ModeStream   Mode = 10
	ModePoly1305 Mode = 11
)

type Primitive uint8

const (
	PrimitiveNone Primitive = iota
	PrimitiveNull
	PrimitiveRC2
	PrimitiveRC4
	PrimitiveIDEA
	PrimitiveDES
	Primitive3DES
	PrimitiveSEED
	PrimitiveChaCha20
	PrimitiveCamellia128
	PrimitiveCamellia256
	PrimitiveAES128
	PrimitiveAES192
	PrimitiveAES256
)

// Dialect is the record protection variant, there is one cipher registry per dialect
type Dialect uint8

const (
	DialectNone    Dialect = 0
	DialectRFC5246 Dialect = 1 // TLS 1.2, also TLS 1.1 for CBC
	DialectRFC8446 Dialect = 2 // TLS 1.3
)

// ID is primitive<<8 | mode<<4 | type. The low byte is the (mode, type) identity,
// the primitive keeps identities of AES-128 and AES-256 with the same mode apart.
type ID uint16

func MakeID(p Primitive, m Mode, t Type) ID {
	if m > 0xF || t > 0xF || p > 0xF {
		panic("cipher identity component out of range")
	}
	return ID(p)<<8 | ID(m)<<4 | ID(t)
}

func (id ID) Type() Type           { return Type(id & 0xF) }
func (id ID) Mode() Mode           { return Mode(id >> 4 & 0xF) }
func (id ID) Primitive() Primitive { return Primitive(id >> 8) }

// Identity is (mode << 4) | type
func (id ID) Identity() uint8 { return uint8(id) }

const (
	NoneID             = ID(0)
	NullID             = ID(PrimitiveNull)<<8 | ID(ModeNull)<<4 | ID(TypeNull)
	AES128CBCID        = ID(PrimitiveAES128)<<8 | ID(ModeCBC)<<4 | ID(TypeBlock)
	AES256CBCID        = ID(PrimitiveAES256)<<8 | ID(ModeCBC)<<4 | ID(TypeBlock)
	AES128GCMID        = ID(PrimitiveAES128)<<8 | ID(ModeGCM)<<4 | ID(TypeAEAD)
	AES256GCMID        = ID(PrimitiveAES256)<<8 | ID(ModeGCM)<<4 | ID(TypeAEAD)
	ChaCha20Poly1305ID = ID(PrimitiveChaCha20)<<8 | ID(ModePoly1305)<<4 | ID(TypeAEAD)
)

var typeNames = [...]string{"none", "null", "stream", "block", "aead"}
var modeNames = [...]string{"none", "null", "ecb", "cbc", "ofb", "ctr", "gcm", "ccm", "ccm8", "xts", "stream", "poly1305"}
var primitiveNames = [...]string{"none", "null", "rc2", "rc4", "idea", "des", "3des", "seed", "chacha20",
	"camellia128", "camellia256", "aes128", "aes192", "aes256"}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

func (p Primitive) String() string {
	if int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return fmt.Sprintf("primitive(%d)", uint8(p))
}

func (d Dialect) String() string {
	switch d {
	case DialectNone:
		return "none"
	case DialectRFC5246:
		return "rfc5246"
	case DialectRFC8446:
		return "rfc8446"
	}
	return fmt.Sprintf("dialect(%d)", uint8(d))
}

func (id ID) String() string {
	return fmt.Sprintf("%s-%s-%s", id.Primitive(), id.Mode(), id.Type())
}
