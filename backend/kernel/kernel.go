// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package kernel lists algorithms of the Linux kernel crypto API over netlink,
// so we can report which record primitives a kernel offload could supply.
package kernel

import (
	"fmt"

	"github.com/mdlayher/netlink"
)

type Algorithm struct {
	Name     string
	Driver   string
	Module   string
	Priority int
	Type     Type
}

// Type is one of *Cipher, *SKCipher, *Hash, *AEAD or nil for unreported types
type Type interface {
	Type() string
}

type typer string

func (t *typer) Type() string { return string(*t) }

type Cipher struct {
	BlockSize  int
	MinKeySize int
	MaxKeySize int
	typer
}

type SKCipher struct {
	GenIV      string
	BlockSize  int
	MinKeySize int
	MaxKeySize int
	IVSize     int
	typer
}

type Hash struct {
	BlockSize  int
	DigestSize int
	typer
}

type AEAD struct {
	GenIV       string
	BlockSize   int
	MaxAuthSize int
	IVSize      int
	typer
}

// nameSize is the length of CRYPTO_MAX_ALG_NAME char arrays in kernel structures
const nameSize = 64

type Conn struct {
	c *netlink.Conn
}

func (c *Conn) Close() error {
	return c.c.Close()
}

func parseReport(alg *Type, size int, structName string, fn func(b []byte) Type) func(b []byte) error {
	return func(b []byte) error {
		if len(b) != size {
			return fmt.Errorf("kernel: unexpected number of bytes for %s, want: %d, got: %d",
				structName, size, len(b))
		}
		*alg = fn(b)
		return nil
	}
}

// RecordPrimitives are kernel names of primitives our record adapters use
var RecordPrimitives = []string{
	"gcm(aes)",
	"rfc7539(chacha20,poly1305)",
	"cbc(aes)",
	"hmac(sha1)",
	"hmac(sha256)",
	"hmac(sha384)",
}

// Support is the best kernel driver for a primitive, Driver is empty if not found
type Support struct {
	Name     string
	Driver   string
	Priority int
}

// Supports returns the highest priority implementation for each name
func Supports(algs []*Algorithm, names []string) []Support {
	result := make([]Support, 0, len(names))
	for _, name := range names {
		s := Support{Name: name, Priority: -1}
		for _, a := range algs {
			if a.Name == name && a.Priority > s.Priority {
				s.Driver = a.Driver
				s.Priority = a.Priority
			}
		}
		if s.Driver == "" {
			s.Priority = 0
		}
		result = append(result, s)
	}
	return result
}
