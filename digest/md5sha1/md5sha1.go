// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package md5sha1 is MD5 || SHA-1, the handshake hash of TLS 1.0 and 1.1
package md5sha1

import (
	"unsafe"

	"github.com/hrissan/tlscrypto/constants"
	"github.com/hrissan/tlscrypto/digest"
	"github.com/hrissan/tlscrypto/digest/md5"
	"github.com/hrissan/tlscrypto/digest/sha1"
)

const Size = md5.Size + sha1.Size

type State struct {
	md5  md5.State
	sha1 sha1.State
}

var _ [constants.MaxDigestContext - unsafe.Sizeof(State{})]struct{}

var Algorithm = digest.Algorithm{
	ID:          digest.MD5SHA1,
	Name:        "MD5-SHA1",
	Description: "MD5 and SHA-1 concatenation",
	Size:        Size,
	BlockSize:   md5.BlockSize,
	ContextSize: int(unsafe.Sizeof(State{})),
	New:         func() digest.State { return &State{} },
	Sum:         sum,
}

func (s *State) Init() {
	s.md5.Init()
	s.sha1.Init()
}

func (s *State) Update(data []byte) {
	s.md5.Update(data)
	s.sha1.Update(data)
}

func (s *State) Final(out []byte) {
	s.md5.Final(out[:md5.Size])
	s.sha1.Final(out[md5.Size:Size])
}

func sum(out []byte, data []byte) {
	var s State
	s.Init()
	s.Update(data)
	s.Final(out)
}
