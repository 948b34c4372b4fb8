// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package keys

import (
	"github.com/hrissan/tlscrypto/cipher"
	"github.com/hrissan/tlscrypto/constants"
	"github.com/hrissan/tlscrypto/prf"
)

const MasterSecretSize = 48
const RandomSize = 32

type MasterSecret [MasterSecretSize]byte

// MasterSecret12 is [rfc5246:8.1]
func MasterSecret12(p *prf.Algorithm, preMasterSecret []byte, clientRandom []byte, serverRandom []byte) (result MasterSecret) {
	p.Derive(result[:], preMasterSecret, []byte("master secret"), clientRandom, serverRandom)
	return
}

// ExtendedMasterSecret12 is [rfc7627:4], sessionHash is transcript hash up to ClientKeyExchange
func ExtendedMasterSecret12(p *prf.Algorithm, preMasterSecret []byte, sessionHash []byte) (result MasterSecret) {
	p.Derive(result[:], preMasterSecret, []byte("extended master secret"), sessionHash, nil)
	return
}

type KeyBlock12 struct {
	Client Material
	Server Material
}

func (kb *KeyBlock12) Wipe() {
	kb.Client.Wipe()
	kb.Server.Wipe()
}

// ExpandKeyBlock12 is [rfc5246:6.3]. IV length is alg.IVSize, for CBC it
// initializes running IV, which TLS 1.1+ records do not use.
func ExpandKeyBlock12(p *prf.Algorithm, alg *cipher.Algorithm, macSize int, master []byte, clientRandom []byte, serverRandom []byte) (kb KeyBlock12) {
	kb.Client.SetSizes(alg, macSize)
	kb.Server.SetSizes(alg, macSize)

	var storage [2 * (constants.MaxMACKeySize + constants.MaxKeySize + constants.MaxIVSize)]byte
	block := storage[:2*(macSize+alg.KeySize+alg.IVSize)]
	p.Derive(block, master, []byte("key expansion"), serverRandom, clientRandom)

	block = block[copy(kb.Client.MACKeyBytes(), block):]
	block = block[copy(kb.Server.MACKeyBytes(), block):]
	block = block[copy(kb.Client.KeyBytes(), block):]
	block = block[copy(kb.Server.KeyBytes(), block):]
	block = block[copy(kb.Client.IVBytes(), block):]
	block = block[copy(kb.Server.IVBytes(), block):]
	if len(block) != 0 {
		panic("key block layout mismatch")
	}
	clear(storage[:])
	return
}
