// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package keys

import (
	"github.com/hrissan/tlscrypto/cipher"
	"github.com/hrissan/tlscrypto/constants"
	"github.com/hrissan/tlscrypto/digest"
	"github.com/hrissan/tlscrypto/hkdf"
)

// Schedule13 is the key schedule [rfc8446:7.1], secrets are kept for the next stage
type Schedule13 struct {
	hkdf            *hkdf.Algorithm
	EarlySecret     digest.Sum
	HandshakeSecret digest.Sum
	MasterSecret    digest.Sum
}

// NewSchedule13 starts with early secret, psk may be empty
func NewSchedule13(h *hkdf.Algorithm, psk []byte) (s Schedule13) {
	var zeroes [constants.MaxHashLength]byte
	if len(psk) == 0 {
		psk = zeroes[:h.Size()]
	}
	s.hkdf = h
	s.EarlySecret = h.Extract(nil, psk)
	return
}

func (s *Schedule13) derived(secret []byte) digest.Sum {
	emptyHash := s.hkdf.HMAC.Digest.HashSum(nil)
	return s.hkdf.DeriveSecret(secret, "derived", emptyHash.GetValue())
}

// Handshake mixes (EC)DHE shared secret in
func (s *Schedule13) Handshake(sharedSecret []byte) {
	salt := s.derived(s.EarlySecret.GetValue())
	s.HandshakeSecret = s.hkdf.Extract(salt.GetValue(), sharedSecret)

	var zeroes [constants.MaxHashLength]byte
	salt = s.derived(s.HandshakeSecret.GetValue())
	s.MasterSecret = s.hkdf.Extract(salt.GetValue(), zeroes[:s.hkdf.Size()])
}

// HandshakeTrafficSecrets need transcript hash of ClientHello...ServerHello
func (s *Schedule13) HandshakeTrafficSecrets(transcriptHash []byte) (client digest.Sum, server digest.Sum) {
	client = s.hkdf.DeriveSecret(s.HandshakeSecret.GetValue(), "c hs traffic", transcriptHash)
	server = s.hkdf.DeriveSecret(s.HandshakeSecret.GetValue(), "s hs traffic", transcriptHash)
	return
}

// ApplicationTrafficSecrets need transcript hash of ClientHello...server Finished
func (s *Schedule13) ApplicationTrafficSecrets(transcriptHash []byte) (client digest.Sum, server digest.Sum) {
	client = s.hkdf.DeriveSecret(s.MasterSecret.GetValue(), "c ap traffic", transcriptHash)
	server = s.hkdf.DeriveSecret(s.MasterSecret.GetValue(), "s ap traffic", transcriptHash)
	return
}

func (s *Schedule13) Wipe() {
	s.EarlySecret.Wipe()
	s.HandshakeSecret.Wipe()
	s.MasterSecret.Wipe()
}

// Finished13 is verify_data [rfc8446:4.4.4]
func Finished13(h *hkdf.Algorithm, trafficSecret []byte, transcriptHash []byte) (result digest.Sum) {
	finishedKey := h.ExpandLabelSum(trafficSecret, "finished", nil, h.Size())
	result.SetZero(h.Size())
	h.HMAC.MAC(result.GetValue(), finishedKey.GetValue(), transcriptHash)
	finishedKey.Wipe()
	return
}

// DirectionKeys are keys of one direction of a TLS 1.3 connection.
// We need to keep traffic secret for key update.
type DirectionKeys struct {
	TrafficSecret digest.Sum
	Material      Material
	Generation    uint64 // number of key updates
}

// SetTrafficSecret13 derives write key and IV [rfc8446:7.3]
func (keys *DirectionKeys) SetTrafficSecret13(h *hkdf.Algorithm, alg *cipher.Algorithm, secret []byte) {
	keys.TrafficSecret.SetValue(secret)
	keys.Generation = 0
	keys.deriveMaterial(h, alg)
}

// NextTrafficSecret13 is key update [rfc8446:7.2]
//
//	application_traffic_secret_N+1 =
//		HKDF-Expand-Label(application_traffic_secret_N,
//			"traffic upd", "", Hash.length)
func (keys *DirectionKeys) NextTrafficSecret13(h *hkdf.Algorithm, alg *cipher.Algorithm) {
	next := h.ExpandLabelSum(keys.TrafficSecret.GetValue(), "traffic upd", nil, h.Size())
	keys.TrafficSecret = next
	keys.Generation++
	keys.deriveMaterial(h, alg)
}

func (keys *DirectionKeys) deriveMaterial(h *hkdf.Algorithm, alg *cipher.Algorithm) {
	keys.Material.SetSizes(alg, 0)
	h.ExpandLabel(keys.Material.KeyBytes(), keys.TrafficSecret.GetValue(), "key", nil)
	h.ExpandLabel(keys.Material.IVBytes(), keys.TrafficSecret.GetValue(), "iv", nil)
}

func (keys *DirectionKeys) Wipe() {
	keys.TrafficSecret.Wipe()
	keys.Material.Wipe()
	keys.Generation = 0
}
