// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/hrissan/tlscrypto/cipher"
	"github.com/hrissan/tlscrypto/digest/sha2"
	"github.com/hrissan/tlscrypto/hkdf"
	"github.com/hrissan/tlscrypto/hmac"
	"github.com/hrissan/tlscrypto/prf"
	"github.com/hrissan/tlscrypto/record"
	"github.com/hrissan/tlscrypto/rfc5246"
	"github.com/hrissan/tlscrypto/rfc8446"
)

var prfSHA256 = prf.NewPHash(hmac.New(&sha2.Algorithm256))
var hkdfSHA256 = hkdf.New(hmac.New(&sha2.Algorithm256))

func mustHex(t testing.TB, s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func seqBytes(n int, start byte) []byte {
	result := make([]byte, n)
	for i := range result {
		result[i] = start + byte(i)
	}
	return result
}

func checkHex(t *testing.T, name string, got []byte, want string) {
	t.Helper()
	if hex.EncodeToString(got) != want {
		t.Fatalf("%s: %x want %s", name, got, want)
	}
}

func TestMasterSecret12(t *testing.T) {
	clientRandom := seqBytes(RandomSize, 0x40)
	serverRandom := seqBytes(RandomSize, 0x80)
	ms := MasterSecret12(prfSHA256, seqBytes(48, 0), clientRandom, serverRandom)
	checkHex(t, "master secret", ms[:], "a1b3c58fbcafdd223ec0a71efbb1f6be268642b5ce2ae0a70f69273cd5e3af02ec675cd902da4b307993a7a6e3f3c441")

	sessionHash := sha256.Sum256([]byte("session"))
	ems := ExtendedMasterSecret12(prfSHA256, seqBytes(48, 0), sessionHash[:])
	checkHex(t, "extended master secret", ems[:], "eea7b66e5e5f150058446032d53e77cccec702ed4b60d8819d14fba01fad489ea6d77974be08ee8f08601609696ef529")
}

func TestExpandKeyBlock12(t *testing.T) {
	clientRandom := seqBytes(RandomSize, 0x40)
	serverRandom := seqBytes(RandomSize, 0x80)
	ms := MasterSecret12(prfSHA256, seqBytes(48, 0), clientRandom, serverRandom)

	kb := ExpandKeyBlock12(prfSHA256, rfc5246.AES128CBC, 20, ms[:], clientRandom, serverRandom)
	checkHex(t, "client MAC", kb.Client.MACKeyBytes(), "1527e9a818caec47429cc8a0bbbfa342775fde4d")
	checkHex(t, "server MAC", kb.Server.MACKeyBytes(), "ff6f7c574492a826dd8cb335f1b6fb44a30acb26")
	checkHex(t, "client key", kb.Client.KeyBytes(), "c26d16bd6c9325ad256addbf8978c596")
	checkHex(t, "server key", kb.Server.KeyBytes(), "35c6877c58dae7009c75d83d0c3fe158")
	checkHex(t, "client IV", kb.Client.IVBytes(), "ee0745ffb43ef35a458c511824e79a12")
	checkHex(t, "server IV", kb.Server.IVBytes(), "299f9c7a49dc1776b8b5add492f8d61d")

	kb = ExpandKeyBlock12(prfSHA256, rfc5246.AES128GCM, 0, ms[:], clientRandom, serverRandom)
	if len(kb.Client.MACKeyBytes()) != 0 {
		t.Fatalf("AEAD suites have no MAC key")
	}
	checkHex(t, "client key", kb.Client.KeyBytes(), "1527e9a818caec47429cc8a0bbbfa342")
	checkHex(t, "server key", kb.Server.KeyBytes(), "775fde4dff6f7c574492a826dd8cb335")
	checkHex(t, "client salt", kb.Client.IVBytes(), "f1b6fb44")
	checkHex(t, "server salt", kb.Server.IVBytes(), "a30acb26")

	kb.Wipe()
	if kb != (KeyBlock12{}) {
		t.Fatalf("wipe must clear key block")
	}
}

// [rfc8448:3] Simple 1-RTT Handshake
func TestSchedule13RFC8448(t *testing.T) {
	s := NewSchedule13(hkdfSHA256, nil)
	checkHex(t, "early secret", s.EarlySecret.GetValue(), "33ad0a1c607ec03b09e6cd9893680ce210adf300aa1f2660e1b22e10f170f92a")

	s.Handshake(mustHex(t, "8bd4054fb55b9d63fdfbacf9f04b9f0d35e6d63f537563efd46272900f89492d"))
	checkHex(t, "handshake secret", s.HandshakeSecret.GetValue(), "1dc826e93606aa6fdc0aadc12f741b01046aa6b99f691ed221a9f0ca043fbeac")
	checkHex(t, "master secret", s.MasterSecret.GetValue(), "18df06843d13a08bf2a449844c5f8a478001bc4d4c627984d5a41da8d0402919")

	client, server := s.HandshakeTrafficSecrets(mustHex(t, "860c06edc07858ee8e78f0e7428c58edd6b43f2ca3e6e95f02ed063cf0e1cad8"))
	checkHex(t, "client handshake traffic", client.GetValue(), "b3eddb126e067f35a780b3abf45e2d8f3b1a950738f52e9600746a0e27a55a21")
	checkHex(t, "server handshake traffic", server.GetValue(), "b67b7d690cc16c4e75e54213cb2d37b4e9c912bcded9105d42befd59d391ad38")

	var serverKeys, clientKeys DirectionKeys
	serverKeys.SetTrafficSecret13(hkdfSHA256, rfc8446.AES128GCM, server.GetValue())
	checkHex(t, "server write key", serverKeys.Material.KeyBytes(), "3fce516009c21727d0f2e4e86ee403bc")
	checkHex(t, "server write iv", serverKeys.Material.IVBytes(), "5d313eb2671276ee13000b30")
	clientKeys.SetTrafficSecret13(hkdfSHA256, rfc8446.AES128GCM, client.GetValue())
	checkHex(t, "client write key", clientKeys.Material.KeyBytes(), "dbfaa693d1762c5b666af5d950258d01")
	checkHex(t, "client write iv", clientKeys.Material.IVBytes(), "5bd3c71b836e0b76bb73265f")

	s.Wipe()
	if s.MasterSecret.Len() != 0 {
		t.Fatalf("wipe must clear secrets")
	}
}

func TestKeyUpdate13(t *testing.T) {
	var keys DirectionKeys
	keys.SetTrafficSecret13(hkdfSHA256, rfc8446.AES128GCM, mustHex(t, "b67b7d690cc16c4e75e54213cb2d37b4e9c912bcded9105d42befd59d391ad38"))
	keys.NextTrafficSecret13(hkdfSHA256, rfc8446.AES128GCM)
	checkHex(t, "next secret", keys.TrafficSecret.GetValue(), "c5847ffa1bfea2d5c409eee45d2813181327a78a52ee6d02d8a5e10fbf0fface")
	checkHex(t, "next key", keys.Material.KeyBytes(), "69497cc3728d2b7df5ee0350054d6f6a")
	checkHex(t, "next iv", keys.Material.IVBytes(), "d2c180498c31595f913aacd9")
	if keys.Generation != 1 {
		t.Fatalf("generation %d after one update", keys.Generation)
	}
}

func TestFinished13(t *testing.T) {
	transcript := sha256.Sum256([]byte("transcript"))
	result := Finished13(hkdfSHA256, mustHex(t, "b67b7d690cc16c4e75e54213cb2d37b4e9c912bcded9105d42befd59d391ad38"), transcript[:])
	checkHex(t, "verify data", result.GetValue(), "6f9df4027796583732240701f388ae28c134d46e60dcc1276d49a2ed555dd6b4")
}

func TestBind(t *testing.T) {
	clientRandom := seqBytes(RandomSize, 1)
	serverRandom := seqBytes(RandomSize, 2)
	ms := MasterSecret12(prfSHA256, seqBytes(48, 3), clientRandom, serverRandom)
	kb := ExpandKeyBlock12(prfSHA256, rfc5246.AES256CBC, 20, ms[:], clientRandom, serverRandom)

	env := cipher.DefaultEnv()
	enc := rfc5246.AES256CBC.NewCipher(env)
	dec := rfc5246.AES256CBC.NewCipher(env)
	kb.Client.Bind(enc)
	kb.Client.Bind(dec)
	enc.SetSequence(10)
	kb.Client.Bind(enc) // rebinding resets sequence

	hdr := record.Header{ContentType: record.ContentTypeHandshake, Version: record.VersionTLS12}
	dst := make([]byte, rfc5246.AES256CBC.SealedSize(5, 20))
	n, err := enc.Encrypt(dst, hdr, []byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	result, ct, err := dec.DecryptInPlace(hdr, dst[:n])
	if err != nil || ct != record.ContentTypeHandshake || string(result) != "hello" {
		t.Fatalf("bound ciphers do not agree: %v", err)
	}
}
