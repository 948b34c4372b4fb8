// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

//go:build linux

package kernel

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"github.com/mdlayher/netlink/nltest"
	"golang.org/x/sys/unix"
)

// response is one algorithm as reported by the kernel
type response struct {
	name, driver, module string
	priority             uint32
	attr                 uint16
	report               []byte
}

func packName(b []byte, s string) []byte {
	var name [nameSize]byte
	copy(name[:], s)
	return append(b, name[:]...)
}

func packU32(b []byte, values ...uint32) []byte {
	for _, v := range values {
		var u [4]byte
		nlenc.PutUint32(u[:], v)
		b = append(b, u[:]...)
	}
	return b
}

func encodeResponse(t *testing.T, r response) []byte {
	ae := netlink.NewAttributeEncoder()
	ae.Uint32(unix.CRYPTOCFGA_PRIORITY_VAL, r.priority)
	if r.report != nil {
		ae.Bytes(r.attr, r.report)
	}
	ab, err := ae.Encode()
	if err != nil {
		t.Fatalf("failed to encode attributes: %v", err)
	}
	b := packName(nil, r.name)
	b = packName(b, r.driver)
	b = packName(b, r.module)
	b = packU32(b, 0, 0, 0, 0)
	return append(b, ab...)
}

func testConn(t *testing.T, res []response) *Conn {
	t.Helper()
	c := &Conn{
		c: nltest.Dial(func(req []netlink.Message) ([]netlink.Message, error) {
			if diff := cmp.Diff(1, len(req)); diff != "" {
				t.Fatalf("unexpected number of request messages (-want +got):\n%s", diff)
			}
			if req[0].Header.Type != unix.CRYPTO_MSG_GETALG {
				return nil, fmt.Errorf("unexpected request type %d", req[0].Header.Type)
			}
			h := netlink.Header{
				Sequence: req[0].Header.Sequence,
				PID:      req[0].Header.PID,
			}
			msgs := make([]netlink.Message, 0, len(res))
			for _, r := range res {
				msgs = append(msgs, netlink.Message{Header: h, Data: encodeResponse(t, r)})
			}
			return msgs, nil
		}),
	}
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Fatalf("failed to close: %v", err)
		}
	})
	return c
}

func TestConnAlgorithms(t *testing.T) {
	c := testConn(t, []response{
		{
			name: "sha256", driver: "sha256-ni", module: "sha256_ssse3", priority: 250,
			attr: unix.CRYPTOCFGA_REPORT_HASH, report: packU32(packName(nil, "shash"), 64, 32),
		},
		{
			name: "aes", driver: "aes-aesni", module: "aesni_intel", priority: 300,
			attr: unix.CRYPTOCFGA_REPORT_CIPHER, report: packU32(packName(nil, "cipher"), 16, 16, 32),
		},
		{
			name: "gcm(aes)", driver: "generic-gcm-aesni", module: "aesni_intel", priority: 400,
			attr: unix.CRYPTOCFGA_REPORT_AEAD, report: packU32(packName(packName(nil, "aead"), "<none>"), 1, 16, 12),
		},
		{
			name: "cbc(aes)", driver: "cbc-aes-aesni", module: "aesni_intel", priority: 400,
			attr: unix.CRYPTOCFGA_REPORT_BLKCIPHER, report: packU32(packName(packName(nil, "skcipher"), "<none>"), 16, 16, 32, 16),
		},
		{
			name: "gcm(aes)", driver: "gcm_base(ctr(aes-generic),ghash-generic)", module: "gcm", priority: 100,
		},
	})
	algs, err := c.Algorithms()
	if err != nil {
		t.Fatalf("failed to get algorithms: %v", err)
	}
	allow := cmp.AllowUnexported(Cipher{}, SKCipher{}, Hash{}, AEAD{})
	want := []*Algorithm{
		{Name: "sha256", Driver: "sha256-ni", Module: "sha256_ssse3", Priority: 250,
			Type: &Hash{BlockSize: 64, DigestSize: 32, typer: "shash"}},
		{Name: "aes", Driver: "aes-aesni", Module: "aesni_intel", Priority: 300,
			Type: &Cipher{BlockSize: 16, MinKeySize: 16, MaxKeySize: 32, typer: "cipher"}},
		{Name: "gcm(aes)", Driver: "generic-gcm-aesni", Module: "aesni_intel", Priority: 400,
			Type: &AEAD{GenIV: "<none>", BlockSize: 1, MaxAuthSize: 16, IVSize: 12, typer: "aead"}},
		{Name: "cbc(aes)", Driver: "cbc-aes-aesni", Module: "aesni_intel", Priority: 400,
			Type: &SKCipher{GenIV: "<none>", BlockSize: 16, MinKeySize: 16, MaxKeySize: 32, IVSize: 16, typer: "skcipher"}},
		{Name: "gcm(aes)", Driver: "gcm_base(ctr(aes-generic),ghash-generic)", Module: "gcm", Priority: 100},
	}
	if diff := cmp.Diff(want, algs, allow); diff != "" {
		t.Fatalf("unexpected algorithms (-want +got):\n%s", diff)
	}
}

func TestParseAlgorithmError(t *testing.T) {
	encodeBad := func(typ uint16) []byte {
		ae := netlink.NewAttributeEncoder()
		ae.Bytes(typ, []byte{0xff})
		ab, err := ae.Encode()
		if err != nil {
			t.Fatalf("failed to encode attributes: %v", err)
		}
		return append(make([]byte, sizeofUserAlg), ab...)
	}
	tests := []struct {
		name string
		b    []byte
	}{
		{name: "crypto_user_alg", b: []byte{0xff}},
		{name: "crypto_report_cipher", b: encodeBad(unix.CRYPTOCFGA_REPORT_CIPHER)},
		{name: "crypto_report_blkcipher", b: encodeBad(unix.CRYPTOCFGA_REPORT_BLKCIPHER)},
		{name: "crypto_report_hash", b: encodeBad(unix.CRYPTOCFGA_REPORT_HASH)},
		{name: "crypto_report_aead", b: encodeBad(unix.CRYPTOCFGA_REPORT_AEAD)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseAlgorithm(tt.b); err == nil {
				t.Fatal("expected an error, but none occurred")
			}
		})
	}
}

// report parsers read fields at fixed offsets after the name arrays
func TestReportLayouts(t *testing.T) {
	pairs := []struct {
		name      string
		got, want int
	}{
		{"crypto_user_alg", sizeofUserAlg, 3*nameSize + 4*4},
		{"crypto_report_hash", sizeofReportHash, nameSize + 2*4},
		{"crypto_report_cipher", sizeofReportCipher, nameSize + 3*4},
		{"crypto_report_blkcipher", sizeofReportBlkCipher, 2*nameSize + 4*4},
		{"crypto_report_aead", sizeofReportAEAD, 2*nameSize + 3*4},
	}
	for _, p := range pairs {
		if p.got != p.want {
			t.Errorf("%s: unix size %d, parser expects %d", p.name, p.got, p.want)
		}
	}
}

func TestIntegrationConnAlgorithms(t *testing.T) {
	c, err := Dial()
	if err != nil {
		t.Skipf("kernel crypto API not available: %v", err)
	}
	defer c.Close()
	algs, err := c.Algorithms()
	if err != nil {
		t.Skipf("failed to get algorithms: %v", err)
	}
	for _, a := range algs {
		if a.Name == "" {
			t.Fatalf("algorithm with empty name, driver %q", a.Driver)
		}
	}
}
