// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

//go:build linux

package kernel

import (
	"fmt"
	"unsafe"

	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"golang.org/x/sys/unix"
)

// Sizes of C structures returned by the kernel
const (
	sizeofUserAlg         = int(unsafe.Sizeof(unix.CryptoUserAlg{}))
	sizeofReportHash      = int(unsafe.Sizeof(unix.CryptoReportHash{}))
	sizeofReportCipher    = int(unsafe.Sizeof(unix.CryptoReportCipher{}))
	sizeofReportBlkCipher = int(unsafe.Sizeof(unix.CryptoReportBlkCipher{}))
	sizeofReportAEAD      = int(unsafe.Sizeof(unix.CryptoReportAEAD{}))
)

// Dial fails if the kernel has no crypto_user support
func Dial() (*Conn, error) {
	c, err := netlink.Dial(unix.NETLINK_CRYPTO, nil)
	if err != nil {
		return nil, err
	}
	return &Conn{c: c}, nil
}

func (c *Conn) Algorithms() ([]*Algorithm, error) {
	msgs, err := c.c.Execute(netlink.Message{
		Header: netlink.Header{
			Type:  unix.CRYPTO_MSG_GETALG,
			Flags: netlink.Request | netlink.Acknowledge | netlink.Dump,
		},
	})
	if err != nil {
		return nil, err
	}
	algs := make([]*Algorithm, 0, len(msgs))
	for _, m := range msgs {
		a, err := parseAlgorithm(m.Data)
		if err != nil {
			return nil, err
		}
		algs = append(algs, a)
	}
	return algs, nil
}

func u32(b []byte, offset int) int {
	return int(nlenc.Uint32(b[offset : offset+4]))
}

func parseAlgorithm(b []byte) (*Algorithm, error) {
	if len(b) < sizeofUserAlg {
		return nil, fmt.Errorf("kernel: unexpected number of bytes for crypto_user_alg, want: %d, got: %d",
			sizeofUserAlg, len(b))
	}
	ad, err := netlink.NewAttributeDecoder(b[sizeofUserAlg:])
	if err != nil {
		return nil, err
	}
	a := Algorithm{
		Name:   nlenc.String(b[0:nameSize]),
		Driver: nlenc.String(b[nameSize : 2*nameSize]),
		Module: nlenc.String(b[2*nameSize : 3*nameSize]),
	}
	for ad.Next() {
		switch ad.Type() {
		case unix.CRYPTOCFGA_PRIORITY_VAL:
			a.Priority = int(ad.Uint32())
		case unix.CRYPTOCFGA_REPORT_CIPHER:
			ad.Do(parseReport(&a.Type, sizeofReportCipher, "crypto_report_cipher", func(b []byte) Type {
				return &Cipher{
					BlockSize:  u32(b, nameSize),
					MinKeySize: u32(b, nameSize+4),
					MaxKeySize: u32(b, nameSize+8),
					typer:      typer(nlenc.String(b[:nameSize])),
				}
			}))
		case unix.CRYPTOCFGA_REPORT_BLKCIPHER:
			ad.Do(parseReport(&a.Type, sizeofReportBlkCipher, "crypto_report_blkcipher", func(b []byte) Type {
				return &SKCipher{
					GenIV:      nlenc.String(b[nameSize : 2*nameSize]),
					BlockSize:  u32(b, 2*nameSize),
					MinKeySize: u32(b, 2*nameSize+4),
					MaxKeySize: u32(b, 2*nameSize+8),
					IVSize:     u32(b, 2*nameSize+12),
					typer:      typer(nlenc.String(b[:nameSize])),
				}
			}))
		case unix.CRYPTOCFGA_REPORT_HASH:
			ad.Do(parseReport(&a.Type, sizeofReportHash, "crypto_report_hash", func(b []byte) Type {
				return &Hash{
					BlockSize:  u32(b, nameSize),
					DigestSize: u32(b, nameSize+4),
					typer:      typer(nlenc.String(b[:nameSize])),
				}
			}))
		case unix.CRYPTOCFGA_REPORT_AEAD:
			ad.Do(parseReport(&a.Type, sizeofReportAEAD, "crypto_report_aead", func(b []byte) Type {
				return &AEAD{
					GenIV:       nlenc.String(b[nameSize : 2*nameSize]),
					BlockSize:   u32(b, 2*nameSize),
					MaxAuthSize: u32(b, 2*nameSize+4),
					IVSize:      u32(b, 2*nameSize+8),
					typer:       typer(nlenc.String(b[:nameSize])),
				}
			}))
		}
	}
	if err := ad.Err(); err != nil {
		return nil, err
	}
	return &a, nil
}
