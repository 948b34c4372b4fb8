// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package digest

import "strconv"

// ID values are shared with hmac, prf and hkdf identifiers
type ID uint8

const (
	None ID = iota
	CRC16
	CRC32
	CRC32C
	FNV
	MD4
	MD5
	MD5SHA1
	SHA1
	SHA224
	SHA256
	SHA384
	SHA512
	SipHash24
	SHA3_224
	SHA3_256
	SHA3_384
	SHA3_512
)

var idNames = [...]string{
	None:      "NONE",
	CRC16:     "CRC16",
	CRC32:     "CRC32",
	CRC32C:    "CRC32C",
	FNV:       "FNV",
	MD4:       "MD4",
	MD5:       "MD5",
	MD5SHA1:   "MD5-SHA1",
	SHA1:      "SHA1",
	SHA224:    "SHA224",
	SHA256:    "SHA256",
	SHA384:    "SHA384",
	SHA512:    "SHA512",
	SipHash24: "SIPHASH-2-4",
	SHA3_224:  "SHA3-224",
	SHA3_256:  "SHA3-256",
	SHA3_384:  "SHA3-384",
	SHA3_512:  "SHA3-512",
}

func (id ID) String() string {
	if int(id) < len(idNames) {
		return idNames[id]
	}
	return "DIGEST(" + strconv.Itoa(int(id)) + ")"
}
