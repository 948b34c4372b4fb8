// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package record has TLS record headers [rfc5246:6.2] [rfc8446:5.1]
// and additional data layouts used by record protection.
package record

import (
	"errors"
	"fmt"

	"github.com/hrissan/tlscrypto/constants"
	"golang.org/x/crypto/cryptobyte"
)

const HeaderSize = 5
const MaxPlaintextLength = constants.MaxPlaintextRecordLength

type ContentType byte

const (
	ContentTypeInvalid          ContentType = 0
	ContentTypeChangeCipherSpec ContentType = 20
	ContentTypeAlert            ContentType = 21
	ContentTypeHandshake        ContentType = 22
	ContentTypeApplicationData  ContentType = 23
	ContentTypeHeartbeat        ContentType = 24 // [rfc6520]
)

func (c ContentType) String() string {
	switch c {
	case ContentTypeInvalid:
		return "invalid"
	case ContentTypeChangeCipherSpec:
		return "change_cipher_spec"
	case ContentTypeAlert:
		return "alert"
	case ContentTypeHandshake:
		return "handshake"
	case ContentTypeApplicationData:
		return "application_data"
	case ContentTypeHeartbeat:
		return "heartbeat"
	}
	return fmt.Sprintf("content_type(%d)", byte(c))
}

type Version uint16

const (
	VersionTLS10 Version = 0x0301
	VersionTLS11 Version = 0x0302
	VersionTLS12 Version = 0x0303
	VersionTLS13 Version = 0x0304 // never on the wire in record headers, legacy_record_version is TLS12
)

func (v Version) String() string {
	switch v {
	case VersionTLS10:
		return "TLS1.0"
	case VersionTLS11:
		return "TLS1.1"
	case VersionTLS12:
		return "TLS1.2"
	case VersionTLS13:
		return "TLS1.3"
	}
	return fmt.Sprintf("version(0x%04x)", uint16(v))
}

// MaxCiphertextLength12 is the largest TLSCiphertext.length [rfc5246:6.2.3]
func MaxCiphertextLength12(maxPlaintext int) int {
	return maxPlaintext + constants.MaxCiphertextExpansion12
}

// MaxCiphertextLength13 is the largest TLSCiphertext.length [rfc8446:5.2]
func MaxCiphertextLength13(maxPlaintext int) int {
	return maxPlaintext + constants.MaxCiphertextExpansion13
}

type Header struct {
	ContentType ContentType
	Version     Version
	Length      uint16
}

var ErrHeaderTooShort = errors.New("record header too short")
var ErrBodyTooShort = errors.New("record body too short")
var ErrBodyTooLong = errors.New("record body exceeds maximum length")
var ErrWrongVersion = errors.New("record has wrong major version")

// ParseHeader returns header and body, which is alias to data.
// Length is checked against maxLength, content type is not checked.
func ParseHeader(data []byte, maxLength int) (hdr Header, body []byte, n int, err error) {
	s := cryptobyte.String(data)
	var contentType uint8
	var version uint16
	var length uint16
	if !s.ReadUint8(&contentType) || !s.ReadUint16(&version) || !s.ReadUint16(&length) {
		return Header{}, nil, 0, ErrHeaderTooShort
	}
	if version>>8 != 3 {
		return Header{}, nil, 0, ErrWrongVersion
	}
	if int(length) > maxLength {
		return Header{}, nil, 0, ErrBodyTooLong
	}
	if !s.ReadBytes(&body, int(length)) {
		return Header{}, nil, 0, ErrBodyTooShort
	}
	hdr = Header{ContentType: ContentType(contentType), Version: Version(version), Length: length}
	return hdr, body, HeaderSize + int(length), nil
}

func (hdr Header) Append(data []byte) []byte {
	return append(data, byte(hdr.ContentType), byte(hdr.Version>>8), byte(hdr.Version), byte(hdr.Length>>8), byte(hdr.Length))
}

func (hdr Header) Bytes() (result [HeaderSize]byte) {
	hdr.Append(result[:0])
	return
}
