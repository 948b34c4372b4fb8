// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package record

import (
	"encoding/binary"

	"github.com/hrissan/tlscrypto/safecast"
)

const AdditionalDataSize12 = 13
const AdditionalDataSize13 = HeaderSize

// AdditionalData12 is seq_num || type || version || length [rfc5246:6.2.3.3],
// also the MAC prefix for block ciphers [rfc5246:6.2.3.1]
func AdditionalData12(seq uint64, contentType ContentType, version Version, length int) (result [AdditionalDataSize12]byte) {
	binary.BigEndian.PutUint64(result[:8], seq)
	result[8] = byte(contentType)
	binary.BigEndian.PutUint16(result[9:11], uint16(version))
	binary.BigEndian.PutUint16(result[11:13], safecast.Length16(length))
	return
}

// AdditionalData13 is the outer record header [rfc8446:5.2]
func AdditionalData13(ciphertextLength int) [AdditionalDataSize13]byte {
	return Header{
		ContentType: ContentTypeApplicationData,
		Version:     VersionTLS12,
		Length:      safecast.Length16(ciphertextLength),
	}.Bytes()
}

// FindInnerContentType returns offset of content type in TLSInnerPlaintext,
// it is the first non-zero byte from the end [rfc8446:5.4]. Returns -1 if all bytes are zero.
func FindInnerContentType(data []byte) (offset int, contentType ContentType) {
	offset = len(data)
	for ; offset > 16; offset -= 16 { // poor man's SIMD
		slice := data[offset-16 : offset]
		val1 := binary.LittleEndian.Uint64(slice)
		val2 := binary.LittleEndian.Uint64(slice[8:])
		if (val1 | val2) != 0 {
			break
		}
	}
	for ; offset > 0; offset-- {
		b := data[offset-1]
		if b != 0 {
			return offset - 1, ContentType(b)
		}
	}
	return -1, ContentTypeInvalid
}
