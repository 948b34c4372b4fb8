// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package record

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

func TestParseHeader(t *testing.T) {
	data := []byte{23, 3, 3, 0, 3, 'a', 'b', 'c', 'x'}
	hdr, body, n, err := ParseHeader(data, MaxCiphertextLength13(MaxPlaintextLength))
	if err != nil {
		t.Fatal(err)
	}
	if hdr != (Header{ContentType: ContentTypeApplicationData, Version: VersionTLS12, Length: 3}) {
		t.Fatalf("unexpected header %+v", hdr)
	}
	if n != 8 || string(body) != "abc" {
		t.Fatalf("unexpected body %q n %d", body, n)
	}
	if got := hdr.Append(nil); !bytes.Equal(got, data[:HeaderSize]) {
		t.Fatalf("append gives %x", got)
	}
}

func TestParseHeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", []byte{23, 3, 3, 0}, ErrHeaderTooShort},
		{"wrong version", []byte{23, 2, 0, 0, 0}, ErrWrongVersion},
		{"too long", []byte{23, 3, 3, 0x40, 0x01}, ErrBodyTooLong},
		{"truncated", []byte{23, 3, 3, 0, 2, 1}, ErrBodyTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := ParseHeader(tt.data, MaxPlaintextLength); !errors.Is(err, tt.want) {
				t.Fatalf("got %v want %v", err, tt.want)
			}
		})
	}
}

func TestAdditionalData(t *testing.T) {
	ad := AdditionalData12(0x0102030405060708, ContentTypeHandshake, VersionTLS12, 0x1234)
	if got := hex.EncodeToString(ad[:]); got != "0102030405060708160303"+"1234" {
		t.Fatalf("TLS 1.2 additional data %s", got)
	}
	ad13 := AdditionalData13(0x4011)
	if got := hex.EncodeToString(ad13[:]); got != "1703034011" {
		t.Fatalf("TLS 1.3 additional data %s", got)
	}
}

func TestFindInnerContentType(t *testing.T) {
	for _, padding := range []int{0, 1, 15, 16, 17, 33, 100} {
		for _, content := range []int{0, 1, 20} {
			data := make([]byte, content+1+padding)
			for i := 0; i < content; i++ {
				data[i] = 0xaa
			}
			data[content] = byte(ContentTypeHandshake)
			offset, ct := FindInnerContentType(data)
			if offset != content || ct != ContentTypeHandshake {
				t.Fatalf("padding %d content %d: offset %d type %v", padding, content, offset, ct)
			}
		}
		if offset, _ := FindInnerContentType(make([]byte, padding)); offset != -1 {
			t.Fatalf("all zero input of %d bytes must have no content type", padding)
		}
	}
}

func TestStrings(t *testing.T) {
	if ContentTypeAlert.String() != "alert" || ContentType(99).String() != "content_type(99)" {
		t.Fatalf("unexpected content type names")
	}
	if VersionTLS12.String() != "TLS1.2" || Version(0x0200).String() != "version(0x0200)" {
		t.Fatalf("unexpected version names")
	}
}

func benchmarkFindInnerContentType(b *testing.B, padding int) {
	data := make([]byte, 1024+1+padding)
	data[1024] = byte(ContentTypeApplicationData)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if offset, _ := FindInnerContentType(data); offset != 1024 {
			b.Fatal("wrong offset")
		}
	}
}

func BenchmarkFindInnerContentType0(b *testing.B)   { benchmarkFindInnerContentType(b, 0) }
func BenchmarkFindInnerContentType255(b *testing.B) { benchmarkFindInnerContentType(b, 255) }
