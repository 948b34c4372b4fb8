// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package tlserrors

import (
	"fmt"
)

// we do not allocate on error returning path,
// so all errors are completely static

type Kind int

const (
	KindConfiguration Kind = iota
	KindAuthentication
	KindCapacity
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindAuthentication:
		return "authentication"
	case KindCapacity:
		return "capacity"
	}
	return "unknown"
}

type Error struct {
	kind Kind
	code int
	text string
}

func (e *Error) Error() string {
	return fmt.Sprintf("tlscrypto (%s): %d %s", e.kind, e.code, e.text)
}

func (e *Error) Kind() Kind { return e.kind }
func (e *Error) Code() int  { return e.code }

func NewConfiguration(code int, text string) error {
	return &Error{kind: KindConfiguration, code: code, text: text}
}

func NewAuthentication(code int, text string) error {
	return &Error{kind: KindAuthentication, code: code, text: text}
}

func NewCapacity(code int, text string) error {
	return &Error{kind: KindCapacity, code: code, text: text}
}

// IsConfiguration reports if err is a static configuration error, such errors
// are fatal for the registry or tables being built.
func IsConfiguration(err error) bool {
	e, ok := err.(*Error)
	return ok && e.kind == KindConfiguration
}

var ErrRegistryDuplicateID = NewConfiguration(-100, "algorithm ID already registered")
var ErrRegistryReservedID = NewConfiguration(-101, "algorithm ID 0 is reserved for sentinel")
var ErrRegistryIDOutOfRange = NewConfiguration(-102, "algorithm ID exceeds registry capacity")
var ErrRegistryContextTooLarge = NewConfiguration(-103, "algorithm context size exceeds registry maximum")
var ErrRegistryFrozen = NewConfiguration(-104, "registry is frozen after initialization")
var ErrUnknownAlgorithm = NewConfiguration(-105, "algorithm is not registered")
var ErrUnknownBackend = NewConfiguration(-106, "backend provider is not known")
var ErrUnsupportedSuite = NewConfiguration(-107, "cipher suite is not supported")
var ErrKeyMaterialSize = NewConfiguration(-108, "key material does not match algorithm sizes")

// Single signal for every record which fails authentication or format checks.
// Never add more specific errors here, this would leak which check failed.
var ErrRecordRejected = NewAuthentication(-200, "record rejected")
var ErrExchangeInvalidPublic = NewAuthentication(-201, "peer public key is invalid")
var ErrExchangeInvalidSecret = NewAuthentication(-202, "local secret is invalid")
var ErrSupportedGroupsFormat = NewAuthentication(-203, "supported groups list malformed")

var ErrRecordOverflow = NewCapacity(-300, "record exceeds maximum length")
var ErrSequenceExhausted = NewCapacity(-301, "record sequence number exhausted")
var ErrOutputTooSmall = NewCapacity(-302, "output buffer too small for record")
var ErrNoneCipher = NewCapacity(-303, "none cipher cannot process records")
