// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package safecast

import (
	"errors"
	"fmt"
)

// Narrowing casts for lengths written into wire formats (record length,
// AAD length field, HkdfLabel length). Wrong length there is always a bug.

type Integer interface {
	~uintptr |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

var ErrLossOfSign = errors.New("safecast: loss of sign")
var ErrTruncated = errors.New("safecast: value truncated")

// TryCast converts arg, reporting when the value does not survive the conversion
func TryCast[Result Integer, Arg Integer](arg Arg) (Result, error) {
	converted := Result(arg)
	switch {
	case (arg < 0) != (converted < 0):
		return converted, ErrLossOfSign
	case Arg(converted) != arg:
		return converted, ErrTruncated
	}
	return converted, nil
}

func Cast[Result Integer, Arg Integer](arg Arg) Result {
	converted, err := TryCast[Result](arg)
	if err != nil {
		panic(fmt.Sprintf("%v: %d", err, arg))
	}
	return converted
}

// Length16 is for 2-byte length fields
func Length16[Arg Integer](n Arg) uint16 {
	return Cast[uint16](n)
}
