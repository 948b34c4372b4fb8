// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

//go:build !linux

package kernel

import (
	"fmt"
	"runtime"
)

func Dial() (*Conn, error) {
	return nil, fmt.Errorf("kernel: not implemented on %s/%s", runtime.GOOS, runtime.GOARCH)
}

func (c *Conn) Algorithms() ([]*Algorithm, error) {
	return nil, fmt.Errorf("kernel: not implemented on %s/%s", runtime.GOOS, runtime.GOARCH)
}
