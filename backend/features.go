// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package backend

import (
	"strings"

	"golang.org/x/sys/cpu"
)

// Features of the CPU relevant for choosing between AES-GCM and ChaCha20
type Features struct {
	AES    bool
	CLMUL  bool // carry-less multiplication for GHASH
	AVX2   bool
	SHA2   bool
	Vector bool // s390x
}

func DetectFeatures() Features {
	return Features{
		AES:    cpu.X86.HasAES || cpu.ARM64.HasAES || cpu.S390X.HasAES,
		CLMUL:  cpu.X86.HasPCLMULQDQ || cpu.ARM64.HasPMULL || cpu.S390X.HasGHASH,
		AVX2:   cpu.X86.HasAVX2,
		SHA2:   cpu.ARM64.HasSHA2 || cpu.S390X.HasSHA256,
		Vector: cpu.S390X.HasVX,
	}
}

// HardwareAESGCM is true when AES-GCM is both fast and constant time
func (f Features) HardwareAESGCM() bool {
	return f.AES && f.CLMUL
}

func (f Features) String() string {
	var names []string
	for _, n := range []struct {
		has  bool
		name string
	}{{f.AES, "aes"}, {f.CLMUL, "clmul"}, {f.AVX2, "avx2"}, {f.SHA2, "sha2"}, {f.Vector, "vx"}} {
		if n.has {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}
