// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package backend

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"

	"golang.org/x/crypto/chacha20poly1305"
)

type goProvider struct{}

func (goProvider) Name() string { return NameGo }

func (goProvider) AESGCM(tagSize int) AEAD {
	return &aesGCM{tagSize: tagSize}
}

func (goProvider) ChaCha20Poly1305() AEAD {
	return &goChaCha{}
}

func (goProvider) AESCBC() Block {
	return &aesCBC{}
}

type aesGCM struct {
	keys    keyStorage
	tagSize int
	aead    cipher.AEAD
}

func (g *aesGCM) rekey(key []byte) cipher.AEAD {
	if !g.keys.changed(key) {
		return g.aead
	}
	block, err := aes.NewCipher(g.keys.value())
	if err != nil {
		panic("aes.NewCipher fails " + err.Error())
	}
	g.aead, err = cipher.NewGCMWithTagSize(block, g.tagSize)
	if err != nil {
		panic("cipher.NewGCMWithTagSize fails " + err.Error())
	}
	return g.aead
}

func (g *aesGCM) Seal(dst []byte, key []byte, nonce []byte, plaintext []byte, ad []byte) []byte {
	return g.rekey(key).Seal(dst, nonce, plaintext, ad)
}

func (g *aesGCM) Open(dst []byte, key []byte, nonce []byte, ciphertext []byte, ad []byte) ([]byte, bool) {
	out, err := g.rekey(key).Open(dst, nonce, ciphertext, ad)
	return out, err == nil
}

func (g *aesGCM) Overhead() int  { return g.tagSize }
func (g *aesGCM) NonceSize() int { return 12 }

type goChaCha struct {
	keys keyStorage
	aead cipher.AEAD
}

func (g *goChaCha) rekey(key []byte) cipher.AEAD {
	if !g.keys.changed(key) {
		return g.aead
	}
	aead, err := chacha20poly1305.New(g.keys.value())
	if err != nil {
		panic("chacha20poly1305.New fails " + err.Error())
	}
	g.aead = aead
	return aead
}

func (g *goChaCha) Seal(dst []byte, key []byte, nonce []byte, plaintext []byte, ad []byte) []byte {
	return g.rekey(key).Seal(dst, nonce, plaintext, ad)
}

func (g *goChaCha) Open(dst []byte, key []byte, nonce []byte, ciphertext []byte, ad []byte) ([]byte, bool) {
	out, err := g.rekey(key).Open(dst, nonce, ciphertext, ad)
	return out, err == nil
}

func (g *goChaCha) Overhead() int  { return chacha20poly1305.Overhead }
func (g *goChaCha) NonceSize() int { return chacha20poly1305.NonceSize }

// aesCBC chains blocks itself over one cached cipher.Block
type aesCBC struct {
	keys  keyStorage
	block cipher.Block
}

func (c *aesCBC) rekey(key []byte) cipher.Block {
	if !c.keys.changed(key) {
		return c.block
	}
	block, err := aes.NewCipher(c.keys.value())
	if err != nil {
		panic("aes.NewCipher fails " + err.Error())
	}
	c.block = block
	return block
}

func (c *aesCBC) BlockSize() int { return aes.BlockSize }

func (c *aesCBC) EncryptCBC(dst []byte, key []byte, iv []byte, src []byte) bool {
	if len(src)%aes.BlockSize != 0 || len(dst) < len(src) || len(iv) != aes.BlockSize {
		return false
	}
	block := c.rekey(key)
	var prev [aes.BlockSize]byte
	copy(prev[:], iv)
	for i := 0; i < len(src); i += aes.BlockSize {
		subtle.XORBytes(prev[:], prev[:], src[i:i+aes.BlockSize])
		block.Encrypt(dst[i:i+aes.BlockSize], prev[:])
		copy(prev[:], dst[i:i+aes.BlockSize])
	}
	return true
}

func (c *aesCBC) DecryptCBC(dst []byte, key []byte, iv []byte, src []byte) bool {
	if len(src)%aes.BlockSize != 0 || len(dst) < len(src) || len(iv) != aes.BlockSize {
		return false
	}
	block := c.rekey(key)
	var prev, saved [aes.BlockSize]byte
	copy(prev[:], iv)
	for i := 0; i < len(src); i += aes.BlockSize {
		copy(saved[:], src[i:i+aes.BlockSize]) // dst may alias src
		block.Decrypt(dst[i:i+aes.BlockSize], saved[:])
		subtle.XORBytes(dst[i:i+aes.BlockSize], dst[i:i+aes.BlockSize], prev[:])
		prev = saved
	}
	return true
}
