// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package constants

// Fixed context capacities. Every algorithm state must fit into the capacity
// of its registry, implementation packages assert this at compile time.
const MaxDigestContext = 328
const MaxHMACContext = 512 // one digest state and the outer key pad
const MaxCipherContext = 512
const MaxExchangeContext = 256 // KeyShare of the largest group

// We want fixed-size storage for digests, as we want to do as few allocations as possible
// SHA-512 and SHA3-512 are the largest we register
const MaxHashLength = 64

// Largest block of any registered digest (SHA3-224 rate)
const MaxDigestBlockSize = 144

// Registry capacities, IDs are indexes into fixed arrays
const DigestRegistryCapacity = 32
const HMACRegistryCapacity = 32
const PRFRegistryCapacity = 32
const HKDFRegistryCapacity = 32
const ExchangeRegistryCapacity = 32
const CipherRegistryCapacity = 1 << 12 // primitive<<8 | mode<<4 | type

const MaxKeySize = 32
const MaxIVSize = 16
const MaxMACKeySize = 64

const AEADNonceSize = 12
const AEADTagSize = 16 // default, descriptors carry their own tag size

// [rfc8446:5.1] and [rfc5246:6.2.3]
const MaxPlaintextRecordLength = 16384
const MaxCiphertextExpansion12 = 2048
const MaxCiphertextExpansion13 = 256

// secp521r1 sizes, the largest group we register
const MaxExchangeSecretSize = 66
const MaxExchangePublicSize = 133
