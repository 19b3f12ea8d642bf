// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"crypto/rand"

	"golang.org/x/crypto/ed25519"

	"github.com/jmt-genius/boxity/fault"
)

// SeedSize - bytes of secret needed to regenerate a key pair
const SeedSize = ed25519.SeedSize

// KeyPair - structure to hold a signing key and its identity
type KeyPair struct {
	Identity   Identity
	PrivateKey ed25519.PrivateKey
}

// NewKeyPair - create a key pair from secure random data
func NewKeyPair() (*KeyPair, error) {
	seed := make([]byte, SeedSize)
	n, err := rand.Read(seed)
	if nil != err {
		return nil, err
	}
	if SeedSize != n {
		panic("too few random bytes")
	}
	return KeyPairFromSeed(seed)
}

// KeyPairFromSeed - regenerate a key pair from its 32 byte seed
func KeyPairFromSeed(seed []byte) (*KeyPair, error) {
	if SeedSize != len(seed) {
		return nil, fault.InvalidPrivateKey
	}
	privateKey := ed25519.NewKeyFromSeed(seed)
	id, err := FromBytes(privateKey.Public().(ed25519.PublicKey))
	if nil != err {
		return nil, err
	}
	return &KeyPair{
		Identity:   id,
		PrivateKey: privateKey,
	}, nil
}

// Seed - the seed part of the private key
func (keyPair *KeyPair) Seed() []byte {
	return keyPair.PrivateKey.Seed()
}

// Sign - sign a message with the private key
func (keyPair *KeyPair) Sign(message []byte) Signature {
	return ed25519.Sign(keyPair.PrivateKey, message)
}
