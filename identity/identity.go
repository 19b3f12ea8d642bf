// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/jmt-genius/boxity/fault"
)

// Size - number of bytes in an identity
const Size = ed25519.PublicKeySize

// Identity - an Ed25519 public key
//
// this is a value type so identities can be compared with ==
type Identity [Size]byte

// Zero - the identity that is never a valid signer
var Zero Identity

// FromBytes - convert a byte slice of exactly Size bytes to an identity
func FromBytes(buffer []byte) (Identity, error) {
	id := Identity{}
	if Size != len(buffer) {
		return id, fault.InvalidIdentityLength
	}
	copy(id[:], buffer)
	return id, nil
}

// FromBase58 - decode the text form of an identity
func FromBase58(s string) (Identity, error) {
	buffer, err := base58.Decode(s)
	if nil != err || 0 == len(buffer) {
		return Zero, fault.CannotDecodeIdentity
	}
	return FromBytes(buffer)
}

// Bytes - the raw public key
func (id Identity) Bytes() []byte {
	return id[:]
}

// IsZero - true for the all zero identity
func (id Identity) IsZero() bool {
	return Zero == id
}

// String - Base58 form
func (id Identity) String() string {
	return base58.Encode(id[:])
}

// GoString - for %#v
func (id Identity) GoString() string {
	return "<identity:" + id.String() + ">"
}

// MarshalText - convert an identity to its Base58 JSON form
func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - convert Base58 text into an identity
func (id *Identity) UnmarshalText(s []byte) error {
	decoded, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*id = decoded
	return nil
}

// Verify - check the signature of a message against this identity
func (id Identity) Verify(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.InvalidSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(id[:]), message, signature) {
		return fault.InvalidSignature
	}
	return nil
}
