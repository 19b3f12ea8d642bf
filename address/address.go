// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address - deterministic record addresses
//
// Every ledger record lives at an address computed from a namespace
// and a natural key.  The store refuses to create a record at an
// occupied address, so the derivation alone decides which records can
// coexist.
package address

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/identity"
	"github.com/jmt-genius/boxity/util"
)

// Size - number of bytes in an address
const Size = 32

// Address - the digest of a namespace and key
type Address [Size]byte

// Namespace - separates the record kinds
type Namespace string

// the namespaces in use
const (
	StateNamespace         Namespace = "program_state"
	BatchNamespace         Namespace = "batch"
	EventNamespace         Namespace = "event"
	AuthorisationNamespace Namespace = "user_auth"
	RequestNamespace       Namespace = "request"
	ClockNamespace         Namespace = "clock"
)

// Derive - compute the address for a namespace and natural key
//
// the namespace is length prefixed so that no namespace/key split of
// the same bytes can collide with another
func Derive(namespace Namespace, key []byte) Address {
	buffer := util.ToVarint64(uint64(len(namespace)))
	buffer = append(buffer, namespace...)
	buffer = append(buffer, key...)
	return Address(sha3.Sum256(buffer))
}

// ForState - address of the ledger state singleton
func ForState() Address {
	return Derive(StateNamespace, nil)
}

// ForBatch - address of the batch with the given identifier
func ForBatch(batchId string) Address {
	return Derive(BatchNamespace, []byte(batchId))
}

// ForEvent - address of one event belonging to a batch
func ForEvent(batch Address, eventId uint64) Address {
	key := make([]byte, Size+8)
	copy(key, batch[:])
	binary.LittleEndian.PutUint64(key[Size:], eventId)
	return Derive(EventNamespace, key)
}

// ForUserAuthorisation - address of a user's authorisation entry
func ForUserAuthorisation(user identity.Identity) Address {
	return Derive(AuthorisationNamespace, user.Bytes())
}

// ForRequest - address of a processed signed request
//
// the key is the unsigned message so a request is identified by its
// content and nonce, not by its signature bytes
func ForRequest(message []byte) Address {
	return Derive(RequestNamespace, message)
}

// ForClock - address of the newest timestamp issued by the ledger
func ForClock() Address {
	return Derive(ClockNamespace, nil)
}

// FromBytes - convert a byte slice to an address
func FromBytes(buffer []byte) (Address, error) {
	a := Address{}
	if Size != len(buffer) {
		return a, fault.InvalidAddress
	}
	copy(a[:], buffer)
	return a, nil
}

// Bytes - the raw address
func (a Address) Bytes() []byte {
	return a[:]
}

// String - Base58 form
func (a Address) String() string {
	return base58.Encode(a[:])
}

// GoString - hex form for %#v
func (a Address) GoString() string {
	return "<address:" + hex.EncodeToString(a[:]) + ">"
}

// MarshalText - Base58 for JSON
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - Base58 from JSON
func (a *Address) UnmarshalText(s []byte) error {
	buffer, err := base58.Decode(string(s))
	if nil != err {
		return fault.InvalidAddress
	}
	decoded, err := FromBytes(buffer)
	if nil != err {
		return err
	}
	*a = decoded
	return nil
}
