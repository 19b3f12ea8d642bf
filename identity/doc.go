// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package identity - signer identities for the ledger
//
// An identity is a 32 byte Ed25519 public key.  Its text form is the
// plain Base58 encoding of the key bytes, so the same string is
// accepted by wallets that display Ed25519 account keys.
//
// The ledger never sees private keys, it only compares identities and
// relies on the RPC layer to verify that a request was signed by the
// identity it names.
package identity
