// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - binary forms of the ledger records
//
// Every packed record is:
//
//   Varint64(tag) Varint64(version) field...
//
// where strings and byte fields are Varint64(length) followed by the
// data, integers are Varint64 and booleans are a single 0/1 byte.
// Signed requests place the signature last, after the message it
// covers.
package record
