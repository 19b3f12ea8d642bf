// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk data store
//
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the avaiable tables.
//
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. address      = 32 byte SHA3-256 record address
// 4. event id     = big endian uint64 (8 bytes)
// 5. *records*    = packed record data, see the record package
//
// Ledger state:
//
//   S ++ state address         - the singleton
//                                data: packed LedgerState
//
// Batches:
//
//   B ++ batch address         - registered batch
//                                data: packed Batch
//
// Events:
//
//   E ++ event address         - custody event
//                                data: packed BatchEvent
//   L ++ batch address ++ id   - events of one batch in id order
//                                data: event address
//
// Authorisation:
//
//   U ++ user address          - allowlist entry
//                                data: packed UserAuthorisation
package storage
