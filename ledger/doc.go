// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the provenance state machine
//
// The ledger owns four kinds of record: the ledger state singleton,
// batches, custody events and user authorisations.  Records are only
// ever created, never updated or removed, except for the counters in
// the ledger state.
//
// Each mutating operation runs under one lock inside one storage
// transaction, so it either commits completely or leaves no trace.
// A notification is sent only after a successful commit.
//
// Reads go directly to the committed pools and take no lock.
package ledger
