// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - a queuing system for ledger notifications
//
// the ledger sends each committed change to the broadcast queue and
// every registered listener receives its own copy
package messagebus
