// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// boxity-cli - command line client for boxityd
//
// identities are kept in a JSON configuration file with their seeds
// encrypted by a password, every mutating request is signed locally
// before being sent over the TLS JSON RPC connection
package main
