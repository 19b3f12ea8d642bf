// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - register the RPC services
package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/jmt-genius/boxity/counter"
	"github.com/jmt-genius/boxity/ledger"
	"github.com/jmt-genius/boxity/rpc/authorisation"
	"github.com/jmt-genius/boxity/rpc/batch"
	"github.com/jmt-genius/boxity/rpc/event"
	"github.com/jmt-genius/boxity/rpc/node"
	"github.com/jmt-genius/boxity/rpc/state"
)

// Create - an RPC server with every service bound to the ledger
func Create(log *logger.L, version string, start time.Time, rpcCount *counter.Counter, l *ledger.Ledger) *rpc.Server {

	server := rpc.NewServer()

	_ = server.Register(state.New(log, l))
	_ = server.Register(batch.New(log, l))
	_ = server.Register(event.New(log, l))
	_ = server.Register(authorisation.New(log, l))
	_ = server.Register(node.New(log, l, start, version, rpcCount))

	return server
}
