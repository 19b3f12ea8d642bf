// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - the Node RPC service
package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/jmt-genius/boxity/counter"
	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/record"
	"github.com/jmt-genius/boxity/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// StateReader - source of the ledger counters
type StateReader interface {
	State() (*record.LedgerState, error)
}

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	state   StateReader
	counter *counter.Counter
}

// New - create the Node service
func New(log *logger.L, state StateReader, start time.Time, version string, counter *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		state:   state,
		counter: counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Version     string       `json:"version"`
	Uptime      string       `json:"uptime"`
	RPCs        uint64       `json:"rpcs"`
	Initialised bool         `json:"initialised"`
	Ledger      LedgerCounts `json:"ledger"`
}

// LedgerCounts - ledger counters
type LedgerCounts struct {
	TotalBatches uint64 `json:"totalBatches,string"`
	NextEventId  uint64 `json:"nextEventId,string"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.RPCs = node.counter.Uint64()

	state, err := node.state.State()
	if fault.LedgerNotInitialised == err {
		return nil
	} else if nil != err {
		return err
	}

	reply.Initialised = true
	reply.Ledger = LedgerCounts{
		TotalBatches: state.TotalBatches,
		NextEventId:  state.NextEventId,
	}
	return nil
}
