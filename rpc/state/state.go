// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package state - the Ledger RPC service: genesis and ledger state
package state

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/identity"
	"github.com/jmt-genius/boxity/record"
	"github.com/jmt-genius/boxity/rpc/ratelimit"
)

const (
	rateLimitLedger = 200
	rateBurstLedger = 100
)

// Genesis - the ledger operations this service needs
type Genesis interface {
	Initialise(owner identity.Identity) (*record.LedgerState, error)
	State() (*record.LedgerState, error)
}

// Ledger - type for RPC calls
type Ledger struct {
	Log     *logger.L
	Limiter *rate.Limiter
	genesis Genesis
}

// New - create the Ledger service
func New(log *logger.L, genesis Genesis) *Ledger {
	return &Ledger{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitLedger, rateBurstLedger),
		genesis: genesis,
	}
}

// ---

// InitialiseReply - result of genesis
type InitialiseReply struct {
	State *record.LedgerState `json:"state"`
}

// Initialise - create the ledger with the signer as owner
func (ledger *Ledger) Initialise(arguments *record.GenesisRequest, reply *InitialiseReply) error {

	if err := ratelimit.Limit(ledger.Limiter); nil != err {
		return err
	}

	if nil == arguments || arguments.Owner.IsZero() {
		return fault.MissingParameters
	}

	_, err := arguments.Pack()
	if nil != err {
		ledger.Log.Warnf("genesis owner: %s  error: %s", arguments.Owner, err)
		return err
	}

	state, err := ledger.genesis.Initialise(arguments.Owner)
	if nil != err {
		return err
	}
	reply.State = state
	return nil
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - the committed ledger state
type InfoReply struct {
	Initialised bool                `json:"initialised"`
	State       *record.LedgerState `json:"state,omitempty"`
}

// Info - return the ledger state, not an error before genesis
func (ledger *Ledger) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(ledger.Limiter); nil != err {
		return err
	}

	state, err := ledger.genesis.State()
	if fault.LedgerNotInitialised == err {
		reply.Initialised = false
		return nil
	} else if nil != err {
		return err
	}

	reply.Initialised = true
	reply.State = state
	return nil
}
