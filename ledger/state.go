// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/jmt-genius/boxity/address"
	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/identity"
	"github.com/jmt-genius/boxity/record"
	"github.com/jmt-genius/boxity/storage"
)

// Initialise - create the ledger state with its owner
//
// this can succeed only once for a ledger
func (l *Ledger) Initialise(owner identity.Identity) (*record.LedgerState, error) {
	state := record.NewLedgerState(owner)

	err := l.transact(func(trx storage.Transaction) (string, record.Record, error) {
		packed, err := state.Pack()
		if nil != err {
			return "", nil, err
		}

		err = trx.Create(l.pools.State, address.ForState().Bytes(), packed)
		if fault.IsErrExists(err) {
			return "", nil, fault.AlreadyInitialised
		} else if nil != err {
			return "", nil, err
		}
		return "", nil, nil
	})
	if nil != err {
		return nil, err
	}

	l.log.Infof("initialised with owner: %s", owner)
	return state, nil
}

// State - the committed ledger state
func (l *Ledger) State() (*record.LedgerState, error) {
	packed := l.pools.State.Get(address.ForState().Bytes())
	if nil == packed {
		return nil, fault.LedgerNotInitialised
	}
	r, err := unpackAs(packed, record.LedgerStateTag)
	if nil != err {
		return nil, err
	}
	return r.(*record.LedgerState), nil
}

// IsInitialised - true once the ledger state exists
func (l *Ledger) IsInitialised() bool {
	return l.pools.State.Has(address.ForState().Bytes())
}

// read the state including any pending change
func (l *Ledger) loadState(trx storage.Transaction) (*record.LedgerState, error) {
	packed := trx.Get(l.pools.State, address.ForState().Bytes())
	if nil == packed {
		return nil, fault.LedgerNotInitialised
	}
	r, err := unpackAs(packed, record.LedgerStateTag)
	if nil != err {
		return nil, err
	}
	return r.(*record.LedgerState), nil
}

func (l *Ledger) storeState(trx storage.Transaction, state *record.LedgerState) error {
	packed, err := state.Pack()
	if nil != err {
		return err
	}
	trx.Put(l.pools.State, address.ForState().Bytes(), packed)
	return nil
}
