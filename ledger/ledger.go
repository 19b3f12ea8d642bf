// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/jmt-genius/boxity/address"
	"github.com/jmt-genius/boxity/clock"
	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/record"
	"github.com/jmt-genius/boxity/storage"
)

// notification commands
const (
	BatchCommand         = "batch"
	EventCommand         = "event"
	AuthorisationCommand = "authorisation"
)

// Handles - the pools used by the ledger
type Handles struct {
	State          storage.Handle
	Batches        storage.Handle
	Events         storage.Handle
	BatchEvents    storage.Handle
	Authorisations storage.Handle
	Requests       storage.Handle
}

// BeginFunc - opens the storage transaction for one operation
type BeginFunc func() (storage.Transaction, error)

// NotifyFunc - receives a packed notification after commit
type NotifyFunc func(command string, parameters ...[]byte)

// Ledger - the provenance state machine
type Ledger struct {
	sync.Mutex
	log    *logger.L
	pools  Handles
	begin  BeginFunc
	clock  clock.Clock
	notify NotifyFunc
}

// New - create a ledger over a set of pools
//
// notify may be nil if no notifications are wanted
func New(pools Handles, begin BeginFunc, clk clock.Clock, notify NotifyFunc) *Ledger {
	if nil == notify {
		notify = func(string, ...[]byte) {}
	}
	return &Ledger{
		log:    logger.New("ledger"),
		pools:  pools,
		begin:  begin,
		clock:  clk,
		notify: notify,
	}
}

// PoolHandles - the handles of the storage package pools
func PoolHandles() Handles {
	return Handles{
		State:          storage.Pool.State,
		Batches:        storage.Pool.Batches,
		Events:         storage.Pool.Events,
		BatchEvents:    storage.Pool.BatchEvents,
		Authorisations: storage.Pool.Authorisations,
		Requests:       storage.Pool.Requests,
	}
}

// run one mutating operation inside a transaction
//
// f returns the notification to send, nil for none
func (l *Ledger) transact(f func(trx storage.Transaction) (string, record.Record, error)) error {
	l.Lock()
	defer l.Unlock()

	trx, err := l.begin()
	if nil != err {
		l.log.Errorf("begin transaction error: %s", err)
		return err
	}

	command, notification, err := f(trx)
	if nil != err {
		trx.Abort()
		return err
	}

	var packed record.Packed
	if nil != notification {
		packed, err = notification.Pack()
		if nil != err {
			trx.Abort()
			return err
		}
	}

	err = trx.Commit()
	if nil != err {
		l.log.Errorf("commit error: %s", err)
		trx.Abort()
		return err
	}

	if nil != notification {
		l.log.Infof("%s: %+v", command, notification)
		l.notify(command, packed)
	}
	return nil
}

// mark a signed request as processed, nil skips the check
func (l *Ledger) recordRequest(trx storage.Transaction, request *address.Address, value []byte) error {
	if nil == request {
		return nil
	}
	err := trx.Create(l.pools.Requests, request.Bytes(), value)
	if fault.IsErrExists(err) {
		l.log.Warnf("request: %s already processed", request)
		return fault.RequestAlreadyProcessed
	}
	return err
}

// persist the newest issued timestamp so a restart can restore the
// clock floor
func (l *Ledger) storeTimestamp(trx storage.Transaction, timestamp uint64) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, timestamp)
	trx.Put(l.pools.State, address.ForClock().Bytes(), b)
}

// LastTimestamp - the newest timestamp stored, zero for none
func (l *Ledger) LastTimestamp() uint64 {
	b := l.pools.State.Get(address.ForClock().Bytes())
	if 8 != len(b) {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// unpack a stored record of the expected type
func unpackAs(packed []byte, tag record.TagType) (record.Record, error) {
	r, _, err := record.Packed(packed).Unpack()
	if nil != err {
		return nil, err
	}
	ok := false
	switch r.(type) {
	case *record.LedgerState:
		ok = record.LedgerStateTag == tag
	case *record.Batch:
		ok = record.BatchTag == tag
	case *record.BatchEvent:
		ok = record.BatchEventTag == tag
	case *record.UserAuthorisation:
		ok = record.UserAuthorisationTag == tag
	}
	if !ok {
		return nil, fault.UnknownRecordType
	}
	return r, nil
}
