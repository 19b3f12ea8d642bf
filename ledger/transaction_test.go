// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/jmt-genius/boxity/address"
	"github.com/jmt-genius/boxity/clock"
	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/ledger"
	"github.com/jmt-genius/boxity/record"
	"github.com/jmt-genius/boxity/storage"
	"github.com/jmt-genius/boxity/storage/mocks"
)

type mockPools struct {
	state          *mocks.MockHandle
	batches        *mocks.MockHandle
	events         *mocks.MockHandle
	batchEvents    *mocks.MockHandle
	authorisations *mocks.MockHandle
	requests       *mocks.MockHandle
}

func (m *mockPools) handles() ledger.Handles {
	return ledger.Handles{
		State:          m.state,
		Batches:        m.batches,
		Events:         m.events,
		BatchEvents:    m.batchEvents,
		Authorisations: m.authorisations,
		Requests:       m.requests,
	}
}

func setupMockLedger(t *testing.T) (*ledger.Ledger, *mocks.MockTransaction, *mockPools, *recorder, *gomock.Controller) {
	setupTestLogger()

	ctl := gomock.NewController(t)
	trx := mocks.NewMockTransaction(ctl)
	pools := &mockPools{
		state:          mocks.NewMockHandle(ctl),
		batches:        mocks.NewMockHandle(ctl),
		events:         mocks.NewMockHandle(ctl),
		batchEvents:    mocks.NewMockHandle(ctl),
		authorisations: mocks.NewMockHandle(ctl),
		requests:       mocks.NewMockHandle(ctl),
	}
	r := &recorder{}
	begin := func() (storage.Transaction, error) {
		return trx, nil
	}
	l := ledger.New(pools.handles(), begin, clock.New(nil), r.notify)
	return l, trx, pools, r, ctl
}

func TestCommitFailureSendsNothing(t *testing.T) {
	l, trx, pools, r, ctl := setupMockLedger(t)
	defer ctl.Finish()
	defer teardown(t)

	owner := newKeyPair(t).Identity
	packedState, _ := record.NewLedgerState(owner).Pack()
	batchKey := address.ForBatch("BATCH-1").Bytes()
	commitError := errors.New("disk full")

	gomock.InOrder(
		trx.EXPECT().Get(pools.state, address.ForState().Bytes()).Return(packedState).Times(1),
		trx.EXPECT().Has(pools.batches, batchKey).Return(false).Times(1),
		trx.EXPECT().Create(pools.batches, batchKey, gomock.Any()).Return(nil).Times(1),
		trx.EXPECT().Put(pools.state, address.ForClock().Bytes(), gomock.Any()).Times(1),
		trx.EXPECT().Put(pools.state, address.ForState().Bytes(), gomock.Any()).Times(1),
		trx.EXPECT().Commit().Return(commitError).Times(1),
		trx.EXPECT().Abort().Times(1),
	)

	_, err := l.CreateBatch(owner, widget("BATCH-1"))
	assert.Equal(t, commitError, err, "commit error returned")
	assert.Equal(t, 0, r.count(), "no notification")
}

func TestStoreOccupiedMapsToDuplicate(t *testing.T) {
	l, trx, pools, r, ctl := setupMockLedger(t)
	defer ctl.Finish()
	defer teardown(t)

	owner := newKeyPair(t).Identity
	user := newKeyPair(t).Identity
	packedState, _ := record.NewLedgerState(owner).Pack()

	gomock.InOrder(
		trx.EXPECT().Get(pools.state, gomock.Any()).Return(packedState).Times(1),
		trx.EXPECT().Create(pools.authorisations, address.ForUserAuthorisation(user).Bytes(), gomock.Any()).Return(fault.IdentifierOccupied).Times(1),
		trx.EXPECT().Abort().Times(1),
	)

	_, err := l.SetUserAuthorisation(owner, user, true)
	assert.Equal(t, fault.AuthorisationAlreadyExists, err, "duplicate")
	assert.Equal(t, 0, r.count(), "no notification")
}

func TestBeginFailure(t *testing.T) {
	setupTestLogger()
	defer teardown(t)

	inUse := func() (storage.Transaction, error) {
		return nil, fault.TransactionAlreadyInUse
	}
	l := ledger.New(ledger.Handles{}, inUse, clock.New(nil), nil)

	_, err := l.Initialise(newKeyPair(t).Identity)
	assert.Equal(t, fault.TransactionAlreadyInUse, err, "begin error")
}

func TestEventIdOverflow(t *testing.T) {
	l, trx, pools, r, ctl := setupMockLedger(t)
	defer ctl.Finish()
	defer teardown(t)

	owner := newKeyPair(t).Identity
	state := record.NewLedgerState(owner)
	state.NextEventId = math.MaxUint64
	packedState, _ := state.Pack()

	batchAddress := address.ForBatch("BATCH-1")
	batch := &record.Batch{
		BatchId:     "BATCH-1",
		ProductName: "Widget",
		Origin:      "FactoryA",
		Creator:     owner,
		Exists:      true,
	}
	packedBatch, _ := batch.Pack()

	// nothing is written: no Create, no Put and no Commit
	gomock.InOrder(
		trx.EXPECT().Get(pools.batches, batchAddress.Bytes()).Return(packedBatch).Times(1),
		trx.EXPECT().Get(pools.state, address.ForState().Bytes()).Return(packedState).Times(1),
		trx.EXPECT().Abort().Times(1),
	)

	_, err := l.LogEvent(owner, "BATCH-1", inspection("h1"))
	assert.Equal(t, fault.EventIdOverflow, err, "overflow")
	assert.True(t, fault.IsErrOverflow(err), "overflow class")
	assert.Equal(t, 0, r.count(), "no notification")
}

func TestBatchCountOverflow(t *testing.T) {
	l, trx, pools, r, ctl := setupMockLedger(t)
	defer ctl.Finish()
	defer teardown(t)

	owner := newKeyPair(t).Identity
	state := record.NewLedgerState(owner)
	state.TotalBatches = math.MaxUint64
	packedState, _ := state.Pack()
	batchKey := address.ForBatch("BATCH-1").Bytes()

	// the state is never stored and the pending batch is discarded
	gomock.InOrder(
		trx.EXPECT().Get(pools.state, address.ForState().Bytes()).Return(packedState).Times(1),
		trx.EXPECT().Has(pools.batches, batchKey).Return(false).Times(1),
		trx.EXPECT().Create(pools.batches, batchKey, gomock.Any()).Return(nil).Times(1),
		trx.EXPECT().Abort().Times(1),
	)

	_, err := l.CreateBatch(owner, widget("BATCH-1"))
	assert.Equal(t, fault.BatchCountOverflow, err, "overflow")
	assert.True(t, fault.IsErrOverflow(err), "overflow class")
	assert.Equal(t, 0, r.count(), "no notification")
}
