// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmt-genius/boxity/address"
	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/ledger"
	"github.com/jmt-genius/boxity/record"
)

func TestInitialise(t *testing.T) {
	l, _ := setup(t)
	defer teardown(t)

	assert.False(t, l.IsInitialised(), "before genesis")
	_, err := l.State()
	assert.Equal(t, fault.LedgerNotInitialised, err, "state before genesis")

	owner := newKeyPair(t).Identity
	state, err := l.Initialise(owner)
	assert.Nil(t, err, "initialise")
	assert.Equal(t, owner, state.Owner, "owner")
	assert.Equal(t, uint64(0), state.TotalBatches, "total batches")
	assert.Equal(t, uint64(1), state.NextEventId, "next event id")

	stored, err := l.State()
	assert.Nil(t, err, "state")
	assert.Equal(t, state, stored, "stored state")
	assert.True(t, l.IsInitialised(), "after genesis")

	other := newKeyPair(t).Identity
	_, err = l.Initialise(other)
	assert.Equal(t, fault.AlreadyInitialised, err, "second initialise")
	assert.True(t, fault.IsErrExists(err), "exists class")

	stored, _ = l.State()
	assert.Equal(t, owner, stored.Owner, "owner unchanged")
}

func TestOperationsBeforeGenesis(t *testing.T) {
	l, r := setup(t)
	defer teardown(t)

	creator := newKeyPair(t).Identity

	_, err := l.CreateBatch(creator, widget("BATCH-1"))
	assert.Equal(t, fault.LedgerNotInitialised, err, "create batch")

	_, err = l.SetUserAuthorisation(creator, creator, true)
	assert.Equal(t, fault.LedgerNotInitialised, err, "authorise")

	_, err = l.LogEvent(creator, "BATCH-1", inspection("h"))
	assert.Equal(t, fault.BatchNotFound, err, "log event")

	assert.Equal(t, 0, r.count(), "no notifications")
}

func TestCreateBatch(t *testing.T) {
	l, r, _ := setupInitialised(t)
	defer teardown(t)

	creator := newKeyPair(t).Identity

	batch, err := l.CreateBatch(creator, widget("BATCH-1"))
	assert.Nil(t, err, "create")
	assert.Equal(t, "BATCH-1", batch.BatchId, "batch id")
	assert.Equal(t, creator, batch.Creator, "creator")
	assert.Equal(t, uint64(testTimestamp), batch.CreatedAt, "created at")
	assert.True(t, batch.Exists, "exists")

	stored, err := l.Batch("BATCH-1")
	assert.Nil(t, err, "read back")
	assert.Equal(t, batch, stored, "stored batch")

	state, _ := l.State()
	assert.Equal(t, uint64(1), state.TotalBatches, "total batches")

	assert.Equal(t, []string{ledger.BatchCommand}, r.commands, "notification command")
	assert.Equal(t, []record.Record{
		&record.BatchCreated{
			BatchId:   "BATCH-1",
			Creator:   creator,
			Timestamp: testTimestamp,
		},
	}, r.records, "notification")
}

func TestCreateBatchDuplicate(t *testing.T) {
	l, r, _ := setupInitialised(t)
	defer teardown(t)

	creator := newKeyPair(t).Identity
	other := newKeyPair(t).Identity

	first, err := l.CreateBatch(creator, widget("BATCH-1"))
	assert.Nil(t, err, "first create")

	info := widget("BATCH-1")
	info.ProductName = "Gadget"
	_, err = l.CreateBatch(other, info)
	assert.Equal(t, fault.BatchAlreadyExists, err, "duplicate")
	assert.True(t, fault.IsErrExists(err), "exists class")

	state, _ := l.State()
	assert.Equal(t, uint64(1), state.TotalBatches, "count not increased")

	stored, _ := l.Batch("BATCH-1")
	assert.Equal(t, first, stored, "original kept")
	assert.Equal(t, 1, r.count(), "one notification")
}

func TestCreateBatchValidation(t *testing.T) {
	l, r, _ := setupInitialised(t)
	defer teardown(t)

	creator := newKeyPair(t).Identity

	noProduct := widget("B-1")
	noProduct.ProductName = ""
	noOrigin := widget("B-2")
	noOrigin.Origin = ""
	neither := widget("B-3")
	neither.ProductName = ""
	neither.Origin = ""
	longSku := widget("B-4")
	longSku.Sku = strings.Repeat("s", record.MaxSkuLength+1)
	longId := widget(strings.Repeat("b", record.MaxBatchIdLength+1))
	longBaseline := widget("B-5")
	longBaseline.SecondViewBaseline = strings.Repeat("i", record.MaxBaselineLength+1)

	items := []struct {
		info ledger.BatchInfo
		err  error
	}{
		{noProduct, fault.EmptyProductName},
		{noOrigin, fault.EmptyOrigin},
		{neither, fault.EmptyProductName},
		{longSku, fault.SkuTooLong},
		{longId, fault.BatchIdTooLong},
		{longBaseline, fault.BaselineTooLong},
	}

	for i, item := range items {
		_, err := l.CreateBatch(creator, item.info)
		assert.Equal(t, item.err, err, "%d: error", i)

		_, err = l.Batch(item.info.BatchId)
		assert.Equal(t, fault.BatchNotFound, err, "%d: no record", i)
	}

	state, _ := l.State()
	assert.Equal(t, uint64(0), state.TotalBatches, "count unchanged")
	assert.Equal(t, 0, r.count(), "no notifications")

	// optional fields may be empty
	minimal := ledger.BatchInfo{BatchId: "B-6", ProductName: "p", Origin: "o"}
	_, err := l.CreateBatch(creator, minimal)
	assert.Nil(t, err, "minimal batch")
}

func TestTotalBatchesCountsSuccesses(t *testing.T) {
	l, _, _ := setupInitialised(t)
	defer teardown(t)

	creator := newKeyPair(t).Identity

	k := 0
	for i := 0; i < 20; i += 1 {
		info := widget(fmt.Sprintf("BATCH-%d", i%7))
		if 0 == i%5 {
			info.Origin = ""
		}
		_, err := l.CreateBatch(creator, info)
		if nil == err {
			k += 1
		}
	}

	state, _ := l.State()
	assert.Equal(t, uint64(k), state.TotalBatches, "total batches")
	assert.Equal(t, 7, k, "distinct ids created")
}

func TestLogEvent(t *testing.T) {
	l, r, _ := setupInitialised(t)
	defer teardown(t)

	creator := newKeyPair(t).Identity
	loggedBy := newKeyPair(t).Identity

	_, err := l.CreateBatch(creator, widget("BATCH-1"))
	assert.Nil(t, err, "create")

	event, err := l.LogEvent(loggedBy, "BATCH-1", inspection("hash1"))
	assert.Nil(t, err, "log")
	assert.Equal(t, uint64(1), event.Id, "event id")
	assert.Equal(t, address.ForBatch("BATCH-1"), event.Batch, "batch address")
	assert.Equal(t, loggedBy, event.LoggedBy, "logged by")
	assert.Equal(t, uint64(testTimestamp), event.Timestamp, "timestamp")

	stored, err := l.Event("BATCH-1", 1)
	assert.Nil(t, err, "read back")
	assert.Equal(t, event, stored, "stored event")

	_, err = l.Event("BATCH-1", 2)
	assert.Equal(t, fault.EventNotFound, err, "missing event")

	state, _ := l.State()
	assert.Equal(t, uint64(2), state.NextEventId, "next event id")

	assert.Equal(t, []string{ledger.BatchCommand, ledger.EventCommand}, r.commands, "commands")
	assert.Equal(t, &record.EventLogged{
		BatchId:   "BATCH-1",
		EventId:   1,
		Actor:     "Alice",
		Role:      "Inspector",
		LoggedBy:  loggedBy,
		Timestamp: testTimestamp,
	}, r.records[1], "notification")
}

func TestLogEventMissingBatch(t *testing.T) {
	l, r, _ := setupInitialised(t)
	defer teardown(t)

	loggedBy := newKeyPair(t).Identity

	_, err := l.LogEvent(loggedBy, "NO-SUCH-BATCH", inspection("h"))
	assert.Equal(t, fault.BatchNotFound, err, "missing batch")
	assert.True(t, fault.IsErrNotFound(err), "not found class")

	state, _ := l.State()
	assert.Equal(t, uint64(1), state.NextEventId, "next event id unchanged")
	assert.Equal(t, 0, r.count(), "no notifications")
}

func TestLogEventValidation(t *testing.T) {
	l, _, _ := setupInitialised(t)
	defer teardown(t)

	loggedBy := newKeyPair(t).Identity
	_, err := l.CreateBatch(loggedBy, widget("BATCH-1"))
	assert.Nil(t, err, "create")

	blank := func(f func(info *ledger.EventInfo)) ledger.EventInfo {
		info := inspection("h")
		f(&info)
		return info
	}

	items := []struct {
		info ledger.EventInfo
		err  error
	}{
		{blank(func(i *ledger.EventInfo) { i.Actor = "" }), fault.EmptyActor},
		{blank(func(i *ledger.EventInfo) { i.Role = "" }), fault.EmptyRole},
		{blank(func(i *ledger.EventInfo) { i.Note = "" }), fault.EmptyNote},
		{blank(func(i *ledger.EventInfo) { i.EventHash = "" }), fault.EmptyEventHash},
		{blank(func(i *ledger.EventInfo) { i.Actor = ""; i.EventHash = "" }), fault.EmptyActor},
		{blank(func(i *ledger.EventInfo) { i.Note = strings.Repeat("n", record.MaxNoteLength+1) }), fault.NoteTooLong},
		{blank(func(i *ledger.EventInfo) { i.EventHash = strings.Repeat("h", record.MaxEventHashLength+1) }), fault.EventHashTooLong},
		{blank(func(i *ledger.EventInfo) { i.FirstViewImage = strings.Repeat("i", record.MaxImageLength+1) }), fault.ImageTooLong},
	}

	for i, item := range items {
		_, err := l.LogEvent(loggedBy, "BATCH-1", item.info)
		assert.Equal(t, item.err, err, "%d: error", i)
	}

	// a validation error also precedes the batch lookup
	_, err = l.LogEvent(loggedBy, "NO-SUCH-BATCH", blank(func(i *ledger.EventInfo) { i.Role = "" }))
	assert.Equal(t, fault.EmptyRole, err, "validation first")

	state, _ := l.State()
	assert.Equal(t, uint64(1), state.NextEventId, "no id consumed")

	// optional images may be empty
	event, err := l.LogEvent(loggedBy, "BATCH-1", blank(func(i *ledger.EventInfo) { i.FirstViewImage = ""; i.SecondViewImage = "" }))
	assert.Nil(t, err, "no images")
	assert.Equal(t, uint64(1), event.Id, "first id after failures")
}

func TestEventIdsAreSequential(t *testing.T) {
	l, _, _ := setupInitialised(t)
	defer teardown(t)

	creator := newKeyPair(t).Identity
	batches := []string{"A", "B", "C"}
	for _, b := range batches {
		_, err := l.CreateBatch(creator, widget(b))
		assert.Nil(t, err, "create: %s", b)
	}

	n := 30
	for i := 0; i < n; i += 1 {
		// interleave failures
		_, err := l.LogEvent(creator, "MISSING", inspection("h"))
		assert.Equal(t, fault.BatchNotFound, err, "missing batch")

		event, err := l.LogEvent(creator, batches[i%len(batches)], inspection(fmt.Sprintf("h%d", i)))
		assert.Nil(t, err, "log: %d", i)
		assert.Equal(t, uint64(i+1), event.Id, "event id: %d", i)
	}

	state, _ := l.State()
	assert.Equal(t, uint64(n+1), state.NextEventId, "next event id")
}

func TestProvenance(t *testing.T) {
	l, _, _ := setupInitialised(t)
	defer teardown(t)

	creator := newKeyPair(t).Identity
	for _, b := range []string{"A", "B"} {
		_, err := l.CreateBatch(creator, widget(b))
		assert.Nil(t, err, "create: %s", b)
	}

	// A gets the odd ids, B the even ones
	for i := 0; i < 10; i += 1 {
		batchId := "A"
		if 1 == i%2 {
			batchId = "B"
		}
		_, err := l.LogEvent(creator, batchId, inspection(fmt.Sprintf("h%d", i)))
		assert.Nil(t, err, "log: %d", i)
	}

	events, next, err := l.Provenance("A", 0, 3)
	assert.Nil(t, err, "first page")
	assert.Equal(t, 3, len(events), "first page length")
	assert.Equal(t, []uint64{1, 3, 5}, ids(events), "first page ids")
	assert.Equal(t, uint64(7), next, "next start")

	events, next, err = l.Provenance("A", next, 3)
	assert.Nil(t, err, "second page")
	assert.Equal(t, []uint64{7, 9}, ids(events), "second page ids")
	assert.Equal(t, uint64(0), next, "no more")

	events, _, err = l.Provenance("B", 0, ledger.MaximumProvenanceCount)
	assert.Nil(t, err, "batch B")
	assert.Equal(t, []uint64{2, 4, 6, 8, 10}, ids(events), "batch B ids")
	for _, e := range events {
		assert.Equal(t, address.ForBatch("B"), e.Batch, "event belongs to B")
	}

	_, _, err = l.Provenance("C", 0, 10)
	assert.Equal(t, fault.BatchNotFound, err, "missing batch")

	_, _, err = l.Provenance("A", 0, 0)
	assert.Equal(t, fault.InvalidCount, err, "zero count")
	_, _, err = l.Provenance("A", 0, ledger.MaximumProvenanceCount+1)
	assert.Equal(t, fault.InvalidCount, err, "count too large")
}

func ids(events []*record.BatchEvent) []uint64 {
	result := make([]uint64, len(events))
	for i, e := range events {
		result[i] = e.Id
	}
	return result
}

func TestSetUserAuthorisation(t *testing.T) {
	l, r, owner := setupInitialised(t)
	defer teardown(t)

	user := newKeyPair(t).Identity

	auth, err := l.SetUserAuthorisation(owner, user, true)
	assert.Nil(t, err, "authorise")
	assert.Equal(t, &record.UserAuthorisation{User: user, Authorised: true}, auth, "record")

	stored, err := l.Authorisation(user)
	assert.Nil(t, err, "read back")
	assert.Equal(t, auth, stored, "stored")

	assert.Equal(t, []string{ledger.AuthorisationCommand}, r.commands, "command")
	assert.Equal(t, &record.UserAuthorised{User: user, Authorised: true}, r.records[0], "notification")

	// creation only, even with a different flag
	_, err = l.SetUserAuthorisation(owner, user, false)
	assert.Equal(t, fault.AuthorisationAlreadyExists, err, "second authorisation")
	stored, _ = l.Authorisation(user)
	assert.True(t, stored.Authorised, "flag unchanged")

	// an explicit false entry is still an entry
	denied := newKeyPair(t).Identity
	_, err = l.SetUserAuthorisation(owner, denied, false)
	assert.Nil(t, err, "deny")
	stored, err = l.Authorisation(denied)
	assert.Nil(t, err, "read denied")
	assert.False(t, stored.Authorised, "denied flag")
}

func TestSetUserAuthorisationNotOwner(t *testing.T) {
	l, r, _ := setupInitialised(t)
	defer teardown(t)

	intruder := newKeyPair(t).Identity
	user := newKeyPair(t).Identity

	_, err := l.SetUserAuthorisation(intruder, user, true)
	assert.Equal(t, fault.Unauthorised, err, "not owner")
	assert.True(t, fault.IsErrAuthorisation(err), "authorisation class")

	_, err = l.Authorisation(user)
	assert.Equal(t, fault.AuthorisationNotFound, err, "no record")
	assert.Equal(t, 0, r.count(), "no notifications")

	// the owner may authorise themselves
	state, _ := l.State()
	_, err = l.SetUserAuthorisation(state.Owner, state.Owner, true)
	assert.Nil(t, err, "self authorise")
}

func TestLogEventIgnoresAllowlist(t *testing.T) {
	l, _, owner := setupInitialised(t)
	defer teardown(t)

	denied := newKeyPair(t).Identity
	stranger := newKeyPair(t).Identity

	_, err := l.CreateBatch(owner, widget("BATCH-1"))
	assert.Nil(t, err, "create")
	_, err = l.SetUserAuthorisation(owner, denied, false)
	assert.Nil(t, err, "deny")

	_, err = l.LogEvent(denied, "BATCH-1", inspection("h1"))
	assert.Nil(t, err, "denied user logs")
	_, err = l.LogEvent(stranger, "BATCH-1", inspection("h2"))
	assert.Nil(t, err, "unknown user logs")
}

func TestExampleScenario(t *testing.T) {
	l, _ := setup(t)
	defer teardown(t)

	owner := newKeyPair(t).Identity
	notOwner := newKeyPair(t).Identity
	carol := newKeyPair(t).Identity
	dave := newKeyPair(t).Identity

	_, err := l.Initialise(owner)
	assert.Nil(t, err, "initialise")

	_, err = l.CreateBatch(owner, ledger.BatchInfo{
		BatchId:            "BATCH-1",
		ProductName:        "Widget",
		Sku:                "SKU1",
		Origin:             "FactoryA",
		FirstViewBaseline:  "img1",
		SecondViewBaseline: "img2",
	})
	assert.Nil(t, err, "create batch")
	state, _ := l.State()
	assert.Equal(t, uint64(1), state.TotalBatches, "total batches")

	event, err := l.LogEvent(owner, "BATCH-1", ledger.EventInfo{
		Actor: "Alice", Role: "Inspector", Note: "ok",
		FirstViewImage: "i1", SecondViewImage: "i2", EventHash: "hash1",
	})
	assert.Nil(t, err, "first event")
	assert.Equal(t, uint64(1), event.Id, "first event id")

	event, err = l.LogEvent(owner, "BATCH-1", ledger.EventInfo{
		Actor: "Bob", Role: "Shipper", Note: "shipped",
		FirstViewImage: "i3", SecondViewImage: "i4", EventHash: "hash2",
	})
	assert.Nil(t, err, "second event")
	assert.Equal(t, uint64(2), event.Id, "second event id")

	_, err = l.SetUserAuthorisation(owner, carol, true)
	assert.Nil(t, err, "authorise carol")

	_, err = l.SetUserAuthorisation(notOwner, dave, true)
	assert.True(t, fault.IsErrAuthorisation(err), "authorise dave")
	_, err = l.Authorisation(dave)
	assert.Equal(t, fault.AuthorisationNotFound, err, "no dave record")

	_, err = l.LogEvent(owner, "BATCH-2", ledger.EventInfo{
		Actor: "Eve", Role: "Shipper", Note: "lost", EventHash: "hash3",
	})
	assert.True(t, fault.IsErrNotFound(err), "missing batch")

	state, _ = l.State()
	assert.Equal(t, uint64(3), state.NextEventId, "next event id")
}

func TestLogEventRequestRecordedOnce(t *testing.T) {
	l, r, owner := setupInitialised(t)
	defer teardown(t)

	_, err := l.CreateBatch(owner, widget("BATCH-1"))
	assert.Nil(t, err, "create batch")

	request := address.ForRequest([]byte("signed event request"))
	info := inspection("h1")
	info.Request = &request

	event, err := l.LogEvent(owner, "BATCH-1", info)
	assert.Nil(t, err, "first log")
	assert.Equal(t, uint64(1), event.Id, "event id")
	notified := r.count()

	_, err = l.LogEvent(owner, "BATCH-1", info)
	assert.Equal(t, fault.RequestAlreadyProcessed, err, "second log of the same request")
	assert.True(t, fault.IsErrExists(err), "exists class")
	assert.Equal(t, notified, r.count(), "no notification")

	state, _ := l.State()
	assert.Equal(t, uint64(2), state.NextEventId, "event id not consumed")

	events, _, err := l.Provenance("BATCH-1", 0, 10)
	assert.Nil(t, err, "provenance")
	assert.Equal(t, 1, len(events), "one event")

	// no request key means no replay check
	_, err = l.LogEvent(owner, "BATCH-1", inspection("h1"))
	assert.Nil(t, err, "log without request key")
}

func TestLastTimestamp(t *testing.T) {
	l, _, owner := setupInitialised(t)
	defer teardown(t)

	assert.Equal(t, uint64(0), l.LastTimestamp(), "before any record")

	_, err := l.CreateBatch(owner, widget("BATCH-1"))
	assert.Nil(t, err, "create batch")
	assert.Equal(t, uint64(testTimestamp), l.LastTimestamp(), "after batch")

	_, err = l.LogEvent(owner, "BATCH-1", inspection("h1"))
	assert.Nil(t, err, "log event")
	assert.Equal(t, uint64(testTimestamp), l.LastTimestamp(), "after event")

	_, err = l.CreateBatch(owner, widget("BATCH-1"))
	assert.Equal(t, fault.BatchAlreadyExists, err, "duplicate batch")
	assert.Equal(t, uint64(testTimestamp), l.LastTimestamp(), "after failed operation")
}
