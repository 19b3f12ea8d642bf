// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/jmt-genius/boxity/address"
	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/identity"
	"github.com/jmt-genius/boxity/record"
	"github.com/jmt-genius/boxity/storage"
)

// MaximumProvenanceCount - largest page returned by Provenance
const MaximumProvenanceCount = 100

// LogEvent - append a custody event to an existing batch
//
// any signer may log an event, the allowlist is not consulted
func (l *Ledger) LogEvent(loggedBy identity.Identity, batchId string, info EventInfo) (*record.BatchEvent, error) {
	err := validateEvent(&info)
	if nil != err {
		return nil, err
	}

	var event *record.BatchEvent

	err = l.transact(func(trx storage.Transaction) (string, record.Record, error) {
		batchAddress := address.ForBatch(batchId)

		err := l.checkBatchExists(trx, batchAddress)
		if nil != err {
			return "", nil, err
		}

		state, err := l.loadState(trx)
		if nil != err {
			return "", nil, err
		}

		id, err := state.IssueEventID()
		if nil != err {
			return "", nil, err
		}

		key := address.ForEvent(batchAddress, id)
		if trx.Has(l.pools.Events, key.Bytes()) {
			return "", nil, fault.EventAlreadyExists
		}

		err = l.recordRequest(trx, info.Request, key.Bytes())
		if nil != err {
			return "", nil, err
		}

		event = &record.BatchEvent{
			Id:              id,
			Batch:           batchAddress,
			Actor:           info.Actor,
			Role:            info.Role,
			Note:            info.Note,
			FirstViewImage:  info.FirstViewImage,
			SecondViewImage: info.SecondViewImage,
			EventHash:       info.EventHash,
			LoggedBy:        loggedBy,
			Timestamp:       l.clock.Now(),
		}
		packed, err := event.Pack()
		if nil != err {
			return "", nil, err
		}

		err = trx.Create(l.pools.Events, key.Bytes(), packed)
		if fault.IsErrExists(err) {
			return "", nil, fault.EventAlreadyExists
		} else if nil != err {
			return "", nil, err
		}

		err = trx.Create(l.pools.BatchEvents, provenanceKey(batchAddress, id), key.Bytes())
		if fault.IsErrExists(err) {
			return "", nil, fault.EventAlreadyExists
		} else if nil != err {
			return "", nil, err
		}

		l.storeTimestamp(trx, event.Timestamp)
		err = l.storeState(trx, state)
		if nil != err {
			return "", nil, err
		}

		notification := &record.EventLogged{
			BatchId:   batchId,
			EventId:   id,
			Actor:     event.Actor,
			Role:      event.Role,
			LoggedBy:  loggedBy,
			Timestamp: event.Timestamp,
		}
		return EventCommand, notification, nil
	})
	if nil != err {
		return nil, err
	}
	return event, nil
}

// Event - fetch one committed event of a batch
func (l *Ledger) Event(batchId string, id uint64) (*record.BatchEvent, error) {
	key := address.ForEvent(address.ForBatch(batchId), id)
	return l.eventAt(key.Bytes())
}

// Provenance - the events of one batch in id order
//
// returns up to count events with id >= start and the id to pass as
// start for the following page, zero when there are no more events
func (l *Ledger) Provenance(batchId string, start uint64, count int) ([]*record.BatchEvent, uint64, error) {
	if count <= 0 || count > MaximumProvenanceCount {
		return nil, 0, fault.InvalidCount
	}

	batchAddress := address.ForBatch(batchId)
	_, err := l.batchAt(batchAddress)
	if nil != err {
		return nil, 0, err
	}

	// one extra to find the start of the next page
	elements, err := l.pools.BatchEvents.NewFetchCursor().Within(batchAddress.Bytes()).Seek(idBytes(start)).Fetch(count + 1)
	if nil != err {
		return nil, 0, err
	}

	next := uint64(0)
	if len(elements) > count {
		next = binary.BigEndian.Uint64(elements[count].Key[address.Size:])
		elements = elements[:count]
	}

	events := make([]*record.BatchEvent, 0, len(elements))
	for _, e := range elements {
		event, err := l.eventAt(e.Value)
		if nil != err {
			l.log.Errorf("provenance index: %x error: %s", e.Key, err)
			return nil, 0, err
		}
		events = append(events, event)
	}
	return events, next, nil
}

func (l *Ledger) eventAt(key []byte) (*record.BatchEvent, error) {
	packed := l.pools.Events.Get(key)
	if nil == packed {
		return nil, fault.EventNotFound
	}
	r, err := unpackAs(packed, record.BatchEventTag)
	if nil != err {
		return nil, err
	}
	return r.(*record.BatchEvent), nil
}

// resolve a batch inside a transaction
func (l *Ledger) checkBatchExists(trx storage.Transaction, batchAddress address.Address) error {
	packed := trx.Get(l.pools.Batches, batchAddress.Bytes())
	if nil == packed {
		return fault.BatchNotFound
	}
	r, err := unpackAs(packed, record.BatchTag)
	if nil != err {
		return err
	}
	if !r.(*record.Batch).Exists {
		return fault.BatchNotFound
	}
	return nil
}

// batch address ++ big endian id, so a batch's events sort by id
func provenanceKey(batchAddress address.Address, id uint64) []byte {
	return append(batchAddress.Bytes(), idBytes(id)...)
}

func idBytes(id uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, id)
	return b
}
