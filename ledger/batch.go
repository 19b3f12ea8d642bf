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

// CreateBatch - register a new batch
//
// the batch id alone decides the record address so each id can be
// registered only once
func (l *Ledger) CreateBatch(creator identity.Identity, info BatchInfo) (*record.Batch, error) {
	err := validateBatch(&info)
	if nil != err {
		return nil, err
	}

	var batch *record.Batch

	err = l.transact(func(trx storage.Transaction) (string, record.Record, error) {
		state, err := l.loadState(trx)
		if nil != err {
			return "", nil, err
		}

		key := address.ForBatch(info.BatchId).Bytes()
		if trx.Has(l.pools.Batches, key) {
			return "", nil, fault.BatchAlreadyExists
		}

		batch = &record.Batch{
			BatchId:            info.BatchId,
			ProductName:        info.ProductName,
			Sku:                info.Sku,
			Origin:             info.Origin,
			FirstViewBaseline:  info.FirstViewBaseline,
			SecondViewBaseline: info.SecondViewBaseline,
			Creator:            creator,
			CreatedAt:          l.clock.Now(),
			Exists:             true,
		}
		packed, err := batch.Pack()
		if nil != err {
			return "", nil, err
		}

		err = trx.Create(l.pools.Batches, key, packed)
		if fault.IsErrExists(err) {
			return "", nil, fault.BatchAlreadyExists
		} else if nil != err {
			return "", nil, err
		}

		err = state.IncrementBatchCount()
		if nil != err {
			return "", nil, err
		}
		l.storeTimestamp(trx, batch.CreatedAt)
		err = l.storeState(trx, state)
		if nil != err {
			return "", nil, err
		}

		notification := &record.BatchCreated{
			BatchId:   batch.BatchId,
			Creator:   batch.Creator,
			Timestamp: batch.CreatedAt,
		}
		return BatchCommand, notification, nil
	})
	if nil != err {
		return nil, err
	}
	return batch, nil
}

// Batch - fetch a committed batch by its id
func (l *Ledger) Batch(batchId string) (*record.Batch, error) {
	return l.batchAt(address.ForBatch(batchId))
}

func (l *Ledger) batchAt(a address.Address) (*record.Batch, error) {
	packed := l.pools.Batches.Get(a.Bytes())
	if nil == packed {
		return nil, fault.BatchNotFound
	}
	r, err := unpackAs(packed, record.BatchTag)
	if nil != err {
		return nil, err
	}
	batch := r.(*record.Batch)
	if !batch.Exists {
		return nil, fault.BatchNotFound
	}
	return batch, nil
}
