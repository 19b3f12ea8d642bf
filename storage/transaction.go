// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"

	"github.com/jmt-genius/boxity/fault"
)

// Transaction - atomic group of writes across all pools
//
// reads through a transaction see its own pending writes
type Transaction interface {
	Begin() error
	Get(Handle, []byte) []byte
	Has(Handle, []byte) bool
	Create(Handle, []byte, []byte) error
	Put(Handle, []byte, []byte)
	Commit() error
	Abort()
}

// TransactionData - the single database transaction
type TransactionData struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &TransactionData{
		access: access,
	}
}

// Begin - fails if a transaction is already open
func (t *TransactionData) Begin() error {
	return t.access.Begin()
}

// Get - read a value, nil if not present
func (t *TransactionData) Get(handle Handle, key []byte) []byte {
	value, err := t.access.Get(prefixKey(handle.Prefix(), key))
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("transaction.Get", err)
	return value
}

// Has - check for a key in the committed data or the pending writes
func (t *TransactionData) Has(handle Handle, key []byte) bool {
	found, err := t.access.Has(prefixKey(handle.Prefix(), key))
	logger.PanicIfError("transaction.Has", err)
	return found
}

// Create - write a value only if the key is unoccupied
func (t *TransactionData) Create(handle Handle, key []byte, value []byte) error {
	if t.Has(handle, key) {
		return fault.IdentifierOccupied
	}
	t.Put(handle, key, value)
	return nil
}

// Put - write a value, replacing any existing one
func (t *TransactionData) Put(handle Handle, key []byte, value []byte) {
	t.access.Put(prefixKey(handle.Prefix(), key), value)
}

// Commit - make all pending writes durable at once
func (t *TransactionData) Commit() error {
	return t.access.Commit()
}

// Abort - discard all pending writes
func (t *TransactionData) Abort() {
	t.access.Abort()
}
