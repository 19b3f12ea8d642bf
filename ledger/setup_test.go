// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/jmt-genius/boxity/clock"
	"github.com/jmt-genius/boxity/identity"
	"github.com/jmt-genius/boxity/ledger"
	"github.com/jmt-genius/boxity/record"
	"github.com/jmt-genius/boxity/storage"
)

const (
	testingDirName = "testing"
	testTimestamp  = 1700000000
)

// notifications received by a ledger under test
type recorder struct {
	sync.Mutex
	commands []string
	records  []record.Record
}

func (r *recorder) notify(command string, parameters ...[]byte) {
	r.Lock()
	defer r.Unlock()
	r.commands = append(r.commands, command)
	for _, p := range parameters {
		item, _, err := record.Packed(p).Unpack()
		if nil != err {
			panic(err)
		}
		r.records = append(r.records, item)
	}
}

func (r *recorder) count() int {
	r.Lock()
	defer r.Unlock()
	return len(r.commands)
}

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

// a ledger over a fresh database
func setup(t *testing.T) (*ledger.Ledger, *recorder) {
	setupTestLogger()

	err := storage.Initialise(filepath.Join(testingDirName, "ledger.leveldb"), storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	r := &recorder{}
	clk := clock.New(func() time.Time {
		return time.Unix(testTimestamp, 0)
	})
	l := ledger.New(ledger.PoolHandles(), storage.NewDBTransaction, clk, r.notify)
	return l, r
}

func teardown(t *testing.T) {
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

func newKeyPair(t *testing.T) *identity.KeyPair {
	keyPair, err := identity.NewKeyPair()
	if nil != err {
		t.Fatalf("key pair error: %s", err)
	}
	return keyPair
}

// a ledger that has been initialised, returning the owner
func setupInitialised(t *testing.T) (*ledger.Ledger, *recorder, identity.Identity) {
	l, r := setup(t)
	owner := newKeyPair(t).Identity
	_, err := l.Initialise(owner)
	if nil != err {
		t.Fatalf("initialise error: %s", err)
	}
	return l, r, owner
}

func widget(batchId string) ledger.BatchInfo {
	return ledger.BatchInfo{
		BatchId:            batchId,
		ProductName:        "Widget",
		Sku:                "SKU1",
		Origin:             "FactoryA",
		FirstViewBaseline:  "img1",
		SecondViewBaseline: "img2",
	}
}

func inspection(hash string) ledger.EventInfo {
	return ledger.EventInfo{
		Actor:           "Alice",
		Role:            "Inspector",
		Note:            "ok",
		FirstViewImage:  "i1",
		SecondViewImage: "i2",
		EventHash:       hash,
	}
}
