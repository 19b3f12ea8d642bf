// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared set up for the RPC package tests
package fixtures

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"

	"github.com/jmt-genius/boxity/clock"
	"github.com/jmt-genius/boxity/identity"
	"github.com/jmt-genius/boxity/ledger"
	"github.com/jmt-genius/boxity/storage"
)

const (
	// LogCategory - logger channel for tests
	LogCategory = "testing"

	// Timestamp - the fixed clock value of a test ledger
	Timestamp = 1700000000

	testingDirName = "testing"
)

// SetupTestLogger - critical level logging to a throw-away directory
func SetupTestLogger() {
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

// TeardownTestLogger - stop logging and remove its files
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

// NewLedger - a ledger over a fresh database with a fixed clock
//
// call after SetupTestLogger and finish with TeardownLedger
func NewLedger() (*ledger.Ledger, error) {
	err := storage.Initialise(filepath.Join(testingDirName, "rpc.leveldb"), storage.ReadWrite)
	if nil != err {
		return nil, err
	}

	clk := clock.New(func() time.Time {
		return time.Unix(Timestamp, 0)
	})
	return ledger.New(ledger.PoolHandles(), storage.NewDBTransaction, clk, nil), nil
}

// NewInitialisedLedger - as NewLedger with the returned key pair as owner
func NewInitialisedLedger() (*ledger.Ledger, *identity.KeyPair, error) {
	l, err := NewLedger()
	if nil != err {
		return nil, nil, err
	}
	owner, err := identity.NewKeyPair()
	if nil != err {
		return nil, nil, err
	}
	_, err = l.Initialise(owner.Identity)
	if nil != err {
		return nil, nil, err
	}
	return l, owner, nil
}

// TeardownLedger - close the test database
func TeardownLedger() {
	storage.Finalise()
}

// Certificate - a fresh self-signed PEM certificate and private key
func Certificate() (string, string, error) {
	validUntil := time.Now().Add(24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair("boxityd test certificate", validUntil, false, []string{"127.0.0.1"})
	if nil != err {
		return "", "", err
	}
	return string(cert), string(key), nil
}
