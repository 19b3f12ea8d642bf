// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - JSON RPC over TLS for ledger clients
//
// services: Ledger, Batch, Event, Authorisation and Node, see the
// sub-packages of the same names (Ledger is in rpc/state)
//
// the same services are optionally reachable by HTTPS POST to
// /boxityd/rpc with node details from GET /boxityd/details
package rpc

import (
	"net/rpc"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/jmt-genius/boxity/counter"
	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/ledger"
	"github.com/jmt-genius/boxity/rpc/certificate"
	"github.com/jmt-genius/boxity/rpc/handler"
	"github.com/jmt-genius/boxity/rpc/listeners"
	"github.com/jmt-genius/boxity/rpc/server"
)

const (
	tlsName   = "client_rpc"
	httpsName = "https_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listener      listeners.Listener
	httpsListener listeners.Listener

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// number of open client connections
var connectionCountRPC counter.Counter

// Initialise - start the RPC listeners
//
// an empty HTTPS listen list leaves only the TLS RPC listener running
func Initialise(rpcConfiguration *listeners.RPCConfiguration, httpsConfiguration *listeners.HTTPSConfiguration, l *ledger.Ledger, version string) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to Start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	tlsConfig, certificateFingerprint, err := certificate.Load(log, tlsName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	start := time.Now().UTC()
	rpcServer := server.Create(log, version, start, &connectionCountRPC, l)

	// servers
	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&connectionCountRPC,
		rpcServer,
		tlsConfig,
		certificateFingerprint,
	)
	if nil != err {
		return err
	}
	err = rpcListener.Serve()
	if nil != err {
		_ = rpcListener.Close()
		return err
	}
	globalData.listener = rpcListener

	httpsListener, err := initialiseHTTPS(httpsConfiguration, log, l, rpcServer, start, version)
	if nil != err {
		_ = rpcListener.Close()
		return err
	}
	globalData.httpsListener = httpsListener

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop accepting connections
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	err := globalData.listener.Close()
	if nil != err {
		globalData.log.Errorf("close error: %s", err)
	}
	globalData.listener = nil

	if nil != globalData.httpsListener {
		err := globalData.httpsListener.Close()
		if nil != err {
			globalData.log.Errorf("https close error: %s", err)
		}
		globalData.httpsListener = nil
	}

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// ConnectionCount - number of open client connections
func ConnectionCount() uint64 {
	return connectionCountRPC.Uint64()
}

// returns nil when HTTPS is not configured
func initialiseHTTPS(
	configuration *listeners.HTTPSConfiguration,
	log *logger.L,
	l *ledger.Ledger,
	rpcServer *rpc.Server,
	start time.Time,
	version string,
) (listeners.Listener, error) {
	if nil == configuration || 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsName)
		return nil, nil
	}

	tlsConfig, fingerprint, err := certificate.Load(log, httpsName, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return nil, err
	}
	log.Infof("%s: SHA3-256 fingerprint: %x", httpsName, fingerprint)

	hdlr := handler.New(log, rpcServer, l, start, version, &connectionCountRPC, configuration.MaximumConnections)

	httpsListener, err := listeners.NewHTTPS(configuration, log, tlsConfig, hdlr)
	if nil != err {
		return nil, err
	}

	err = httpsListener.Serve()
	if nil != err {
		_ = httpsListener.Close()
		return nil, err
	}
	return httpsListener, nil
}
