// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - forward ledger notifications to subscribers
//
// every message on the broadcast queue is sent to a ZeroMQ PUB socket
// as a multipart [command, packed record] and, when a NATS server is
// configured, as JSON on the subject "<nats_subject>.<command>"
package publish

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/jmt-genius/boxity/background"
	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/messagebus"
	"github.com/jmt-genius/boxity/zmqutil"
)

// Configuration - a block of configuration data
type Configuration struct {
	Broadcast   []string `gluamapper:"broadcast" json:"broadcast"`
	PrivateKey  string   `gluamapper:"private_key" json:"private_key"`
	PublicKey   string   `gluamapper:"public_key" json:"public_key"`
	NatsURL     string   `gluamapper:"nats_url" json:"nats_url"`
	NatsSubject string   `gluamapper:"nats_subject" json:"nats_subject"`
}

// globals for background proccess
type publishData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	brdc broadcaster // forwards the broadcast queue to the sinks

	// for background
	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData publishData

// Initialise - start publishing the messages of a broadcast queue
func Initialise(configuration *Configuration, queue *messagebus.BroadcastQueue) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	if 0 == len(configuration.Broadcast) && "" == configuration.NatsURL {
		return fault.NoPublishTarget
	}

	globalData.log = logger.New("publish")
	globalData.log.Info("starting…")

	sinks := make([]sink, 0, 2)

	if 0 != len(configuration.Broadcast) {
		var privateKey, publicKey []byte
		if "" != configuration.PrivateKey {
			var err error
			privateKey, err = zmqutil.ReadPrivateKeyFile(configuration.PrivateKey)
			if nil != err {
				globalData.log.Errorf("read private key file: %q  error: %s", configuration.PrivateKey, err)
				return err
			}
			publicKey, err = zmqutil.ReadPublicKeyFile(configuration.PublicKey)
			if nil != err {
				globalData.log.Errorf("read public key file: %q  error: %s", configuration.PublicKey, err)
				return err
			}
			err = zmqutil.StartAuthentication()
			if nil != err {
				return err
			}
		}

		z, err := newZmqSink(globalData.log, privateKey, publicKey, configuration.Broadcast)
		if nil != err {
			return err
		}
		sinks = append(sinks, z)
	}

	if "" != configuration.NatsURL {
		n, err := newNatsSink(globalData.log, configuration.NatsURL, configuration.NatsSubject)
		if nil != err {
			globalData.log.Errorf("nats: %q  error: %s", configuration.NatsURL, err)
			for _, s := range sinks {
				s.close()
			}
			return err
		}
		sinks = append(sinks, n)
	}

	globalData.brdc.initialise(globalData.log, queue, sinks)

	// all data initialised
	globalData.initialised = true

	// start background processes
	globalData.log.Info("start background…")

	processes := background.Processes{
		&globalData.brdc,
	}

	globalData.background = background.Start(processes, globalData.log)

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// stop background
	globalData.background.Stop()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
