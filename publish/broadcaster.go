// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"github.com/bitmark-inc/logger"

	"github.com/jmt-genius/boxity/messagebus"
)

// a destination for notifications
type sink interface {
	send(item *messagebus.Message) error
	close()
}

type broadcaster struct {
	log   *logger.L
	queue *messagebus.BroadcastQueue
	in    <-chan messagebus.Message
	sinks []sink
}

// register on the queue now so nothing sent after start up is missed
func (brdc *broadcaster) initialise(log *logger.L, queue *messagebus.BroadcastQueue, sinks []sink) {
	brdc.log = log
	brdc.queue = queue
	brdc.in = queue.Chan(0)
	brdc.sinks = sinks
}

// Run - forward every notification until shutdown
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {

	log := brdc.log

	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item, ok := <-brdc.in:
			if !ok {
				break loop
			}
			log.Debugf("sending: %s  data: %x", item.Command, item.Parameters)
			for _, s := range brdc.sinks {
				err := s.send(&item)
				if nil != err {
					log.Errorf("send: %s  error: %s", item.Command, err)
				}
			}
		}
	}

	brdc.queue.Release(brdc.in)
	for _, s := range brdc.sinks {
		s.close()
	}
	log.Info("stopped")
}
