// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/json"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/nats-io/nats.go"

	"github.com/jmt-genius/boxity/messagebus"
	"github.com/jmt-genius/boxity/record"
)

const (
	defaultNatsSubject = "boxity"
	natsReconnectWait  = 2 * time.Second
	natsMaxReconnects  = -1 // forever
	natsConnectTimeout = 5 * time.Second
)

type natsSink struct {
	conn    *nats.Conn
	subject string
}

func newNatsSink(log *logger.L, url string, subject string) (*natsSink, error) {
	if "" == subject {
		subject = defaultNatsSubject
	}

	opts := []nats.Option{
		nats.Name("boxityd"),
		nats.ReconnectWait(natsReconnectWait),
		nats.MaxReconnects(natsMaxReconnects),
		nats.Timeout(natsConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warnf("nats disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Infof("nats reconnected: %s", nc.ConnectedUrl())
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if nil != err {
		return nil, err
	}
	log.Infof("nats connected: %s  subject: %s", conn.ConnectedUrl(), subject)

	return &natsSink{
		conn:    conn,
		subject: subject,
	}, nil
}

func (n *natsSink) send(item *messagebus.Message) error {
	payload, err := natsPayload(item)
	if nil != err {
		return err
	}
	return n.conn.Publish(n.subject+"."+item.Command, payload)
}

func (n *natsSink) close() {
	n.conn.Flush()
	n.conn.Close()
}

// the JSON form of the first parameter as a packed record
func natsPayload(item *messagebus.Message) ([]byte, error) {
	if 0 == len(item.Parameters) {
		return []byte("null"), nil
	}
	r, _, err := record.Packed(item.Parameters[0]).Unpack()
	if nil != err {
		return nil, err
	}
	return json.Marshal(r)
}
