// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/jmt-genius/boxity/messagebus"
	"github.com/jmt-genius/boxity/zmqutil"
)

const (
	broadcasterZapDomain = "broadcaster"
)

type zmqSink struct {
	socket4 *zmq.Socket
	socket6 *zmq.Socket
}

func newZmqSink(log *logger.L, privateKey []byte, publicKey []byte, broadcast []string) (*zmqSink, error) {
	socket4, socket6, err := zmqutil.NewBind(log, zmq.PUB, broadcasterZapDomain, privateKey, publicKey, broadcast)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return nil, err
	}
	return &zmqSink{
		socket4: socket4,
		socket6: socket6,
	}, nil
}

func (z *zmqSink) send(item *messagebus.Message) error {
	err := sendMultipart(z.socket4, item)
	if nil != err {
		return err
	}
	return sendMultipart(z.socket6, item)
}

func (z *zmqSink) close() {
	if nil != z.socket4 {
		z.socket4.Close()
	}
	if nil != z.socket6 {
		z.socket6.Close()
	}
}

// command first then each parameter as a frame
func sendMultipart(socket *zmq.Socket, item *messagebus.Message) error {
	if nil == socket {
		return nil
	}

	flags := zmq.DONTWAIT
	if 0 != len(item.Parameters) {
		flags |= zmq.SNDMORE
	}
	_, err := socket.Send(item.Command, flags)
	if nil != err {
		return err
	}

	last := len(item.Parameters) - 1
	for i, p := range item.Parameters {
		if i == last {
			_, err = socket.SendBytes(p, zmq.DONTWAIT)
		} else {
			_, err = socket.SendBytes(p, zmq.SNDMORE|zmq.DONTWAIT)
		}
		if nil != err {
			return err
		}
	}
	return nil
}
