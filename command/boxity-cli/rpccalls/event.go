// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/jmt-genius/boxity/identity"
	"github.com/jmt-genius/boxity/record"
	"github.com/jmt-genius/boxity/rpc/event"
)

// EventData - the user supplied part of a new event
type EventData struct {
	BatchId         string
	Actor           string
	Role            string
	Note            string
	FirstViewImage  string
	SecondViewImage string
	EventHash       string
	LoggedBy        *identity.KeyPair
}

// LogEvent - sign and submit an event for an existing batch
func (client *Client) LogEvent(data *EventData) (*event.LogReply, error) {

	req := &record.EventRequest{
		LoggedBy:        data.LoggedBy.Identity,
		BatchId:         data.BatchId,
		Actor:           data.Actor,
		Role:            data.Role,
		Note:            data.Note,
		FirstViewImage:  data.FirstViewImage,
		SecondViewImage: data.SecondViewImage,
		EventHash:       data.EventHash,
		Nonce:           makeNonce(),
	}
	err := req.Sign(data.LoggedBy)
	if nil != err {
		return nil, err
	}

	client.printJson("Event Request", req)

	var reply event.LogReply
	err = client.client.Call("Event.Log", req, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Event Reply", reply)

	return &reply, nil
}

// GetEvent - fetch a single event of a batch
func (client *Client) GetEvent(batchId string, id uint64) (*event.GetReply, error) {

	var reply event.GetReply
	err := client.client.Call("Event.Get", &event.GetArguments{BatchId: batchId, Id: id}, &reply)
	if nil != err {
		return nil, err
	}

	return &reply, nil
}
