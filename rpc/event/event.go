// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package event - the Event RPC service
package event

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/identity"
	"github.com/jmt-genius/boxity/ledger"
	"github.com/jmt-genius/boxity/record"
	"github.com/jmt-genius/boxity/rpc/ratelimit"
)

const (
	rateLimitEvent = 200
	rateBurstEvent = 100
)

// Log - the ledger operations this service needs
type Log interface {
	LogEvent(loggedBy identity.Identity, batchId string, info ledger.EventInfo) (*record.BatchEvent, error)
	Event(batchId string, id uint64) (*record.BatchEvent, error)
}

// Event - type for RPC calls
type Event struct {
	log     *logger.L
	Limiter *rate.Limiter
	events  Log
}

// New - create the Event service
func New(log *logger.L, events Log) *Event {
	return &Event{
		log:     log,
		Limiter: rate.NewLimiter(rateLimitEvent, rateBurstEvent),
		events:  events,
	}
}

// ---

// LogReply - the stored event
type LogReply struct {
	Event *record.BatchEvent `json:"event"`
}

// Log - append an event to a batch, signed by the logger
func (event *Event) Log(arguments *record.EventRequest, reply *LogReply) error {

	if err := ratelimit.Limit(event.Limiter); nil != err {
		return err
	}

	if nil == arguments || arguments.LoggedBy.IsZero() {
		return fault.MissingParameters
	}

	_, err := arguments.Pack()
	if nil != err {
		event.log.Warnf("log event batch: %q  logger: %s  error: %s", arguments.BatchId, arguments.LoggedBy, err)
		return err
	}

	request, err := arguments.Address()
	if nil != err {
		return err
	}

	info := ledger.EventInfo{
		Actor:           arguments.Actor,
		Role:            arguments.Role,
		Note:            arguments.Note,
		FirstViewImage:  arguments.FirstViewImage,
		SecondViewImage: arguments.SecondViewImage,
		EventHash:       arguments.EventHash,
		Request:         &request,
	}
	e, err := event.events.LogEvent(arguments.LoggedBy, arguments.BatchId, info)
	if nil != err {
		return err
	}

	reply.Event = e
	return nil
}

// ---

// GetArguments - event to look up
type GetArguments struct {
	BatchId string `json:"batchId"`
	Id      uint64 `json:"id,string"`
}

// GetReply - the event
type GetReply struct {
	Event *record.BatchEvent `json:"event"`
}

// Get - fetch one event of a batch
func (event *Event) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(event.Limiter); nil != err {
		return err
	}

	if nil == arguments || "" == arguments.BatchId {
		return fault.EmptyBatchId
	}

	e, err := event.events.Event(arguments.BatchId, arguments.Id)
	if nil != err {
		return err
	}

	reply.Event = e
	return nil
}
