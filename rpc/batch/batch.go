// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package batch - the Batch RPC service
package batch

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/jmt-genius/boxity/address"
	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/identity"
	"github.com/jmt-genius/boxity/ledger"
	"github.com/jmt-genius/boxity/record"
	"github.com/jmt-genius/boxity/rpc/ratelimit"
)

const (
	rateLimitBatch = 200
	rateBurstBatch = 100
)

// Registry - the ledger operations this service needs
type Registry interface {
	CreateBatch(creator identity.Identity, info ledger.BatchInfo) (*record.Batch, error)
	Batch(batchId string) (*record.Batch, error)
	Provenance(batchId string, start uint64, count int) ([]*record.BatchEvent, uint64, error)
}

// Batch - type for RPC calls
type Batch struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	registry Registry
}

// New - create the Batch service
func New(log *logger.L, registry Registry) *Batch {
	return &Batch{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitBatch, rateBurstBatch),
		registry: registry,
	}
}

// ---

// CreateReply - the stored batch
type CreateReply struct {
	Address address.Address `json:"address"`
	Batch   *record.Batch   `json:"batch"`
}

// Create - register a new batch signed by its creator
func (batch *Batch) Create(arguments *record.BatchRequest, reply *CreateReply) error {

	if err := ratelimit.Limit(batch.Limiter); nil != err {
		return err
	}

	if nil == arguments || arguments.Creator.IsZero() {
		return fault.MissingParameters
	}

	_, err := arguments.Pack()
	if nil != err {
		batch.Log.Warnf("create batch: %q  creator: %s  error: %s", arguments.BatchId, arguments.Creator, err)
		return err
	}

	info := ledger.BatchInfo{
		BatchId:            arguments.BatchId,
		ProductName:        arguments.ProductName,
		Sku:                arguments.Sku,
		Origin:             arguments.Origin,
		FirstViewBaseline:  arguments.FirstViewBaseline,
		SecondViewBaseline: arguments.SecondViewBaseline,
	}
	b, err := batch.registry.CreateBatch(arguments.Creator, info)
	if nil != err {
		return err
	}

	reply.Address = address.ForBatch(b.BatchId)
	reply.Batch = b
	return nil
}

// ---

// GetArguments - batch to look up
type GetArguments struct {
	BatchId string `json:"batchId"`
}

// GetReply - the batch and its address
type GetReply struct {
	Address address.Address `json:"address"`
	Batch   *record.Batch   `json:"batch"`
}

// Get - fetch a batch by id
func (batch *Batch) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(batch.Limiter); nil != err {
		return err
	}

	if nil == arguments || "" == arguments.BatchId {
		return fault.EmptyBatchId
	}

	b, err := batch.registry.Batch(arguments.BatchId)
	if nil != err {
		return err
	}

	reply.Address = address.ForBatch(b.BatchId)
	reply.Batch = b
	return nil
}

// ---

// ProvenanceArguments - one page of a batch history
type ProvenanceArguments struct {
	BatchId string `json:"batchId"`
	Start   uint64 `json:"start,string"`
	Count   int    `json:"count"`
}

// ProvenanceReply - events in id order
type ProvenanceReply struct {
	Events    []*record.BatchEvent `json:"events"`
	NextStart uint64               `json:"nextStart,string"`
}

// Provenance - the events logged against a batch
func (batch *Batch) Provenance(arguments *ProvenanceArguments, reply *ProvenanceReply) error {

	if nil == arguments {
		return fault.MissingParameters
	}

	if err := ratelimit.LimitN(batch.Limiter, arguments.Count, ledger.MaximumProvenanceCount); nil != err {
		return err
	}

	if "" == arguments.BatchId {
		return fault.EmptyBatchId
	}

	events, next, err := batch.registry.Provenance(arguments.BatchId, arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	reply.Events = events
	reply.NextStart = next
	return nil
}
