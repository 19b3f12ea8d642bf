// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/jmt-genius/boxity/identity"
	"github.com/jmt-genius/boxity/record"
	"github.com/jmt-genius/boxity/rpc/batch"
)

// BatchData - the user supplied part of a new batch
type BatchData struct {
	BatchId            string
	ProductName        string
	Sku                string
	Origin             string
	FirstViewBaseline  string
	SecondViewBaseline string
	Creator            *identity.KeyPair
}

// CreateBatch - sign and submit a new batch
func (client *Client) CreateBatch(data *BatchData) (*batch.CreateReply, error) {

	req := &record.BatchRequest{
		Creator:            data.Creator.Identity,
		BatchId:            data.BatchId,
		ProductName:        data.ProductName,
		Sku:                data.Sku,
		Origin:             data.Origin,
		FirstViewBaseline:  data.FirstViewBaseline,
		SecondViewBaseline: data.SecondViewBaseline,
		Nonce:              makeNonce(),
	}
	err := req.Sign(data.Creator)
	if nil != err {
		return nil, err
	}

	client.printJson("Batch Request", req)

	var reply batch.CreateReply
	err = client.client.Call("Batch.Create", req, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Batch Reply", reply)

	return &reply, nil
}

// GetBatch - fetch a single batch
func (client *Client) GetBatch(batchId string) (*batch.GetReply, error) {

	var reply batch.GetReply
	err := client.client.Call("Batch.Get", &batch.GetArguments{BatchId: batchId}, &reply)
	if nil != err {
		return nil, err
	}

	return &reply, nil
}

// Provenance - one page of the events logged against a batch
func (client *Client) Provenance(batchId string, start uint64, count int) (*batch.ProvenanceReply, error) {

	args := &batch.ProvenanceArguments{
		BatchId: batchId,
		Start:   start,
		Count:   count,
	}

	client.printJson("Provenance Request", args)

	var reply batch.ProvenanceReply
	err := client.client.Call("Batch.Provenance", args, &reply)
	if nil != err {
		return nil, err
	}

	return &reply, nil
}
