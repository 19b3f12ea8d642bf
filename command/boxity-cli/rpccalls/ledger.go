// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/jmt-genius/boxity/identity"
	"github.com/jmt-genius/boxity/record"
	"github.com/jmt-genius/boxity/rpc/state"
)

// Initialise - perform genesis with the owner's key pair
func (client *Client) Initialise(owner *identity.KeyPair) (*state.InitialiseReply, error) {

	req := &record.GenesisRequest{
		Owner: owner.Identity,
		Nonce: makeNonce(),
	}
	err := req.Sign(owner)
	if nil != err {
		return nil, err
	}

	client.printJson("Genesis Request", req)

	var reply state.InitialiseReply
	err = client.client.Call("Ledger.Initialise", req, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Genesis Reply", reply)

	return &reply, nil
}

// LedgerInfo - the ledger state, if genesis was performed
func (client *Client) LedgerInfo() (*state.InfoReply, error) {
	var reply state.InfoReply
	err := client.client.Call("Ledger.Info", &state.InfoArguments{}, &reply)
	if nil != err {
		return nil, err
	}

	return &reply, nil
}
