// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/jmt-genius/boxity/identity"
	"github.com/jmt-genius/boxity/record"
	"github.com/jmt-genius/boxity/rpc/authorisation"
)

// Authorise - owner signed change to a user's allowlist entry
func (client *Client) Authorise(owner *identity.KeyPair, user identity.Identity, authorised bool) (*authorisation.SetReply, error) {

	req := &record.AuthorisationRequest{
		Owner:      owner.Identity,
		User:       user,
		Authorised: authorised,
		Nonce:      makeNonce(),
	}
	err := req.Sign(owner)
	if nil != err {
		return nil, err
	}

	client.printJson("Authorisation Request", req)

	var reply authorisation.SetReply
	err = client.client.Call("Authorisation.Set", req, &reply)
	if nil != err {
		return nil, err
	}

	return &reply, nil
}

// GetAuthorisation - the allowlist entry of a user
func (client *Client) GetAuthorisation(user identity.Identity) (*authorisation.GetReply, error) {

	var reply authorisation.GetReply
	err := client.client.Call("Authorisation.Get", &authorisation.GetArguments{User: user}, &reply)
	if nil != err {
		return nil, err
	}

	return &reply, nil
}
