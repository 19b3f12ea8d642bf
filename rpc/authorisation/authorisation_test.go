// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package authorisation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/identity"
	"github.com/jmt-genius/boxity/record"
	"github.com/jmt-genius/boxity/rpc/authorisation"
	"github.com/jmt-genius/boxity/rpc/fixtures"
)

func setup(t *testing.T) (*authorisation.Authorisation, *identity.KeyPair) {
	fixtures.SetupTestLogger()

	l, owner, err := fixtures.NewInitialisedLedger()
	if nil != err {
		t.Fatalf("ledger error: %s", err)
	}
	return authorisation.New(logger.New(fixtures.LogCategory), l), owner
}

func teardown() {
	fixtures.TeardownLedger()
	fixtures.TeardownTestLogger()
}

func signedRequest(t *testing.T, signer *identity.KeyPair, user identity.Identity, authorised bool) *record.AuthorisationRequest {
	req := &record.AuthorisationRequest{
		Owner:      signer.Identity,
		User:       user,
		Authorised: authorised,
		Nonce:      3,
	}
	err := req.Sign(signer)
	if nil != err {
		t.Fatalf("sign error: %s", err)
	}
	return req
}

func TestAuthorisationSet(t *testing.T) {
	a, owner := setup(t)
	defer teardown()

	user, _ := identity.NewKeyPair()

	var reply authorisation.SetReply
	err := a.Set(signedRequest(t, owner, user.Identity, true), &reply)
	assert.Nil(t, err, "wrong Set")
	assert.Equal(t, user.Identity, reply.Authorisation.User, "wrong user")
	assert.True(t, reply.Authorisation.Authorised, "not authorised")

	err = a.Set(signedRequest(t, owner, user.Identity, false), &reply)
	assert.Equal(t, fault.AuthorisationAlreadyExists, err, "second grant accepted")

	var got authorisation.GetReply
	err = a.Get(&authorisation.GetArguments{User: user.Identity}, &got)
	assert.Nil(t, err, "wrong Get")
	assert.True(t, got.Authorisation.Authorised, "flag changed")
}

func TestAuthorisationSetNotOwner(t *testing.T) {
	a, _ := setup(t)
	defer teardown()

	intruder, _ := identity.NewKeyPair()
	user, _ := identity.NewKeyPair()

	var reply authorisation.SetReply
	err := a.Set(signedRequest(t, intruder, user.Identity, true), &reply)
	assert.Equal(t, fault.Unauthorised, err, "non-owner accepted")

	var got authorisation.GetReply
	err = a.Get(&authorisation.GetArguments{User: user.Identity}, &got)
	assert.Equal(t, fault.AuthorisationNotFound, err, "authorisation stored")
}

func TestAuthorisationSetForgedOwner(t *testing.T) {
	a, owner := setup(t)
	defer teardown()

	intruder, _ := identity.NewKeyPair()
	user, _ := identity.NewKeyPair()

	// claims to be the owner but signs with another key
	req := signedRequest(t, intruder, user.Identity, true)
	req.Owner = owner.Identity

	var reply authorisation.SetReply
	err := a.Set(req, &reply)
	assert.Equal(t, fault.InvalidSignature, err, "forged owner accepted")

	err = a.Set(&record.AuthorisationRequest{Owner: owner.Identity}, &reply)
	assert.Equal(t, fault.MissingParameters, err, "zero user accepted")

	var got authorisation.GetReply
	err = a.Get(&authorisation.GetArguments{}, &got)
	assert.Equal(t, fault.MissingParameters, err, "zero user accepted")
}

func TestAuthorisationSetReplay(t *testing.T) {
	a, owner := setup(t)
	defer teardown()

	user, _ := identity.NewKeyPair()
	req := signedRequest(t, owner, user.Identity, false)

	var reply authorisation.SetReply
	err := a.Set(req, &reply)
	assert.Nil(t, err, "wrong Set")

	// an entry is created once per user, so the same request cannot apply twice
	var replayed authorisation.SetReply
	err = a.Set(req, &replayed)
	assert.Equal(t, fault.AuthorisationAlreadyExists, err, "replayed request accepted")
	assert.Nil(t, replayed.Authorisation, "replay produced an entry")

	var got authorisation.GetReply
	err = a.Get(&authorisation.GetArguments{User: user.Identity}, &got)
	assert.Nil(t, err, "wrong Get")
	assert.False(t, got.Authorisation.Authorised, "flag changed")
}
