// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/identity"
	"github.com/jmt-genius/boxity/record"
)

func TestGenesisRequest(t *testing.T) {
	owner := ownerKeyPair(t)

	req := &record.GenesisRequest{
		Owner: owner.Identity,
		Nonce: 1,
	}

	unsigned, err := req.Pack()
	assert.Equal(t, fault.InvalidSignature, err, "unsigned")
	assert.NotNil(t, unsigned, "unsigned message returned")

	err = req.Sign(owner)
	assert.Nil(t, err, "sign")

	packed, err := req.Pack()
	assert.Nil(t, err, "pack")
	assert.Equal(t, unsigned, packed[:len(unsigned)], "message prefix")

	unpacked, n, err := packed.Unpack()
	assert.Nil(t, err, "unpack")
	assert.Equal(t, len(packed), n, "unpacked length")
	assert.Equal(t, req, unpacked, "round trip")
}

func TestBatchRequest(t *testing.T) {
	creator, err := identity.NewKeyPair()
	assert.Nil(t, err, "key pair")

	req := &record.BatchRequest{
		Creator:     creator.Identity,
		BatchId:     "BATCH-1",
		ProductName: "Widget",
		Origin:      "Pune",
		Nonce:       42,
	}
	err = req.Sign(creator)
	assert.Nil(t, err, "sign")

	packed, err := req.Pack()
	assert.Nil(t, err, "pack")

	unpacked, _, err := packed.Unpack()
	assert.Nil(t, err, "unpack")
	assert.Equal(t, req, unpacked, "round trip")

	// any field change invalidates the signature
	req.ProductName = "Gadget"
	_, err = req.Pack()
	assert.Equal(t, fault.InvalidSignature, err, "modified")

	// a different signer cannot sign for the creator
	other, _ := identity.NewKeyPair()
	err = req.Sign(other)
	assert.Nil(t, err, "sign with other")
	_, err = req.Pack()
	assert.Equal(t, fault.InvalidSignature, err, "wrong signer")
	assert.True(t, fault.IsErrAuthorisation(err), "authorisation class")

	req.Origin = strings.Repeat("o", record.MaxOriginLength+1)
	err = req.Sign(creator)
	assert.Equal(t, fault.OriginTooLong, err, "budget checked before signing")
}

func TestEventRequest(t *testing.T) {
	loggedBy, err := identity.NewKeyPair()
	assert.Nil(t, err, "key pair")

	req := &record.EventRequest{
		LoggedBy:  loggedBy.Identity,
		BatchId:   "BATCH-1",
		Actor:     "Truck 7",
		Role:      "carrier",
		Note:      "picked up",
		EventHash: "abc123",
		Nonce:     3,
	}
	assert.Nil(t, req.Sign(loggedBy), "sign")

	packed, err := req.Pack()
	assert.Nil(t, err, "pack")

	unpacked, _, err := packed.Unpack()
	assert.Nil(t, err, "unpack")
	assert.Equal(t, req, unpacked, "round trip")

	req.EventHash = strings.Repeat("h", record.MaxEventHashLength+1)
	_, err = req.Pack()
	assert.Equal(t, fault.EventHashTooLong, err, "hash budget")

	req.EventHash = "abc123"
	req.BatchId = strings.Repeat("b", record.MaxBatchIdLength+1)
	_, err = req.Pack()
	assert.Equal(t, fault.BatchIdTooLong, err, "batch id budget")
}

func TestEventRequestAddress(t *testing.T) {
	loggedBy, err := identity.NewKeyPair()
	assert.Nil(t, err, "key pair")

	req := &record.EventRequest{
		LoggedBy: loggedBy.Identity,
		BatchId:  "BATCH-1",
		Actor:    "Truck 7",
		Nonce:    3,
	}

	unsigned, err := req.Address()
	assert.Nil(t, err, "address")

	// the signature is not part of the key
	assert.Nil(t, req.Sign(loggedBy), "sign")
	signed, err := req.Address()
	assert.Nil(t, err, "signed address")
	assert.Equal(t, unsigned, signed, "signature changed the address")

	req.Nonce = 4
	renewed, err := req.Address()
	assert.Nil(t, err, "new nonce address")
	assert.NotEqual(t, signed, renewed, "nonce ignored")

	req.Actor = strings.Repeat("a", record.MaxActorLength+1)
	_, err = req.Address()
	assert.Equal(t, fault.ActorTooLong, err, "actor budget")
}

func TestAuthorisationRequest(t *testing.T) {
	owner := ownerKeyPair(t)
	user, err := identity.NewKeyPair()
	assert.Nil(t, err, "key pair")

	req := &record.AuthorisationRequest{
		Owner:      owner.Identity,
		User:       user.Identity,
		Authorised: true,
	}
	assert.Nil(t, req.Sign(owner), "sign")

	packed, err := req.Pack()
	assert.Nil(t, err, "pack")

	unpacked, _, err := packed.Unpack()
	assert.Nil(t, err, "unpack")
	assert.Equal(t, req, unpacked, "round trip")

	req.Authorised = false
	_, err = req.Pack()
	assert.Equal(t, fault.InvalidSignature, err, "flag change")

	req.Signature = make(identity.Signature, 2000)
	_, err = req.Pack()
	assert.Equal(t, fault.SignatureTooLong, err, "oversized signature")
}
