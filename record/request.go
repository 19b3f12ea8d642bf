// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/jmt-genius/boxity/address"
	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/identity"
)

// GenesisRequest - initialise the ledger, signed by the future owner
type GenesisRequest struct {
	Owner     identity.Identity  `json:"owner"`        // base58
	Nonce     uint64             `json:"nonce,string"` // unsigned 0..N
	Signature identity.Signature `json:"signature"`    // hex
}

// BatchRequest - create a batch, signed by the creator
type BatchRequest struct {
	Creator            identity.Identity  `json:"creator"`            // base58
	BatchId            string             `json:"batchId"`            // utf-8
	ProductName        string             `json:"productName"`        // utf-8
	Sku                string             `json:"sku"`                // utf-8
	Origin             string             `json:"origin"`             // utf-8
	FirstViewBaseline  string             `json:"firstViewBaseline"`  // utf-8
	SecondViewBaseline string             `json:"secondViewBaseline"` // utf-8
	Nonce              uint64             `json:"nonce,string"`       // unsigned 0..N
	Signature          identity.Signature `json:"signature"`          // hex
}

// EventRequest - log an event against a batch, signed by the logger
type EventRequest struct {
	LoggedBy        identity.Identity  `json:"loggedBy"`        // base58
	BatchId         string             `json:"batchId"`         // utf-8
	Actor           string             `json:"actor"`           // utf-8
	Role            string             `json:"role"`            // utf-8
	Note            string             `json:"note"`            // utf-8
	FirstViewImage  string             `json:"firstViewImage"`  // utf-8
	SecondViewImage string             `json:"secondViewImage"` // utf-8
	EventHash       string             `json:"eventHash"`       // utf-8
	Nonce           uint64             `json:"nonce,string"`    // unsigned 0..N
	Signature       identity.Signature `json:"signature"`       // hex
}

// AuthorisationRequest - add a user to the allowlist, signed by the owner
type AuthorisationRequest struct {
	Owner      identity.Identity  `json:"owner"` // base58
	User       identity.Identity  `json:"user"`  // base58
	Authorised bool               `json:"authorised"`
	Nonce      uint64             `json:"nonce,string"` // unsigned 0..N
	Signature  identity.Signature `json:"signature"`    // hex
}

// Pack - genesis request
//
// NOTE: returns the "unsigned" message on signature failure - for
//       debugging/testing
func (req *GenesisRequest) Pack() (Packed, error) {
	return signed(req.message(), req.Owner, req.Signature)
}

// Sign - fill in the signature using the owner's key
func (req *GenesisRequest) Sign(keyPair *identity.KeyPair) error {
	req.Signature = keyPair.Sign(req.message())
	return nil
}

func (req *GenesisRequest) message() Packed {
	message := header(GenesisRequestTag)
	message = appendIdentity(message, req.Owner)
	return appendUint64(message, req.Nonce)
}

// Pack - batch request
//
// NOTE: returns the "unsigned" message on signature failure - for
//       debugging/testing
func (req *BatchRequest) Pack() (Packed, error) {
	message, err := req.message()
	if nil != err {
		return nil, err
	}
	return signed(message, req.Creator, req.Signature)
}

// Sign - fill in the signature using the creator's key
func (req *BatchRequest) Sign(keyPair *identity.KeyPair) error {
	message, err := req.message()
	if nil != err {
		return err
	}
	req.Signature = keyPair.Sign(message)
	return nil
}

func (req *BatchRequest) message() (Packed, error) {
	err := checkBatchFields(req.BatchId, req.ProductName, req.Sku, req.Origin, req.FirstViewBaseline, req.SecondViewBaseline)
	if nil != err {
		return nil, err
	}

	message := header(BatchRequestTag)
	message = appendIdentity(message, req.Creator)
	message = appendString(message, req.BatchId)
	message = appendString(message, req.ProductName)
	message = appendString(message, req.Sku)
	message = appendString(message, req.Origin)
	message = appendString(message, req.FirstViewBaseline)
	message = appendString(message, req.SecondViewBaseline)
	message = appendUint64(message, req.Nonce)
	return message, nil
}

// Pack - event request
//
// NOTE: returns the "unsigned" message on signature failure - for
//       debugging/testing
func (req *EventRequest) Pack() (Packed, error) {
	message, err := req.message()
	if nil != err {
		return nil, err
	}
	return signed(message, req.LoggedBy, req.Signature)
}

// Sign - fill in the signature using the logger's key
func (req *EventRequest) Sign(keyPair *identity.KeyPair) error {
	message, err := req.message()
	if nil != err {
		return err
	}
	req.Signature = keyPair.Sign(message)
	return nil
}

func (req *EventRequest) message() (Packed, error) {
	if len(req.BatchId) > MaxBatchIdLength {
		return nil, fault.BatchIdTooLong
	}
	err := checkEventFields(req.Actor, req.Role, req.Note, req.FirstViewImage, req.SecondViewImage, req.EventHash)
	if nil != err {
		return nil, err
	}

	message := header(EventRequestTag)
	message = appendIdentity(message, req.LoggedBy)
	message = appendString(message, req.BatchId)
	message = appendString(message, req.Actor)
	message = appendString(message, req.Role)
	message = appendString(message, req.Note)
	message = appendString(message, req.FirstViewImage)
	message = appendString(message, req.SecondViewImage)
	message = appendString(message, req.EventHash)
	message = appendUint64(message, req.Nonce)
	return message, nil
}

// Pack - authorisation request
//
// NOTE: returns the "unsigned" message on signature failure - for
//       debugging/testing
func (req *AuthorisationRequest) Pack() (Packed, error) {
	return signed(req.message(), req.Owner, req.Signature)
}

// Sign - fill in the signature using the owner's key
func (req *AuthorisationRequest) Sign(keyPair *identity.KeyPair) error {
	req.Signature = keyPair.Sign(req.message())
	return nil
}

func (req *AuthorisationRequest) message() Packed {
	message := header(AuthorisationRequestTag)
	message = appendIdentity(message, req.Owner)
	message = appendIdentity(message, req.User)
	message = appendBool(message, req.Authorised)
	return appendUint64(message, req.Nonce)
}

// Address - replay key of an event request
func (req *EventRequest) Address() (address.Address, error) {
	message, err := req.message()
	if nil != err {
		return address.Address{}, err
	}
	return address.ForRequest(message), nil
}

// verify the signature and append it as the last field
func signed(message Packed, signer identity.Identity, signature identity.Signature) (Packed, error) {
	if len(signature) > maxSignatureLength {
		return nil, fault.SignatureTooLong
	}
	err := signer.Verify(message, signature)
	if nil != err {
		return message, err
	}
	return appendBytes(message, signature), nil
}
