// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package authorisation - the Authorisation RPC service
package authorisation

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/identity"
	"github.com/jmt-genius/boxity/record"
	"github.com/jmt-genius/boxity/rpc/ratelimit"
)

const (
	rateLimitAuthorisation = 100
	rateBurstAuthorisation = 50
)

// Allowlist - the ledger operations this service needs
type Allowlist interface {
	SetUserAuthorisation(signer identity.Identity, user identity.Identity, authorised bool) (*record.UserAuthorisation, error)
	Authorisation(user identity.Identity) (*record.UserAuthorisation, error)
}

// Authorisation - type for RPC calls
type Authorisation struct {
	Log       *logger.L
	Limiter   *rate.Limiter
	allowlist Allowlist
}

// New - create the Authorisation service
func New(log *logger.L, allowlist Allowlist) *Authorisation {
	return &Authorisation{
		Log:       log,
		Limiter:   rate.NewLimiter(rateLimitAuthorisation, rateBurstAuthorisation),
		allowlist: allowlist,
	}
}

// ---

// SetReply - the stored authorisation
type SetReply struct {
	Authorisation *record.UserAuthorisation `json:"authorisation"`
}

// Set - record a user authorisation, signed by the ledger owner
func (authorisation *Authorisation) Set(arguments *record.AuthorisationRequest, reply *SetReply) error {

	if err := ratelimit.Limit(authorisation.Limiter); nil != err {
		return err
	}

	if nil == arguments || arguments.Owner.IsZero() || arguments.User.IsZero() {
		return fault.MissingParameters
	}

	_, err := arguments.Pack()
	if nil != err {
		authorisation.Log.Warnf("authorise user: %s  signer: %s  error: %s", arguments.User, arguments.Owner, err)
		return err
	}

	a, err := authorisation.allowlist.SetUserAuthorisation(arguments.Owner, arguments.User, arguments.Authorised)
	if nil != err {
		return err
	}

	reply.Authorisation = a
	return nil
}

// ---

// GetArguments - user to look up
type GetArguments struct {
	User identity.Identity `json:"user"`
}

// GetReply - the authorisation
type GetReply struct {
	Authorisation *record.UserAuthorisation `json:"authorisation"`
}

// Get - fetch the authorisation of a user
func (authorisation *Authorisation) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(authorisation.Limiter); nil != err {
		return err
	}

	if nil == arguments || arguments.User.IsZero() {
		return fault.MissingParameters
	}

	a, err := authorisation.allowlist.Authorisation(arguments.User)
	if nil != err {
		return err
	}

	reply.Authorisation = a
	return nil
}
