// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/jmt-genius/boxity/address"
	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/identity"
	"github.com/jmt-genius/boxity/record"
	"github.com/jmt-genius/boxity/storage"
)

// SetUserAuthorisation - add a user to the allowlist
//
// only the ledger owner may do this and each user can be entered
// once, a second call for the same user fails even with a different
// flag
func (l *Ledger) SetUserAuthorisation(signer identity.Identity, user identity.Identity, authorised bool) (*record.UserAuthorisation, error) {
	auth := &record.UserAuthorisation{
		User:       user,
		Authorised: authorised,
	}

	err := l.transact(func(trx storage.Transaction) (string, record.Record, error) {
		state, err := l.loadState(trx)
		if nil != err {
			return "", nil, err
		}

		if signer != state.Owner {
			l.log.Warnf("authorisation by: %s rejected, owner: %s", signer, state.Owner)
			return "", nil, fault.Unauthorised
		}

		packed, err := auth.Pack()
		if nil != err {
			return "", nil, err
		}

		err = trx.Create(l.pools.Authorisations, address.ForUserAuthorisation(user).Bytes(), packed)
		if fault.IsErrExists(err) {
			return "", nil, fault.AuthorisationAlreadyExists
		} else if nil != err {
			return "", nil, err
		}

		notification := &record.UserAuthorised{
			User:       user,
			Authorised: authorised,
		}
		return AuthorisationCommand, notification, nil
	})
	if nil != err {
		return nil, err
	}
	return auth, nil
}

// Authorisation - fetch a user's allowlist entry
func (l *Ledger) Authorisation(user identity.Identity) (*record.UserAuthorisation, error) {
	packed := l.pools.Authorisations.Get(address.ForUserAuthorisation(user).Bytes())
	if nil == packed {
		return nil, fault.AuthorisationNotFound
	}
	r, err := unpackAs(packed, record.UserAuthorisationTag)
	if nil != err {
		return nil, err
	}
	return r.(*record.UserAuthorisation), nil
}
