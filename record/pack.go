// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/jmt-genius/boxity/address"
	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/identity"
	"github.com/jmt-genius/boxity/util"
)

// Pack - the ledger state
func (state *LedgerState) Pack() (Packed, error) {
	message := header(LedgerStateTag)
	message = appendIdentity(message, state.Owner)
	message = appendUint64(message, state.TotalBatches)
	message = appendUint64(message, state.NextEventId)
	return message, nil
}

// Pack - a batch, rejecting fields that exceed their storage budget
func (batch *Batch) Pack() (Packed, error) {
	err := checkBatchFields(batch.BatchId, batch.ProductName, batch.Sku, batch.Origin, batch.FirstViewBaseline, batch.SecondViewBaseline)
	if nil != err {
		return nil, err
	}

	message := header(BatchTag)
	message = appendString(message, batch.BatchId)
	message = appendString(message, batch.ProductName)
	message = appendString(message, batch.Sku)
	message = appendString(message, batch.Origin)
	message = appendString(message, batch.FirstViewBaseline)
	message = appendString(message, batch.SecondViewBaseline)
	message = appendIdentity(message, batch.Creator)
	message = appendUint64(message, batch.CreatedAt)
	message = appendBool(message, batch.Exists)
	return message, nil
}

// Pack - an event, rejecting fields that exceed their storage budget
func (event *BatchEvent) Pack() (Packed, error) {
	err := checkEventFields(event.Actor, event.Role, event.Note, event.FirstViewImage, event.SecondViewImage, event.EventHash)
	if nil != err {
		return nil, err
	}

	message := header(BatchEventTag)
	message = appendUint64(message, event.Id)
	message = appendAddress(message, event.Batch)
	message = appendString(message, event.Actor)
	message = appendString(message, event.Role)
	message = appendString(message, event.Note)
	message = appendString(message, event.FirstViewImage)
	message = appendString(message, event.SecondViewImage)
	message = appendString(message, event.EventHash)
	message = appendIdentity(message, event.LoggedBy)
	message = appendUint64(message, event.Timestamp)
	return message, nil
}

// Pack - an allowlist entry
func (auth *UserAuthorisation) Pack() (Packed, error) {
	message := header(UserAuthorisationTag)
	message = appendIdentity(message, auth.User)
	message = appendBool(message, auth.Authorised)
	return message, nil
}

// Pack - batch created notification
func (n *BatchCreated) Pack() (Packed, error) {
	if len(n.BatchId) > MaxBatchIdLength {
		return nil, fault.BatchIdTooLong
	}
	message := header(BatchCreatedTag)
	message = appendString(message, n.BatchId)
	message = appendIdentity(message, n.Creator)
	message = appendUint64(message, n.Timestamp)
	return message, nil
}

// Pack - event logged notification
func (n *EventLogged) Pack() (Packed, error) {
	if len(n.BatchId) > MaxBatchIdLength {
		return nil, fault.BatchIdTooLong
	}
	if len(n.Actor) > MaxActorLength {
		return nil, fault.ActorTooLong
	}
	if len(n.Role) > MaxRoleLength {
		return nil, fault.RoleTooLong
	}
	message := header(EventLoggedTag)
	message = appendString(message, n.BatchId)
	message = appendUint64(message, n.EventId)
	message = appendString(message, n.Actor)
	message = appendString(message, n.Role)
	message = appendIdentity(message, n.LoggedBy)
	message = appendUint64(message, n.Timestamp)
	return message, nil
}

// Pack - user authorised notification
func (n *UserAuthorised) Pack() (Packed, error) {
	message := header(UserAuthorisedTag)
	message = appendIdentity(message, n.User)
	message = appendBool(message, n.Authorised)
	return message, nil
}

// storage budgets for the batch fields
func checkBatchFields(batchId, productName, sku, origin, firstViewBaseline, secondViewBaseline string) error {
	if len(batchId) > MaxBatchIdLength {
		return fault.BatchIdTooLong
	}
	if len(productName) > MaxProductNameLength {
		return fault.ProductNameTooLong
	}
	if len(sku) > MaxSkuLength {
		return fault.SkuTooLong
	}
	if len(origin) > MaxOriginLength {
		return fault.OriginTooLong
	}
	if len(firstViewBaseline) > MaxBaselineLength || len(secondViewBaseline) > MaxBaselineLength {
		return fault.BaselineTooLong
	}
	return nil
}

// storage budgets for the event fields
func checkEventFields(actor, role, note, firstViewImage, secondViewImage, eventHash string) error {
	if len(actor) > MaxActorLength {
		return fault.ActorTooLong
	}
	if len(role) > MaxRoleLength {
		return fault.RoleTooLong
	}
	if len(note) > MaxNoteLength {
		return fault.NoteTooLong
	}
	if len(firstViewImage) > MaxImageLength || len(secondViewImage) > MaxImageLength {
		return fault.ImageTooLong
	}
	if len(eventHash) > MaxEventHashLength {
		return fault.EventHashTooLong
	}
	return nil
}

// start a record with its tag and version
func header(tag TagType) Packed {
	message := util.ToVarint64(uint64(tag))
	return util.AppendVarint64(message, Version)
}

// append a single field to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer Packed, s string) Packed {
	buffer = util.AppendVarint64(buffer, uint64(len(s)))
	return append(buffer, s...)
}

// append a bytes to a buffer
//
// the field is prefixed by Varint64(length)
func appendBytes(buffer Packed, data []byte) Packed {
	buffer = util.AppendVarint64(buffer, uint64(len(data)))
	return append(buffer, data...)
}

func appendIdentity(buffer Packed, id identity.Identity) Packed {
	return appendBytes(buffer, id.Bytes())
}

func appendAddress(buffer Packed, a address.Address) Packed {
	return appendBytes(buffer, a.Bytes())
}

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	return util.AppendVarint64(buffer, value)
}

func appendBool(buffer Packed, b bool) Packed {
	if b {
		return append(buffer, 1)
	}
	return append(buffer, 0)
}
