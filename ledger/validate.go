// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/jmt-genius/boxity/address"
	"github.com/jmt-genius/boxity/fault"
)

// BatchInfo - caller supplied fields of a new batch
type BatchInfo struct {
	BatchId            string
	ProductName        string
	Sku                string
	Origin             string
	FirstViewBaseline  string
	SecondViewBaseline string
}

// EventInfo - caller supplied fields of a new event
type EventInfo struct {
	Actor           string
	Role            string
	Note            string
	FirstViewImage  string
	SecondViewImage string
	EventHash       string

	// replay key of the signed request, nil when there is none
	Request *address.Address
}

// required batch fields
func validateBatch(info *BatchInfo) error {
	if "" == info.ProductName {
		return fault.EmptyProductName
	}
	if "" == info.Origin {
		return fault.EmptyOrigin
	}
	return nil
}

// required event fields, checked in this order
func validateEvent(info *EventInfo) error {
	if "" == info.Actor {
		return fault.EmptyActor
	}
	if "" == info.Role {
		return fault.EmptyRole
	}
	if "" == info.Note {
		return fault.EmptyNote
	}
	if "" == info.EventHash {
		return fault.EmptyEventHash
	}
	return nil
}
