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

// TagType - type code for records
type TagType uint64

// enumerate the possible record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// stored records
	LedgerStateTag       = TagType(iota) // the singleton
	BatchTag             = TagType(iota) // a registered batch
	BatchEventTag        = TagType(iota) // one custody event
	UserAuthorisationTag = TagType(iota) // allowlist entry

	// notifications
	BatchCreatedTag   = TagType(iota)
	EventLoggedTag    = TagType(iota)
	UserAuthorisedTag = TagType(iota)

	// signed requests
	GenesisRequestTag       = TagType(iota)
	BatchRequestTag         = TagType(iota)
	EventRequestTag         = TagType(iota)
	AuthorisationRequestTag = TagType(iota)

	// this item must be last
	InvalidTag = TagType(iota)
)

// Version - the schema version written after the tag
const Version = 1

// Packed - packed records are just a byte slice
type Packed []byte

// Record - generic record interface
type Record interface {
	Pack() (Packed, error)
}

// byte sizes for various fields
const (
	MaxBatchIdLength     = 100
	MaxProductNameLength = 100
	MaxSkuLength         = 100
	MaxOriginLength      = 100
	MaxBaselineLength    = 200
	MaxImageLength       = 200
	MaxEventHashLength   = 64
	MaxActorLength       = 100
	MaxRoleLength        = 100
	MaxNoteLength        = 200
	maxSignatureLength   = 1024
)

// LedgerState - the singleton holding the owner and the counters
type LedgerState struct {
	Owner        identity.Identity `json:"owner"`               // base58
	TotalBatches uint64            `json:"totalBatches,string"` // unsigned 0..N
	NextEventId  uint64            `json:"nextEventId,string"`  // unsigned 1..N
}

// NewLedgerState - the initial state for an owner
func NewLedgerState(owner identity.Identity) *LedgerState {
	return &LedgerState{
		Owner:        owner,
		TotalBatches: 0,
		NextEventId:  1,
	}
}

// IssueEventID - return the next event id and advance the counter
//
// the counter is left unchanged on overflow
func (state *LedgerState) IssueEventID() (uint64, error) {
	id := state.NextEventId
	next := id + 1
	if next < id {
		return 0, fault.EventIdOverflow
	}
	state.NextEventId = next
	return id, nil
}

// IncrementBatchCount - count one more created batch
func (state *LedgerState) IncrementBatchCount() error {
	next := state.TotalBatches + 1
	if next < state.TotalBatches {
		return fault.BatchCountOverflow
	}
	state.TotalBatches = next
	return nil
}

// Batch - a registered batch of goods
type Batch struct {
	BatchId            string            `json:"batchId"`            // utf-8
	ProductName        string            `json:"productName"`        // utf-8
	Sku                string            `json:"sku"`                // utf-8
	Origin             string            `json:"origin"`             // utf-8
	FirstViewBaseline  string            `json:"firstViewBaseline"`  // utf-8
	SecondViewBaseline string            `json:"secondViewBaseline"` // utf-8
	Creator            identity.Identity `json:"creator"`            // base58
	CreatedAt          uint64            `json:"createdAt"`          // unix seconds
	Exists             bool              `json:"exists"`
}

// BatchEvent - one custody event of a batch
type BatchEvent struct {
	Id              uint64            `json:"id,string"`       // unsigned 1..N
	Batch           address.Address   `json:"batch"`           // base58
	Actor           string            `json:"actor"`           // utf-8
	Role            string            `json:"role"`            // utf-8
	Note            string            `json:"note"`            // utf-8
	FirstViewImage  string            `json:"firstViewImage"`  // utf-8
	SecondViewImage string            `json:"secondViewImage"` // utf-8
	EventHash       string            `json:"eventHash"`       // utf-8
	LoggedBy        identity.Identity `json:"loggedBy"`        // base58
	Timestamp       uint64            `json:"timestamp"`       // unix seconds
}

// UserAuthorisation - an allowlist entry
type UserAuthorisation struct {
	User       identity.Identity `json:"user"` // base58
	Authorised bool              `json:"authorised"`
}

// BatchCreated - notification for a new batch
type BatchCreated struct {
	BatchId   string            `json:"batchId"`
	Creator   identity.Identity `json:"creator"`
	Timestamp uint64            `json:"timestamp"`
}

// EventLogged - notification for a new event
type EventLogged struct {
	BatchId   string            `json:"batchId"`
	EventId   uint64            `json:"eventId,string"`
	Actor     string            `json:"actor"`
	Role      string            `json:"role"`
	LoggedBy  identity.Identity `json:"loggedBy"`
	Timestamp uint64            `json:"timestamp"`
}

// UserAuthorised - notification for a new allowlist entry
type UserAuthorised struct {
	User       identity.Identity `json:"user"`
	Authorised bool              `json:"authorised"`
}
