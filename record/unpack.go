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

// largest tag value read before the tag range check
const maxTagValue = 8192

// Unpack - turn a byte slice into a record
//
// must cast result to correct type
//
// e.g.
//   batch, ok := result.(*record.Batch)
// or:
//   switch r := result.(type) {
//   case *record.Batch:
func (record Packed) Unpack() (r Record, n int, e error) {

	recordType, n := util.ClippedVarint64(record, 1, maxTagValue)
	if 0 == n {
		return nil, 0, fault.UnknownRecordType
	}
	if recordType >= int(InvalidTag) {
		return nil, 0, fault.UnknownRecordType
	}

	d := &decoder{buffer: record, n: n}
	version := d.uint64()
	if nil != d.err {
		return nil, 0, d.err
	}
	if Version != version {
		return nil, 0, fault.UnsupportedRecordVersion
	}

	switch TagType(recordType) {

	case LedgerStateTag:
		r = &LedgerState{
			Owner:        d.identity(),
			TotalBatches: d.uint64(),
			NextEventId:  d.uint64(),
		}

	case BatchTag:
		r = &Batch{
			BatchId:            d.string(MaxBatchIdLength),
			ProductName:        d.string(MaxProductNameLength),
			Sku:                d.string(MaxSkuLength),
			Origin:             d.string(MaxOriginLength),
			FirstViewBaseline:  d.string(MaxBaselineLength),
			SecondViewBaseline: d.string(MaxBaselineLength),
			Creator:            d.identity(),
			CreatedAt:          d.uint64(),
			Exists:             d.boolean(),
		}

	case BatchEventTag:
		r = &BatchEvent{
			Id:              d.uint64(),
			Batch:           d.address(),
			Actor:           d.string(MaxActorLength),
			Role:            d.string(MaxRoleLength),
			Note:            d.string(MaxNoteLength),
			FirstViewImage:  d.string(MaxImageLength),
			SecondViewImage: d.string(MaxImageLength),
			EventHash:       d.string(MaxEventHashLength),
			LoggedBy:        d.identity(),
			Timestamp:       d.uint64(),
		}

	case UserAuthorisationTag:
		r = &UserAuthorisation{
			User:       d.identity(),
			Authorised: d.boolean(),
		}

	case BatchCreatedTag:
		r = &BatchCreated{
			BatchId:   d.string(MaxBatchIdLength),
			Creator:   d.identity(),
			Timestamp: d.uint64(),
		}

	case EventLoggedTag:
		r = &EventLogged{
			BatchId:   d.string(MaxBatchIdLength),
			EventId:   d.uint64(),
			Actor:     d.string(MaxActorLength),
			Role:      d.string(MaxRoleLength),
			LoggedBy:  d.identity(),
			Timestamp: d.uint64(),
		}

	case UserAuthorisedTag:
		r = &UserAuthorised{
			User:       d.identity(),
			Authorised: d.boolean(),
		}

	case GenesisRequestTag:
		r = &GenesisRequest{
			Owner:     d.identity(),
			Nonce:     d.uint64(),
			Signature: d.signature(),
		}

	case BatchRequestTag:
		r = &BatchRequest{
			Creator:            d.identity(),
			BatchId:            d.string(MaxBatchIdLength),
			ProductName:        d.string(MaxProductNameLength),
			Sku:                d.string(MaxSkuLength),
			Origin:             d.string(MaxOriginLength),
			FirstViewBaseline:  d.string(MaxBaselineLength),
			SecondViewBaseline: d.string(MaxBaselineLength),
			Nonce:              d.uint64(),
			Signature:          d.signature(),
		}

	case EventRequestTag:
		r = &EventRequest{
			LoggedBy:        d.identity(),
			BatchId:         d.string(MaxBatchIdLength),
			Actor:           d.string(MaxActorLength),
			Role:            d.string(MaxRoleLength),
			Note:            d.string(MaxNoteLength),
			FirstViewImage:  d.string(MaxImageLength),
			SecondViewImage: d.string(MaxImageLength),
			EventHash:       d.string(MaxEventHashLength),
			Nonce:           d.uint64(),
			Signature:       d.signature(),
		}

	case AuthorisationRequestTag:
		r = &AuthorisationRequest{
			Owner:      d.identity(),
			User:       d.identity(),
			Authorised: d.boolean(),
			Nonce:      d.uint64(),
			Signature:  d.signature(),
		}

	default: // also NullTag
		return nil, 0, fault.UnknownRecordType
	}

	if nil != d.err {
		return nil, 0, d.err
	}
	return r, d.n, nil
}

// sequential field reader, the first error stops all further reads
type decoder struct {
	buffer Packed
	n      int
	err    error
}

func (d *decoder) uint64() uint64 {
	if nil != d.err {
		return 0
	}
	value, count := util.FromVarint64(d.buffer[d.n:])
	if 0 == count {
		d.err = fault.TruncatedRecord
		return 0
	}
	d.n += count
	return value
}

func (d *decoder) bytes(maximum int) []byte {
	if nil != d.err {
		return nil
	}
	length, count := util.FromVarint64(d.buffer[d.n:])
	if 0 == count {
		d.err = fault.TruncatedRecord
		return nil
	}
	if length > uint64(maximum) {
		d.err = fault.InvalidFieldLength
		return nil
	}
	d.n += count
	end := d.n + int(length)
	if end > len(d.buffer) {
		d.err = fault.TruncatedRecord
		return nil
	}
	data := make([]byte, length)
	copy(data, d.buffer[d.n:end])
	d.n = end
	return data
}

func (d *decoder) string(maximum int) string {
	return string(d.bytes(maximum))
}

func (d *decoder) identity() identity.Identity {
	data := d.bytes(identity.Size)
	if nil != d.err {
		return identity.Zero
	}
	id, err := identity.FromBytes(data)
	if nil != err {
		d.err = err
	}
	return id
}

func (d *decoder) address() address.Address {
	data := d.bytes(address.Size)
	if nil != d.err {
		return address.Address{}
	}
	a, err := address.FromBytes(data)
	if nil != err {
		d.err = err
	}
	return a
}

func (d *decoder) signature() identity.Signature {
	return identity.Signature(d.bytes(maxSignatureLength))
}

func (d *decoder) boolean() bool {
	if nil != d.err {
		return false
	}
	if d.n >= len(d.buffer) {
		d.err = fault.TruncatedRecord
		return false
	}
	b := d.buffer[d.n]
	d.n += 1
	switch b {
	case 0:
		return false
	case 1:
		return true
	default:
		d.err = fault.InvalidFieldValue
		return false
	}
}
