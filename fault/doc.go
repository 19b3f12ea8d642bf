// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches
//
// Each class of error is a distinct type so that a caller can decide
// how to react without inspecting the message:
//
//   ExistsError        - an identifier is already occupied
//   InvalidError       - a required field is empty or malformed
//   NotFoundError      - a referenced record does not exist
//   AuthorisationError - signer is not permitted to perform the operation
//   OverflowError      - a counter would exceed its representable range
//   LengthError        - a field exceeds its storage budget
//   RecordError        - packed data cannot be decoded
//   ProcessError       - internal or environmental failure
package fault
