// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type AuthorisationError GenericError
type OverflowError GenericError
type LengthError GenericError
type RecordError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ActorTooLong                 = LengthError("actor too long")
	AlreadyInitialised           = ExistsError("already initialised")
	AuthorisationAlreadyExists   = ExistsError("authorisation already exists")
	AuthorisationNotFound        = NotFoundError("authorisation does not exist")
	BaselineTooLong              = LengthError("baseline too long")
	BatchAlreadyExists           = ExistsError("batch already exists")
	BatchCountOverflow           = OverflowError("batch count overflow")
	BatchIdTooLong               = LengthError("batch id too long")
	BatchNotFound                = NotFoundError("batch does not exist")
	CannotDecodeIdentity         = InvalidError("cannot decode identity")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	CertificateFileNotFound      = NotFoundError("certificate file does not exist")
	CryptoFailed                 = ProcessError("cryptographic operation failed")
	EmptyActor                   = InvalidError("actor cannot be empty")
	EmptyBatchId                 = InvalidError("batch id cannot be empty")
	EmptyEventHash               = InvalidError("event hash cannot be empty")
	EmptyNote                    = InvalidError("note cannot be empty")
	EmptyOrigin                  = InvalidError("origin cannot be empty")
	EmptyProductName             = InvalidError("product name cannot be empty")
	EmptyRole                    = InvalidError("role cannot be empty")
	EventAlreadyExists           = ExistsError("event already exists")
	EventHashTooLong             = LengthError("event hash too long")
	EventIdOverflow              = OverflowError("event id overflow")
	EventNotFound                = NotFoundError("event does not exist")
	IdentifierOccupied           = ExistsError("identifier already occupied")
	IdentityNameAlreadyExists    = ExistsError("identity name already exists")
	IdentityNameNotFound         = NotFoundError("identity name not found")
	ImageTooLong                 = LengthError("image reference too long")
	IncompatibleDatabaseVersion  = ProcessError("incompatible database version")
	InvalidAddress               = InvalidError("invalid address")
	InvalidCount                 = InvalidError("invalid count")
	InvalidCursor                = InvalidError("invalid cursor")
	InvalidFieldLength           = RecordError("invalid field length")
	InvalidFieldValue            = RecordError("invalid field value")
	InvalidIdentityLength        = InvalidError("invalid identity length")
	InvalidIpAddress             = InvalidError("invalid IP address")
	InvalidPortNumber            = InvalidError("invalid port number")
	InvalidPrivateKey            = InvalidError("invalid private key")
	InvalidPrivateKeyFile        = InvalidError("invalid private key file")
	InvalidPublicKeyFile         = InvalidError("invalid public key file")
	InvalidSignature             = AuthorisationError("invalid signature")
	InvalidStructPointer         = InvalidError("invalid struct pointer")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	KeyFileNotFound              = NotFoundError("key file does not exist")
	LedgerNotInitialised         = NotFoundError("ledger not initialised")
	MissingParameters            = InvalidError("missing parameters")
	NoPublishTarget              = InvalidError("no publish target configured")
	NoteTooLong                  = LengthError("note too long")
	NotInitialised               = NotFoundError("not initialised")
	OriginTooLong                = LengthError("origin too long")
	ProductNameTooLong           = LengthError("product name too long")
	RateLimiting                 = ProcessError("rate limiting")
	RequestAlreadyProcessed      = ExistsError("request already processed")
	RoleTooLong                  = LengthError("role too long")
	SignatureTooLong             = LengthError("signature too long")
	SkuTooLong                   = LengthError("sku too long")
	TransactionAlreadyInUse      = ProcessError("transaction already in use")
	TransactionNotStarted        = ProcessError("transaction not started")
	TruncatedRecord              = RecordError("truncated record")
	Unauthorised                 = AuthorisationError("unauthorised")
	UnknownRecordType            = RecordError("unknown record type")
	UnsupportedRecordVersion     = RecordError("unsupported record version")
	WrongPassword                = InvalidError("wrong password")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e AuthorisationError) Error() string { return string(e) }
func (e OverflowError) Error() string      { return string(e) }
func (e LengthError) Error() string        { return string(e) }
func (e RecordError) Error() string        { return string(e) }
func (e ProcessError) Error() string       { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool        { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool       { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool      { _, ok := e.(NotFoundError); return ok }
func IsErrAuthorisation(e error) bool { _, ok := e.(AuthorisationError); return ok }
func IsErrOverflow(e error) bool      { _, ok := e.(OverflowError); return ok }
func IsErrLength(e error) bool        { _, ok := e.(LengthError); return ok }
func IsErrRecord(e error) bool        { _, ok := e.(RecordError); return ok }
func IsErrProcess(e error) bool       { _, ok := e.(ProcessError); return ok }
