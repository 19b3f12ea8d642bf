// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/jmt-genius/boxity/command/boxity-cli/configuration"
	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/identity"
)

var (
	ErrRequiredActor       = fault.InvalidError("actor is required")
	ErrRequiredBatchId     = fault.InvalidError("batch id is required")
	ErrRequiredConfigFile  = fault.InvalidError("config file is required")
	ErrRequiredConnect     = fault.InvalidError("connect is required")
	ErrRequiredDescription = fault.InvalidError("description is required")
	ErrRequiredEventHash   = fault.InvalidError("event hash is required")
	ErrRequiredEventId     = fault.InvalidError("event id is required")
	ErrRequiredIdentity    = fault.InvalidError("identity is required")
	ErrRequiredNote        = fault.InvalidError("note is required")
	ErrRequiredOrigin      = fault.InvalidError("origin is required")
	ErrRequiredPassword    = fault.InvalidError("password is required")
	ErrRequiredProductName = fault.InvalidError("product name is required")
	ErrRequiredRole        = fault.InvalidError("role is required")
	ErrRequiredUser        = fault.InvalidError("user is required")
)

func defaultConfigFile() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if "" == base {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, "boxity-cli", "boxity-cli.json")
}

// config is required
func checkConfigFile(file string) (string, error) {
	if "" == file {
		return "", ErrRequiredConfigFile
	}

	file = os.ExpandEnv(file)
	return filepath.Abs(filepath.Clean(file))
}

func checkFileExists(name string) (bool, error) {
	_, err := os.Stat(name)
	return nil == err, err
}

// identity is required, but not check the config file
func checkName(name string) (string, error) {
	if "" == name {
		return "", ErrRequiredIdentity
	}

	return name, nil
}

// connect is required.
func checkConnect(connect string) (string, error) {
	if "" == connect {
		return "", ErrRequiredConnect
	}

	return connect, nil
}

// description is required
func checkDescription(description string) (string, error) {
	if "" == description {
		return "", ErrRequiredDescription
	}

	return description, nil
}

func checkRequired(value string, err error) (string, error) {
	if "" == value {
		return "", err
	}
	return value, nil
}

// seed is optional, a new key pair is made when it is missing
func checkSeed(seed string) (*identity.KeyPair, error) {
	if "" == seed {
		return identity.NewKeyPair()
	}

	b, err := hex.DecodeString(seed)
	if nil != err {
		return nil, fault.InvalidPrivateKey
	}
	return identity.KeyPairFromSeed(b)
}

// the password from the flag or environment
func checkPassword(password string) (string, error) {
	if "" == password {
		return "", ErrRequiredPassword
	}
	return password, nil
}

// a user is either an identity name in the configuration or a base58 identity
func checkUser(user string, config *configuration.Configuration) (identity.Identity, error) {
	if "" == user {
		return identity.Zero, ErrRequiredUser
	}
	if nil != config {
		if id, err := config.Public(user); nil == err {
			return id, nil
		}
	}
	return identity.FromBase58(user)
}

// the named identity, or the default one, unlocked by the password
func checkSigner(name string, password string, config *configuration.Configuration) (string, *identity.KeyPair, error) {
	if "" == name {
		name = config.DefaultIdentity
	}
	name, err := checkName(name)
	if nil != err {
		return "", nil, err
	}

	password, err = checkPassword(password)
	if nil != err {
		return "", nil, err
	}

	keyPair, err := config.Private(password, name)
	if nil != err {
		return "", nil, err
	}
	return name, keyPair, nil
}
