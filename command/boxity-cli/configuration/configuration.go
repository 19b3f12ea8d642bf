// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - the boxity-cli JSON configuration with its
// password protected identities
package configuration

import (
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/identity"
)

// Configuration - configuration file data format
type Configuration struct {
	DefaultIdentity string              `json:"default_identity"`
	Connect         string              `json:"connect"`
	Identities      map[string]Identity `json:"identities"`
}

// Identity - mix of plain and encrypted data
type Identity struct {
	Description string `json:"description"`
	Identity    string `json:"identity"`
	Data        string `json:"data"`
	Salt        string `json:"salt"`
}

// New - an empty configuration for a node
func New(connect string) *Configuration {
	return &Configuration{
		Connect:    connect,
		Identities: make(map[string]Identity),
	}
}

// Load - read the configuration
func Load(filename string) (*Configuration, error) {

	filename, err := filepath.Abs(filepath.Clean(filename))
	if nil != err {
		return nil, err
	}

	f, err := os.Open(filename)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	options := &Configuration{}
	err = json.NewDecoder(f).Decode(options)
	if nil != err {
		return nil, err
	}
	if nil == options.Identities {
		options.Identities = make(map[string]Identity)
	}
	return options, nil
}

// Save - replace the configuration file keeping the previous one as ".bk"
func Save(filename string, configuration *Configuration) error {

	tempFile := filename + ".new"
	previousFile := filename + ".bk"

	data, err := json.MarshalIndent(configuration, "", "  ")
	if nil != err {
		return err
	}

	err = os.MkdirAll(filepath.Dir(filename), 0700)
	if nil != err {
		return err
	}

	err = ioutil.WriteFile(tempFile, append(data, '\n'), 0600)
	if nil != err {
		return err
	}

	err = os.Remove(previousFile)
	if nil != err && !os.IsNotExist(err) {
		return err
	}
	err = os.Rename(filename, previousFile)
	if nil != err && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tempFile, filename)
}

// Identity - find identity for a given name
func (config *Configuration) Identity(name string) (*Identity, error) {
	id, ok := config.Identities[name]
	if !ok {
		return nil, fault.IdentityNameNotFound
	}

	return &id, nil
}

// Public - the public identity for a given name
func (config *Configuration) Public(name string) (identity.Identity, error) {
	id, err := config.Identity(name)
	if nil != err {
		return identity.Zero, err
	}

	return identity.FromBase58(id.Identity)
}

// Private - find identity and decrypt its key pair
func (config *Configuration) Private(password string, name string) (*identity.KeyPair, error) {
	id, err := config.Identity(name)
	if nil != err {
		return nil, err
	}

	return decryptIdentity(password, id)
}

// AddIdentity - store an encrypted key pair, the first one becomes
// the default
func (config *Configuration) AddIdentity(name string, description string, keyPair *identity.KeyPair, password string) error {

	if _, ok := config.Identities[name]; ok {
		return fault.IdentityNameAlreadyExists
	}

	salt, secretKey, err := hashPassword(password)
	if nil != err {
		return err
	}

	encrypted, err := encryptData(hex.EncodeToString(keyPair.Seed()), secretKey)
	if nil != err {
		return err
	}

	config.Identities[name] = Identity{
		Description: description,
		Identity:    keyPair.Identity.String(),
		Data:        encrypted,
		Salt:        salt.String(),
	}

	if "" == config.DefaultIdentity {
		config.DefaultIdentity = name
	}

	return nil
}
