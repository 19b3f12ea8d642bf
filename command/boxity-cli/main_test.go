// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmt-genius/boxity/command/boxity-cli/configuration"
	"github.com/jmt-genius/boxity/identity"
)

const testPassword = "supply chain secret"

func run(t *testing.T, args ...string) (string, error) {
	app := newApp()
	out := &bytes.Buffer{}
	app.Writer = out
	app.ErrWriter = &bytes.Buffer{}
	err := app.Run(append([]string{"boxity-cli"}, args...))
	return out.String(), err
}

func TestSetupAddList(t *testing.T) {
	dir, err := ioutil.TempDir("", "boxity-cli")
	assert.Nil(t, err, "temp dir error")
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "cli.json")

	out, err := run(t, "-c", file, "-i", "owner", "-p", testPassword, "setup", "-n", "127.0.0.1:2130", "-d", "ledger owner")
	assert.Nil(t, err, "setup error")
	ownerId, err := identity.FromBase58(strings.TrimSpace(out))
	assert.Nil(t, err, "setup did not print an identity")

	_, err = run(t, "-c", file, "-i", "owner", "-p", testPassword, "setup", "-n", "127.0.0.1:2130", "-d", "again")
	assert.NotNil(t, err, "setup overwrote configuration")

	seed := strings.Repeat("07", identity.SeedSize)
	expected, _ := identity.KeyPairFromSeed(bytes.Repeat([]byte{7}, identity.SeedSize))
	out, err = run(t, "-c", file, "-i", "inspector", "-p", testPassword, "add", "-d", "field inspector", "-s", seed)
	assert.Nil(t, err, "add error")
	assert.Equal(t, expected.Identity.String(), strings.TrimSpace(out), "wrong identity from seed")

	out, err = run(t, "-c", file, "list")
	assert.Nil(t, err, "list error")

	var listed []listedIdentity
	err = json.Unmarshal([]byte(out), &listed)
	assert.Nil(t, err, "list output error")
	assert.Equal(t, 2, len(listed), "wrong identity count")
	assert.Equal(t, "inspector", listed[0].Name, "wrong order")
	assert.Equal(t, "owner", listed[1].Name, "wrong order")
	assert.True(t, listed[1].Default, "owner is not default")
	assert.Equal(t, ownerId.String(), listed[1].Identity, "wrong owner identity")

	config, err := configuration.Load(file)
	assert.Nil(t, err, "load error")
	_, err = config.Private(testPassword, "inspector")
	assert.Nil(t, err, "cannot unlock added identity")
}

func TestGenerate(t *testing.T) {
	out, err := run(t, "generate")
	assert.Nil(t, err, "generate error")

	var generated generatedKeyPair
	err = json.Unmarshal([]byte(out), &generated)
	assert.Nil(t, err, "generate output error")

	keyPair, err := checkSeed(generated.Seed)
	assert.Nil(t, err, "seed error")
	assert.Equal(t, generated.Identity, keyPair.Identity.String(), "seed does not match identity")
}

func TestCheckUser(t *testing.T) {
	config := configuration.New("127.0.0.1:2130")
	keyPair, _ := identity.NewKeyPair()
	_ = config.AddIdentity("carrier", "truck", keyPair, testPassword)

	id, err := checkUser("carrier", config)
	assert.Nil(t, err, "name lookup error")
	assert.Equal(t, keyPair.Identity, id, "wrong identity by name")

	id, err = checkUser(keyPair.Identity.String(), config)
	assert.Nil(t, err, "base58 error")
	assert.Equal(t, keyPair.Identity, id, "wrong identity by base58")

	_, err = checkUser("", config)
	assert.Equal(t, ErrRequiredUser, err, "empty user accepted")

	_, _, err = checkSigner("", "", config)
	assert.Equal(t, ErrRequiredPassword, err, "empty password accepted")

	name, signer, err := checkSigner("", testPassword, config)
	assert.Nil(t, err, "signer error")
	assert.Equal(t, "carrier", name, "default identity not used")
	assert.Equal(t, keyPair.Identity, signer.Identity, "wrong signer")
}
