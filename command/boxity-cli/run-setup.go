// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/urfave/cli"

	"github.com/jmt-genius/boxity/command/boxity-cli/configuration"
)

type generatedKeyPair struct {
	Identity string `json:"identity"`
	Seed     string `json:"seed"`
}

func runGenerate(c *cli.Context) error {

	keyPair, err := checkSeed("")
	if nil != err {
		return err
	}

	printJson(c.App.Writer, generatedKeyPair{
		Identity: keyPair.Identity.String(),
		Seed:     hex.EncodeToString(keyPair.Seed()),
	})

	return nil
}

func runSetup(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkName(c.GlobalString("identity"))
	if nil != err {
		return err
	}

	connect, err := checkConnect(c.String("connect"))
	if nil != err {
		return err
	}

	description, err := checkDescription(c.String("description"))
	if nil != err {
		return err
	}

	keyPair, err := checkSeed(c.String("seed"))
	if nil != err {
		return err
	}

	password, err := checkPassword(c.GlobalString("password"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "config: %s\n", m.file)
		fmt.Fprintf(m.e, "connect: %s\n", connect)
		fmt.Fprintf(m.e, "identity: %s\n", name)
		fmt.Fprintf(m.e, "description: %s\n", description)
	}

	config := configuration.New(connect)
	err = config.AddIdentity(name, description, keyPair, password)
	if nil != err {
		return err
	}

	m.config = config
	m.save = true

	fmt.Fprintf(m.w, "%s\n", keyPair.Identity)
	return nil
}

func runAdd(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkName(c.GlobalString("identity"))
	if nil != err {
		return err
	}

	description, err := checkDescription(c.String("description"))
	if nil != err {
		return err
	}

	keyPair, err := checkSeed(c.String("seed"))
	if nil != err {
		return err
	}

	password, err := checkPassword(c.GlobalString("password"))
	if nil != err {
		return err
	}

	err = m.config.AddIdentity(name, description, keyPair, password)
	if nil != err {
		return err
	}
	m.save = true

	fmt.Fprintf(m.w, "%s\n", keyPair.Identity)
	return nil
}

type listedIdentity struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Identity    string `json:"identity"`
	Default     bool   `json:"default"`
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	list := make([]listedIdentity, 0, len(m.config.Identities))
	for name, id := range m.config.Identities {
		list = append(list, listedIdentity{
			Name:        name,
			Description: id.Description,
			Identity:    id.Identity,
			Default:     name == m.config.DefaultIdentity,
		})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})

	printJson(m.w, list)
	return nil
}
