// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/jmt-genius/boxity/command/boxity-cli/rpccalls"
)

func runInit(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, owner, err := checkSigner(c.GlobalString("identity"), c.GlobalString("password"), m.config)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", name)
	}

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Initialise(owner)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.LedgerInfo()
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runNodeInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.NodeInfo()
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
