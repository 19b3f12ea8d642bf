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

func runAuthorise(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	user, err := checkUser(c.String("user"), m.config)
	if nil != err {
		return err
	}
	authorised := !c.Bool("deny")

	name, owner, err := checkSigner(c.GlobalString("identity"), c.GlobalString("password"), m.config)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", name)
		fmt.Fprintf(m.e, "user: %s\n", user)
		fmt.Fprintf(m.e, "authorised: %t\n", authorised)
	}

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Authorise(owner, user, authorised)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runAuthorisation(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	user, err := checkUser(c.String("user"), m.config)
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetAuthorisation(user)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
