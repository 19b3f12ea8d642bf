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

func runLog(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	data := &rpccalls.EventData{
		FirstViewImage:  c.String("first-view"),
		SecondViewImage: c.String("second-view"),
	}

	var err error
	required := []struct {
		value *string
		flag  string
		err   error
	}{
		{&data.BatchId, "batch", ErrRequiredBatchId},
		{&data.Actor, "actor", ErrRequiredActor},
		{&data.Role, "role", ErrRequiredRole},
		{&data.Note, "note", ErrRequiredNote},
		{&data.EventHash, "hash", ErrRequiredEventHash},
	}
	for _, r := range required {
		*r.value, err = checkRequired(c.String(r.flag), r.err)
		if nil != err {
			return err
		}
	}

	name, loggedBy, err := checkSigner(c.GlobalString("identity"), c.GlobalString("password"), m.config)
	if nil != err {
		return err
	}
	data.LoggedBy = loggedBy

	if m.verbose {
		fmt.Fprintf(m.e, "logged by: %s\n", name)
		fmt.Fprintf(m.e, "batch: %q\n", data.BatchId)
		fmt.Fprintf(m.e, "actor: %q role: %q\n", data.Actor, data.Role)
		fmt.Fprintf(m.e, "hash: %q\n", data.EventHash)
	}

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.LogEvent(data)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runEvent(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	batchId, err := checkRequired(c.String("batch"), ErrRequiredBatchId)
	if nil != err {
		return err
	}

	id := c.Uint64("id")
	if 0 == id {
		return ErrRequiredEventId
	}

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetEvent(batchId, id)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
