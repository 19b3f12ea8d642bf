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

func runCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	batchId, err := checkRequired(c.String("batch"), ErrRequiredBatchId)
	if nil != err {
		return err
	}
	productName, err := checkRequired(c.String("product"), ErrRequiredProductName)
	if nil != err {
		return err
	}
	origin, err := checkRequired(c.String("origin"), ErrRequiredOrigin)
	if nil != err {
		return err
	}

	name, creator, err := checkSigner(c.GlobalString("identity"), c.GlobalString("password"), m.config)
	if nil != err {
		return err
	}

	data := &rpccalls.BatchData{
		BatchId:            batchId,
		ProductName:        productName,
		Sku:                c.String("sku"),
		Origin:             origin,
		FirstViewBaseline:  c.String("first-view"),
		SecondViewBaseline: c.String("second-view"),
		Creator:            creator,
	}

	if m.verbose {
		fmt.Fprintf(m.e, "creator: %s\n", name)
		fmt.Fprintf(m.e, "batch: %q\n", data.BatchId)
		fmt.Fprintf(m.e, "product: %q\n", data.ProductName)
		fmt.Fprintf(m.e, "sku: %q\n", data.Sku)
		fmt.Fprintf(m.e, "origin: %q\n", data.Origin)
	}

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.CreateBatch(data)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runBatch(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	batchId, err := checkRequired(c.String("batch"), ErrRequiredBatchId)
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetBatch(batchId)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runProvenance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	batchId, err := checkRequired(c.String("batch"), ErrRequiredBatchId)
	if nil != err {
		return err
	}

	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Provenance(batchId, c.Uint64("start"), count)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
