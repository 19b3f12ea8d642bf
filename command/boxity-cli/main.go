// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/jmt-genius/boxity/command/boxity-cli/configuration"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	save    bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp()

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {

	app := cli.NewApp()
	app.Name = "boxity-cli"
	app.Usage = "sign and submit provenance records to boxityd"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: defaultConfigFile(),
			Usage: " configuration `FILE`",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` [default identity]",
		},
		cli.StringFlag{
			Name:   "password, p",
			Value:  "",
			Usage:  " identity `PASSWORD`",
			EnvVar: "BOXITY_PASSWORD",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "generate",
			Usage:  "generate key pair, will not store in config file",
			Action: runGenerate,
		},
		{
			Name:      "setup",
			Usage:     "Initialise boxity-cli configuration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "connect, n",
					Value: "",
					Usage: "*boxityd host/IP and port, `HOST:PORT`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: " using existing hex `SEED`",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "add",
			Usage:     "add a new identity to config file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: " using existing hex `SEED`",
				},
			},
			Action: runAdd,
		},
		{
			Name:   "list",
			Usage:  "list the identities in the config file",
			Action: runList,
		},
		{
			Name:   "init",
			Usage:  "perform ledger genesis, identity becomes the owner",
			Action: runInit,
		},
		{
			Name:      "create",
			Usage:     "create a new product batch",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "batch, b",
					Value: "",
					Usage: "*batch `ID`",
				},
				cli.StringFlag{
					Name:  "product, n",
					Value: "",
					Usage: "*product `NAME`",
				},
				cli.StringFlag{
					Name:  "sku, k",
					Value: "",
					Usage: " stock keeping unit `SKU`",
				},
				cli.StringFlag{
					Name:  "origin, o",
					Value: "",
					Usage: "*place of origin `STRING`",
				},
				cli.StringFlag{
					Name:  "first-view, f",
					Value: "",
					Usage: " first view baseline image `URI`",
				},
				cli.StringFlag{
					Name:  "second-view, s",
					Value: "",
					Usage: " second view baseline image `URI`",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "log",
			Usage:     "log a supply chain event against a batch",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "batch, b",
					Value: "",
					Usage: "*batch `ID`",
				},
				cli.StringFlag{
					Name:  "actor, a",
					Value: "",
					Usage: "*actor `NAME`",
				},
				cli.StringFlag{
					Name:  "role, r",
					Value: "",
					Usage: "*actor `ROLE`",
				},
				cli.StringFlag{
					Name:  "note, n",
					Value: "",
					Usage: "*event `NOTE`",
				},
				cli.StringFlag{
					Name:  "first-view, f",
					Value: "",
					Usage: " first view image `URI`",
				},
				cli.StringFlag{
					Name:  "second-view, s",
					Value: "",
					Usage: " second view image `URI`",
				},
				cli.StringFlag{
					Name:  "hash, x",
					Value: "",
					Usage: "*event `HASH`",
				},
			},
			Action: runLog,
		},
		{
			Name:      "authorise",
			Usage:     "owner only: allow or deny a user identity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "user, u",
					Value: "",
					Usage: "*base58 user `IDENTITY` or identity name from config",
				},
				cli.BoolFlag{
					Name:  "deny, d",
					Usage: " record the user as not authorised",
				},
			},
			Action: runAuthorise,
		},
		{
			Name:      "batch",
			Usage:     "display a batch",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "batch, b",
					Value: "",
					Usage: "*batch `ID`",
				},
			},
			Action: runBatch,
		},
		{
			Name:      "provenance",
			Usage:     "list the events of a batch",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "batch, b",
					Value: "",
					Usage: "*batch `ID`",
				},
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " first event `ID`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum events per page `COUNT`",
				},
			},
			Action: runProvenance,
		},
		{
			Name:      "event",
			Usage:     "display an event",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "batch, b",
					Value: "",
					Usage: "*batch `ID`",
				},
				cli.Uint64Flag{
					Name:  "id, e",
					Value: 0,
					Usage: "*event `ID`",
				},
			},
			Action: runEvent,
		},
		{
			Name:      "authorisation",
			Usage:     "display the allowlist entry of a user",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "user, u",
					Value: "",
					Usage: "*base58 user `IDENTITY` or identity name from config",
				},
			},
			Action: runAuthorisation,
		},
		{
			Name:   "info",
			Usage:  "display the ledger state",
			Action: runInfo,
		},
		{
			Name:   "node",
			Usage:  "display boxityd status",
			Action: runNodeInfo,
		},
		{
			Name:  "version",
			Usage: "display boxity-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration before any command
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		command := c.Args().Get(0)
		switch command {
		case "", "version", "generate", "help", "h":
			return nil
		}

		file, err := checkConfigFile(c.GlobalString("config"))
		if nil != err {
			return err
		}

		m := &metadata{
			file:    file,
			save:    false,
			verbose: verbose,
			e:       e,
			w:       w,
		}
		c.App.Metadata["config"] = m

		if "setup" == command {
			if exists, _ := checkFileExists(file); exists {
				return fmt.Errorf("not overwriting existing configuration: %q", file)
			}
			return nil
		}

		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		m.config, err = configuration.Load(file)
		if nil != err {
			return err
		}
		return nil
	}

	// update the configuration if required
	app.After = func(c *cli.Context) error {
		e := c.App.ErrWriter
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		if m.save {
			if c.GlobalBool("verbose") {
				fmt.Fprintf(e, "updating config file: %s\n", m.file)
			}
			err := configuration.Save(m.file, m.config)
			if nil != err {
				return err
			}
		}
		return nil
	}

	return app
}
