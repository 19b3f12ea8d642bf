// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"fmt"
	"math/rand"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/jmt-genius/boxity/counter"
	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/rpc/certificate"
	"github.com/jmt-genius/boxity/rpc/fixtures"
	"github.com/jmt-genius/boxity/rpc/listeners"
)

type Add struct{}
type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func testTLSConfig(t *testing.T) (*tls.Config, [32]byte) {
	cer, key, err := fixtures.Certificate()
	if nil != err {
		t.Fatalf("certificate error: %s", err)
	}
	tlsConfig, fin, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	if nil != err {
		t.Fatalf("get certificate error: %s", err)
	}
	return tlsConfig, fin
}

func TestRpcListenerServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	port := rand.Intn(30000) + 30000
	con := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Bandwidth:          10000000,
		Listen:             []string{fmt.Sprintf("127.0.0.1:%d", port)},
	}

	count := counter.Counter(0)

	s := rpc.NewServer()
	err := s.Register(Add{})
	if err != nil {
		t.Fatalf("register with error: %s", err)
	}

	tlsConfig, fin := testTLSConfig(t)

	l, err := listeners.NewRPC(
		&con,
		logger.New(fixtures.LogCategory),
		&count,
		s,
		tlsConfig,
		fin,
	)
	assert.Nil(t, err, "wrong NewRPC")

	err = l.Serve()
	assert.Nil(t, err, "wrong Serve")
	defer l.Close()

	c, err := tls.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", port), &tls.Config{
		InsecureSkipVerify: true,
	})
	if err != nil {
		t.Fatalf("dial with error: %s", err)
	}

	arg := AddArg{
		A: 2,
		B: 5,
	}
	var reply int

	client := jsonrpc.NewClient(c)
	err = client.Call("Add.Add", &arg, &reply)
	assert.Nil(t, err, "wrong client Call")
	assert.Equal(t, arg.A+arg.B, reply, "wrong result")
	assert.Equal(t, uint64(1), count.Uint64(), "wrong connection count")

	client.Close()
	assert.Eventually(t, func() bool {
		return count.IsZero()
	}, time.Second, 10*time.Millisecond, "connection not released")
}

func TestRpcListenerInvalidConfiguration(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	items := []struct {
		con listeners.RPCConfiguration
		err error
	}{
		{
			con: listeners.RPCConfiguration{MaximumConnections: 0, Bandwidth: 10000000, Listen: []string{"127.0.0.1:2130"}},
			err: fault.MissingParameters,
		},
		{
			con: listeners.RPCConfiguration{MaximumConnections: 1, Bandwidth: 100, Listen: []string{"127.0.0.1:2130"}},
			err: fault.MissingParameters,
		},
		{
			con: listeners.RPCConfiguration{MaximumConnections: 1, Bandwidth: 10000000, Listen: []string{}},
			err: fault.MissingParameters,
		},
		{
			con: listeners.RPCConfiguration{MaximumConnections: 1, Bandwidth: 10000000, Listen: []string{"localhost:2130"}},
			err: fault.InvalidIpAddress,
		},
		{
			con: listeners.RPCConfiguration{MaximumConnections: 1, Bandwidth: 10000000, Listen: []string{"127.0.0.1"}},
			err: fault.InvalidPortNumber,
		},
	}

	for i, item := range items {
		count := counter.Counter(0)
		_, err := listeners.NewRPC(
			&item.con,
			logger.New(fixtures.LogCategory),
			&count,
			rpc.NewServer(),
			&tls.Config{},
			[32]byte{},
		)
		assert.Equal(t, item.err, err, "%d: wrong error", i)
	}
}

func TestRpcListenerAddressForms(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	con := listeners.RPCConfiguration{
		MaximumConnections: 1,
		Bandwidth:          10000000,
		Listen:             []string{"*:2130", "[::1]:2130", "0.0.0.0:2130"},
	}
	count := counter.Counter(0)
	_, err := listeners.NewRPC(
		&con,
		logger.New(fixtures.LogCategory),
		&count,
		rpc.NewServer(),
		&tls.Config{},
		[32]byte{},
	)
	assert.Nil(t, err, "valid addresses rejected")
	assert.Equal(t, "*:2130", con.Listen[0], "configuration modified")
}
