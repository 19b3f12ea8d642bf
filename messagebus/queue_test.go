// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jmt-genius/boxity/messagebus"
)

var commands = []string{"batch", "event", "authorisation"}

func TestQueue(t *testing.T) {
	for _, command := range commands {
		messagebus.Bus.TestQueue.Send(command, []byte(command))
	}

	queue := messagebus.Bus.TestQueue.Chan()
	for _, command := range commands {
		received := <-queue
		assert.Equal(t, command, received.Command, "command")
		assert.Equal(t, [][]byte{[]byte(command)}, received.Parameters, "parameters")
	}
}

func TestBroadcast(t *testing.T) {
	queue := messagebus.NewBroadcastQueue(10)

	// nothing listening so these messages should be dropped
	for _, command := range commands {
		queue.Send("ignored:" + command)
	}

	const listeners = 5

	var l [listeners]int
	var wg sync.WaitGroup

	channels := make([]<-chan messagebus.Message, listeners)
	for i := 0; i < listeners; i += 1 {
		channels[i] = queue.Chan(0)
	}
	assert.Equal(t, listeners, queue.Listeners(), "listeners")

	for i := 0; i < listeners; i += 1 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for _, command := range commands {
				select {
				case received := <-channels[n]:
					if received.Command != command {
						t.Errorf("actual: %q  expected: %q", received.Command, command)
					} else {
						l[n] += 1
					}
				case <-time.After(time.Second):
					t.Errorf("listener[%d] timed out", n)
					return
				}
			}
		}(i)
	}

	// all listening so these messages should be received
	for _, command := range commands {
		queue.Send(command, []byte{0x01})
	}

	wg.Wait()
	for i, n := range l {
		assert.Equal(t, len(commands), n, "listener[%d] received", i)
	}
}

func TestRelease(t *testing.T) {
	queue := messagebus.NewBroadcastQueue(10)

	c1 := queue.Chan(5)
	c2 := queue.Chan(5)

	queue.Release(c1)
	assert.Equal(t, 1, queue.Listeners(), "one released")

	_, ok := <-c1
	assert.False(t, ok, "released channel is closed")

	queue.Send("event")
	select {
	case received := <-c2:
		assert.Equal(t, "event", received.Command, "remaining listener")
	case <-time.After(time.Second):
		t.Error("remaining listener timed out")
	}
}
