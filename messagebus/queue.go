// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"
)

// default sizes
const (
	defaultQueueSize    = 1000
	defaultListenerSize = 100
)

// Message - a command and its packed parameters
type Message struct {
	Command    string   // type of packed data
	Parameters [][]byte // array of parameters
}

// BroadcastQueue - fan out every message to all listeners
//
// listeners that fall behind lose messages rather than block the sender
type BroadcastQueue struct {
	sync.RWMutex
	in  chan Message
	out []chan Message
}

// Queue - a simple single consumer queue
type Queue struct {
	c chan Message
}

type busses struct {
	Broadcast *BroadcastQueue
	TestQueue *Queue
}

// Bus - the queues in use
var Bus = busses{
	Broadcast: NewBroadcastQueue(defaultQueueSize),
	TestQueue: NewQueue(defaultQueueSize),
}

// NewQueue - create a single consumer queue
func NewQueue(size int) *Queue {
	return &Queue{
		c: make(chan Message, size),
	}
}

// Send - queue a message, blocking if the queue is full
func (queue *Queue) Send(command string, parameters ...[]byte) {
	queue.c <- Message{
		Command:    command,
		Parameters: parameters,
	}
}

// Chan - channel to read from
func (queue *Queue) Chan() <-chan Message {
	return queue.c
}

// NewBroadcastQueue - create a queue and start its distributor
func NewBroadcastQueue(size int) *BroadcastQueue {
	queue := &BroadcastQueue{
		in:  make(chan Message, size),
		out: make([]chan Message, 0, 10),
	}
	go queue.distribute()
	return queue
}

// Send - queue a message for all current listeners
//
// a message sent with no listeners registered is dropped
func (queue *BroadcastQueue) Send(command string, parameters ...[]byte) {
	queue.RLock()
	listening := 0 != len(queue.out)
	queue.RUnlock()
	if !listening {
		return
	}

	select {
	case queue.in <- Message{Command: command, Parameters: parameters}:
	default:
	}
}

// Chan - register a new listener
//
// size <= 0 selects the default buffer size
func (queue *BroadcastQueue) Chan(size int) <-chan Message {
	if size <= 0 {
		size = defaultListenerSize
	}
	c := make(chan Message, size)

	queue.Lock()
	queue.out = append(queue.out, c)
	queue.Unlock()
	return c
}

// Release - stop delivering to a listener
func (queue *BroadcastQueue) Release(c <-chan Message) {
	queue.Lock()
	defer queue.Unlock()

	for i, out := range queue.out {
		if (<-chan Message)(out) == c {
			queue.out = append(queue.out[:i], queue.out[i+1:]...)
			close(out)
			return
		}
	}
}

// Listeners - number of registered listeners
func (queue *BroadcastQueue) Listeners() int {
	queue.RLock()
	defer queue.RUnlock()
	return len(queue.out)
}

// copy each incoming message to every listener without blocking
func (queue *BroadcastQueue) distribute() {
	for item := range queue.in {
		queue.RLock()
		for _, out := range queue.out {
			select {
			case out <- item:
			default:
			}
		}
		queue.RUnlock()
	}
}
