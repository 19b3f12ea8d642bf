// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package clock - trusted timestamps for ledger records
package clock

import (
	"sync"
	"time"
)

// Clock - source of record timestamps in unix seconds
type Clock interface {
	Now() uint64
}

// Monotonic - a clock that never goes backwards
type Monotonic struct {
	sync.Mutex
	source func() time.Time
	last   uint64
}

// New - wrap a wall clock, nil means time.Now
func New(source func() time.Time) *Monotonic {
	if nil == source {
		source = time.Now
	}
	return &Monotonic{
		source: source,
	}
}

// Now - the later of the wall clock and the last value returned
func (c *Monotonic) Now() uint64 {
	c.Lock()
	defer c.Unlock()

	now := c.source().Unix()
	if now > 0 && uint64(now) > c.last {
		c.last = uint64(now)
	}
	return c.last
}

// Advance - raise the floor, e.g. to the newest timestamp already stored
func (c *Monotonic) Advance(floor uint64) {
	c.Lock()
	if floor > c.last {
		c.last = floor
	}
	c.Unlock()
}
