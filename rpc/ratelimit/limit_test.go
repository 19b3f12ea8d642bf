// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/rpc/ratelimit"
)

func TestLimit(t *testing.T) {
	limiter := rate.NewLimiter(100, 10)
	for i := 0; i < 10; i++ {
		assert.Nil(t, ratelimit.Limit(limiter), "burst request limited")
	}
}

func TestLimitNInvalidCount(t *testing.T) {
	limiter := rate.NewLimiter(100, 10)

	err := ratelimit.LimitN(limiter, 0, 5)
	assert.Equal(t, fault.InvalidCount, err, "zero count accepted")

	err = ratelimit.LimitN(limiter, 6, 5)
	assert.Equal(t, fault.InvalidCount, err, "excess count accepted")

	err = ratelimit.LimitN(limiter, 5, 5)
	assert.Nil(t, err, "valid count rejected")
}

func TestLimitNAboveBurst(t *testing.T) {
	limiter := rate.NewLimiter(100, 2)

	err := ratelimit.LimitN(limiter, 3, 5)
	assert.Equal(t, fault.RateLimiting, err, "count above burst accepted")
}
