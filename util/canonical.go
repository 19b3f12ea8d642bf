// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"net"
	"strconv"
	"strings"

	"github.com/jmt-genius/boxity/fault"
)

// CanonicalIPandPort - make the IP:Port canonical, optionally adding
// a prefix such as "tcp://" for ZeroMQ endpoints
//
// examples:
//   IPv4:  127.0.0.1:1234
//   IPv6:  [::1]:1234
//   "*" as the host is accepted and means all interfaces
func CanonicalIPandPort(prefix string, hostPort string) (string, error) {

	host, port, err := net.SplitHostPort(strings.TrimSpace(hostPort))
	if nil != err {
		return "", fault.InvalidIpAddress
	}

	numericPort, err := strconv.Atoi(strings.TrimSpace(port))
	if nil != err {
		return "", fault.InvalidPortNumber
	}
	if numericPort < 1 || numericPort > 65535 {
		return "", fault.InvalidPortNumber
	}

	host = strings.TrimSpace(host)
	if "*" == host {
		return prefix + "*:" + strconv.Itoa(numericPort), nil
	}

	IP := net.ParseIP(host)
	if nil == IP {
		return "", fault.InvalidIpAddress
	}

	if nil != IP.To4() {
		return prefix + IP.String() + ":" + strconv.Itoa(numericPort), nil
	}
	return prefix + "[" + IP.String() + "]:" + strconv.Itoa(numericPort), nil
}
