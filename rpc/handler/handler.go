// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package handler - HTTP access to the JSON RPC services and node details
package handler

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/jmt-genius/boxity/counter"
	"github.com/jmt-genius/boxity/fault"
	"github.com/jmt-genius/boxity/rpc/node"
)

// Handler - the HTTP endpoints served by the HTTPS listener
type Handler interface {
	Root(http.ResponseWriter, *http.Request)
	RPC(http.ResponseWriter, *http.Request)
	Details(http.ResponseWriter, *http.Request)
	SetAllow(map[string][]*net.IPNet)
}

// type to allow rpc system to interface to http request
type internalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *internalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *internalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *internalConnection) Close() error {
	return nil
}

type httpHandler struct {
	log            *logger.L
	server         *rpc.Server
	state          node.StateReader
	start          time.Time
	version        string
	count          *counter.Counter
	maxConnections uint64
	allow          map[string][]*net.IPNet
}

// New - create the HTTP handler
//
// count is shared with the TLS RPC listener so both limits and the
// reported connection total cover every client
func New(
	log *logger.L,
	server *rpc.Server,
	state node.StateReader,
	start time.Time,
	version string,
	count *counter.Counter,
	maxConnections uint64,
) Handler {
	return &httpHandler{
		log:            log,
		server:         server,
		state:          state,
		start:          start,
		version:        version,
		count:          count,
		maxConnections: maxConnections,
		allow:          make(map[string][]*net.IPNet),
	}
}

// SetAllow - source networks permitted for each restricted path
func (h *httpHandler) SetAllow(allow map[string][]*net.IPNet) {
	h.allow = allow
}

// Root - this matches anything not matched and returns error
func (h *httpHandler) Root(w http.ResponseWriter, _ *http.Request) {
	sendNotFound(w)
}

// RPC - performs a call to any normal RPC
func (h *httpHandler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.count.Acquire(h.maxConnections) {
		sendTooManyRequests(w)
		return
	}
	defer h.count.Decrement()

	// the codec writes into a buffer so a failed call can still
	// send a proper error status
	buffer := &responseBuffer{}
	serverCodec := jsonrpc.NewServerCodec(&internalConnection{in: r.Body, out: buffer})
	err := h.server.ServeRequest(serverCodec)
	if nil != err {
		h.log.Debugf("rpc request error: %s", err)
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buffer.data)
}

// DetailsReply - the JSON body of a details request
type DetailsReply struct {
	Version     string            `json:"version"`
	Uptime      string            `json:"uptime"`
	RPCs        uint64            `json:"rpcs"`
	Initialised bool              `json:"initialised"`
	Ledger      node.LedgerCounts `json:"ledger"`
}

// Details - GET form of the Node.Info RPC
// (restricted to the "details" allow list)
func (h *httpHandler) Details(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.isAllowed("details", r.RemoteAddr) {
		h.log.Warnf("Deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	if !h.count.Acquire(h.maxConnections) {
		sendTooManyRequests(w)
		return
	}
	defer h.count.Decrement()

	reply := DetailsReply{
		Version: h.version,
		Uptime:  time.Since(h.start).String(),
		RPCs:    h.count.Uint64(),
	}

	state, err := h.state.State()
	if nil == err {
		reply.Initialised = true
		reply.Ledger = node.LedgerCounts{
			TotalBatches: state.TotalBatches,
			NextEventId:  state.NextEventId,
		}
	} else if fault.LedgerNotInitialised != err {
		h.log.Errorf("details state error: %s", err)
		sendInternalServerError(w)
		return
	}

	sendReply(w, reply)
}

func (h *httpHandler) isAllowed(path string, remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if nil != err {
		return false
	}
	ip := net.ParseIP(host)
	if nil == ip {
		return false
	}
	for _, n := range h.allow[path] {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// collects the codec output
type responseBuffer struct {
	data []byte
}

func (b *responseBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

// send an JSON encoded reply
func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

// selected errors as required above
func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}
func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}
func sendForbidden(w http.ResponseWriter) {
	sendError(w, "forbidden", http.StatusForbidden)
}
func sendTooManyRequests(w http.ResponseWriter) {
	sendError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
}
func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write(text)
}
