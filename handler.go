// Copyright 2025 The urlendpoint authors.
// SPDX-License-Identifier: Apache-2.0

// Package urlendpoint provides URL endpoint handlers for an image delivery
// CDN.  A handler receives the incoming request URL, the URL prefix
// identifier of the endpoint that matched, and a read-only request context.
// It returns either a rewritten URL, optionally marked for signing, or a
// blocking response that short-circuits the request before anything is
// fetched from the origin.
//
// Handlers are pure functions of their input: they hold only configuration
// built before first use and are safe for concurrent use.  A handler never
// panics or reports an error to its caller.  If something goes wrong, the
// original URL is passed through unchanged.
package urlendpoint // import "willnorris.com/go/urlendpoint"

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Fields holds structured logging data.
type Fields map[string]any

// Logger is the leveled, structured logger supplied by the host with each
// request.
type Logger interface {
	Info(fields Fields, msg string)
	Warn(fields Fields, msg string)
	Error(fields Fields, msg string)
	Debug(fields Fields, msg string)
}

// Context is the read-only request context supplied by the host.
type Context struct {
	Host         string // request hostname
	ClientNumber string // client identifier
	IsDebug      bool   // debug mode flag
	Logger       Logger // request logger; nil discards all messages
}

// Result is the outcome of handling a single request.  It is either a
// Rewrite or a Block.
type Result interface {
	result()
}

// Rewrite is a Result that serves the request from URL.
type Rewrite struct {
	URL string `json:"url"`

	// If true, the host must sign URL before serving it.
	SignURL bool `json:"signURL"`
}

// Body is the response body of a Block result.
type Body map[string]any

// Block is a Result that ends the request early with the given status
// and body.
type Block struct {
	Status int  `json:"status"`
	Body   Body `json:"body"`
}

func (Rewrite) result() {}
func (Block) result()   {}

// Forbidden returns a 403 Block with the provided error message.
func Forbidden(msg string) Block {
	return Block{Status: http.StatusForbidden, Body: Body{"error": msg}}
}

// MarshalResult encodes r in the JSON shape expected by the host, such as
// {"url":"...","signURL":true} or {"status":403,"body":{"error":"..."}}.
func MarshalResult(r Result) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Handler handles a single request URL.
type Handler interface {
	Handle(rawurl, urlPrefix string, ctx Context) Result
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(rawurl, urlPrefix string, ctx Context) Result

// Handle calls f(rawurl, urlPrefix, ctx).
func (f HandlerFunc) Handle(rawurl, urlPrefix string, ctx Context) Result {
	return f(rawurl, urlPrefix, ctx)
}

// PassThrough returns every URL unchanged and unsigned.
var PassThrough Handler = HandlerFunc(func(rawurl, _ string, _ Context) Result {
	return Rewrite{URL: rawurl}
})
