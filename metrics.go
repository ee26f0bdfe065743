// Copyright 2025 The urlendpoint authors.
// SPDX-License-Identifier: Apache-2.0

package urlendpoint

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	handlerResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "urlendpoint_results_total",
		Help: "Handled URLs by handler and result kind.",
	}, []string{"handler", "result"})
	handlerDuration = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name: "urlendpoint_handle_seconds",
		Help: "Time taken to handle a URL in seconds.",
	}, []string{"handler"})
)

func init() {
	prometheus.MustRegister(handlerResults)
	prometheus.MustRegister(handlerDuration)
}

// Instrument returns a Handler that records metrics for each URL handled by
// h under the given handler name.  The result of h is returned unchanged.
func Instrument(name string, h Handler) Handler {
	return HandlerFunc(func(rawurl, urlPrefix string, ctx Context) Result {
		start := time.Now()
		res := h.Handle(rawurl, urlPrefix, ctx)
		handlerDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		handlerResults.WithLabelValues(name, resultKind(rawurl, res)).Inc()
		return res
	})
}

// resultKind labels res as "block", "signed", "rewrite", or "passthrough".
func resultKind(rawurl string, res Result) string {
	switch r := res.(type) {
	case Block:
		return "block"
	case Rewrite:
		if r.SignURL {
			return "signed"
		}
		if r.URL != rawurl {
			return "rewrite"
		}
	}
	return "passthrough"
}
