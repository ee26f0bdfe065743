// Copyright 2025 The urlendpoint authors.
// SPDX-License-Identifier: Apache-2.0

// urlendpoint runs a URL endpoint handler over a list of URLs and prints the
// result for each one as a line of JSON.  URLs are read from the command line,
// or one per line from stdin if none are given.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"willnorris.com/go/urlendpoint"
	"willnorris.com/go/urlendpoint/logadapter"
	"willnorris.com/go/urlendpoint/third_party/envy"
)

const envPrefix = "URLENDPOINT"

type options struct {
	config  string
	handler string
	prefix  string
	host    string
	client  string
	debug   bool
	verbose bool
	urls    []string
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(opts.verbose, opts.debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	h, name, err := buildHandler(opts)
	if err != nil {
		logger.Fatal("error building handler", zap.Error(err))
	}
	h = urlendpoint.Instrument(name, h)

	urls := opts.urls
	if len(urls) == 0 {
		if urls, err = readURLs(os.Stdin); err != nil {
			logger.Fatal("error reading URLs", zap.Error(err))
		}
	}

	if err := process(h, opts, urls, os.Stdout, logger); err != nil {
		logger.Fatal("error writing results", zap.Error(err))
	}
}

func parseFlags(args []string) (*options, error) {
	opts := new(options)
	fs := flag.NewFlagSet("urlendpoint", flag.ContinueOnError)
	fs.StringVar(&opts.config, "config", "", "YAML file describing the handler and its options")
	fs.StringVar(&opts.handler, "handler", "", "ID of the handler to run, overriding the config file")
	fs.StringVar(&opts.prefix, "prefix", "", "URL prefix identifier passed to the handler")
	fs.StringVar(&opts.host, "host", "", "request host passed to the handler (default: host of each URL)")
	fs.StringVar(&opts.client, "client", "", "client number passed to the handler")
	fs.BoolVar(&opts.debug, "debug", false, "enable handler debug logging")
	fs.BoolVar(&opts.verbose, "verbose", false, "print human readable log messages")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := envy.ParseFlagSet(envPrefix, fs); err != nil {
		return nil, err
	}
	opts.urls = fs.Args()
	return opts, nil
}

// buildHandler returns the handler described by opts, along with its name.
func buildHandler(opts *options) (urlendpoint.Handler, string, error) {
	cfg := urlendpoint.DefaultConfig()
	if opts.config != "" {
		var err error
		if cfg, err = urlendpoint.LoadConfig(opts.config); err != nil {
			return nil, "", err
		}
	}
	if opts.handler != "" {
		cfg.Handler = urlendpoint.ModuleID(opts.handler)
	}

	h, err := cfg.Build()
	if err != nil {
		return nil, "", err
	}
	return h, string(cfg.Handler), nil
}

func newLogger(verbose, debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func readURLs(r io.Reader) ([]string, error) {
	var urls []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		if line := strings.TrimSpace(s.Text()); line != "" {
			urls = append(urls, line)
		}
	}
	return urls, s.Err()
}

// process runs h over each URL and writes the results to w.
func process(h urlendpoint.Handler, opts *options, urls []string, w io.Writer, logger *zap.Logger) error {
	for _, u := range urls {
		reqLogger := logger.With(zap.String("request_id", uuid.NewString()))
		ctx := urlendpoint.Context{
			Host:         opts.host,
			ClientNumber: opts.client,
			IsDebug:      opts.debug,
			Logger:       logadapter.Zap(reqLogger),
		}
		if ctx.Host == "" {
			ctx.Host = hostname(u)
		}

		b, err := urlendpoint.MarshalResult(h.Handle(u, opts.prefix, ctx))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n", b); err != nil {
			return err
		}
	}
	return nil
}

func hostname(s string) string {
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
