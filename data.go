// Copyright 2025 The urlendpoint authors.
// SPDX-License-Identifier: Apache-2.0

package urlendpoint

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// URLError reports a malformed URL error.
type URLError struct {
	Message string
	URL     string
}

func (e URLError) Error() string {
	return fmt.Sprintf("malformed URL %q: %s", e.URL, e.Message)
}

// parseURL parses rawurl, which must be an absolute http or https URL.
func parseURL(rawurl string) (*url.URL, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, URLError{fmt.Sprintf("unable to parse URL: %v", err), rawurl}
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, URLError{"must provide absolute URL", rawurl}
	}
	return u, nil
}

// validURL reports whether rawurl can be served as a rewritten URL.
func validURL(rawurl string) bool {
	_, err := parseURL(rawurl)
	return err == nil
}

// setPath sets the path of u from its escaped form p, keeping the original
// percent-encoding of p when serializing u.
func setPath(u *url.URL, p string) error {
	unescaped, err := url.PathUnescape(p)
	if err != nil {
		return err
	}
	u.Path = unescaped
	u.RawPath = p
	return nil
}

var repeatedSlashes = regexp.MustCompile(`/{2,}`)

// collapseSlashes replaces each run of slashes in p with a single slash.
func collapseSlashes(p string) string {
	return repeatedSlashes.ReplaceAllLiteralString(p, "/")
}

// Options specifies the image transformations carried in the "tr" query
// parameter, such as "w-100,h-200,q-80".
type Options struct {
	Width   string
	Height  string
	Quality string
}

// String returns the tr parameter value for o.  Components are always
// written in width, height, quality order and empty components are omitted.
func (o Options) String() string {
	var parts []string
	if o.Width != "" {
		parts = append(parts, "w-"+o.Width)
	}
	if o.Height != "" {
		parts = append(parts, "h-"+o.Height)
	}
	if o.Quality != "" {
		parts = append(parts, "q-"+o.Quality)
	}
	return strings.Join(parts, ",")
}

// trEscape escapes a tr parameter value for use in a query string.  Commas
// separate transformations and are left as is.
func trEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "%2C", ",")
}
