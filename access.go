// Copyright 2025 The urlendpoint authors.
// SPDX-License-Identifier: Apache-2.0

package urlendpoint

import "strings"

// AccessControl blocks requests for private paths and sensitive file types
// before anything is fetched from the origin.  Requests that are not
// blocked are passed through unchanged.
type AccessControl struct {
	// Paths lists path substrings that are never served, such as "/private/".
	Paths []string `yaml:"paths" validate:"dive,required"`

	// Extensions lists file extensions that are never served, such as ".env".
	// Matching is case-insensitive.
	Extensions []string `yaml:"extensions" validate:"dive,required"`
}

func (a AccessControl) Handle(rawurl, _ string, ctx Context) Result {
	u, ok := parseOrPass(rawurl, ctx)
	if !ok {
		return Rewrite{URL: rawurl}
	}

	// check both forms of the path so that percent-encoding can't be used
	// to sneak past a rule
	escaped := u.EscapedPath()
	paths := []string{escaped}
	if u.Path != escaped {
		paths = append(paths, u.Path)
	}

	for _, p := range paths {
		if a.deniedPath(p) {
			ctx.logWarn(Fields{"path": escaped, "clientNumber": ctx.ClientNumber}, "Access denied to private path")
			return Forbidden("Access denied")
		}
	}
	for _, p := range paths {
		if a.deniedExtension(p) {
			ctx.logWarn(Fields{"path": escaped}, "Blocked sensitive file type")
			return Forbidden("File type not allowed")
		}
	}

	return Rewrite{URL: rawurl}
}

func (a AccessControl) deniedPath(p string) bool {
	for _, s := range a.Paths {
		if s != "" && strings.Contains(p, s) {
			return true
		}
	}
	return false
}

func (a AccessControl) deniedExtension(p string) bool {
	p = strings.ToLower(p)
	for _, ext := range a.Extensions {
		if ext != "" && strings.HasSuffix(p, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
