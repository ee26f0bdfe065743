// Copyright 2025 The urlendpoint authors.
// SPDX-License-Identifier: Apache-2.0

package urlendpoint

import "fmt"

// TransformFunc rewrites a URL, returning an error if it cannot.
type TransformFunc func(rawurl string) (string, error)

// Guard returns a Handler that rewrites URLs using fn.  If fn returns an
// error, panics, or produces something other than an absolute URL, the
// failure is logged and the original URL is passed through unchanged.
func Guard(fn TransformFunc) Handler {
	return Recover(HandlerFunc(func(rawurl, _ string, ctx Context) Result {
		u, err := fn(rawurl)
		if err != nil {
			fail(rawurl, ctx, err)
			return Rewrite{URL: rawurl}
		}
		return Rewrite{URL: u}
	}))
}

// Recover returns a Handler that calls h, recovering from any panic.  On
// failure, the error is logged once and the original URL is passed through
// unchanged.  Results that rewrite to an invalid URL are treated as
// failures as well.
func Recover(h Handler) Handler {
	return HandlerFunc(func(rawurl, urlPrefix string, ctx Context) (res Result) {
		defer func() {
			if r := recover(); r != nil {
				fail(rawurl, ctx, recoveredError(r))
				res = Rewrite{URL: rawurl}
			}
		}()

		res = h.Handle(rawurl, urlPrefix, ctx)
		switch r := res.(type) {
		case Rewrite:
			if r.URL != rawurl && !validURL(r.URL) {
				fail(rawurl, ctx, URLError{"rewritten URL is not absolute", r.URL})
				return Rewrite{URL: rawurl}
			}
		case Block:
		default:
			fail(rawurl, ctx, fmt.Errorf("unexpected result %T", res))
			return Rewrite{URL: rawurl}
		}
		return res
	})
}

func recoveredError(r any) error {
	switch v := r.(type) {
	case error:
		return v
	default:
		return fmt.Errorf("panic: %v", v)
	}
}

func fail(rawurl string, ctx Context, err error) {
	ctx.logError(Fields{"error": err, "url": rawurl}, "Transform failed")
}

// Chain returns a Handler that calls each handler in turn, passing the URL
// produced by one handler on to the next.  The first Block result ends the
// chain.  The final URL must be signed if any handler asked for signing.
func Chain(handlers ...Handler) Handler {
	return HandlerFunc(func(rawurl, urlPrefix string, ctx Context) Result {
		out := Rewrite{URL: rawurl}
		for _, h := range handlers {
			switch r := h.Handle(out.URL, urlPrefix, ctx).(type) {
			case Block:
				return r
			case Rewrite:
				out.URL = r.URL
				out.SignURL = out.SignURL || r.SignURL
			}
		}
		return out
	})
}
