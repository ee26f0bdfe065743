// Copyright 2025 The urlendpoint authors.
// SPDX-License-Identifier: Apache-2.0

package urlendpoint

import (
	"net"
	"net/url"
	"strings"
)

// parseOrPass parses rawurl for a handler.  If rawurl is not a valid absolute
// URL, ok is false and the caller should pass rawurl through unchanged.
func parseOrPass(rawurl string, ctx Context) (u *url.URL, ok bool) {
	u, err := parseURL(rawurl)
	if err != nil {
		ctx.logDebug(Fields{"error": err, "url": rawurl}, "Passing through malformed URL")
		return nil, false
	}
	return u, true
}

// rewritePath replaces the escaped path of the URL and returns the result.
// If p is not a valid escaped path, rawurl is returned unchanged.
func rewritePath(rawurl string, u *url.URL, p string) string {
	if err := setPath(u, p); err != nil {
		return rawurl
	}
	return u.String()
}

// ReplaceLiteral replaces the first occurrence of Old in the URL path with
// New, such as turning "/v1/" into "/v2/".
type ReplaceLiteral struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

func (r ReplaceLiteral) Handle(rawurl, _ string, ctx Context) Result {
	u, ok := parseOrPass(rawurl, ctx)
	if !ok || r.Old == "" {
		return Rewrite{URL: rawurl}
	}

	p := u.EscapedPath()
	if !strings.Contains(p, r.Old) {
		return Rewrite{URL: rawurl}
	}
	return Rewrite{URL: rewritePath(rawurl, u, strings.Replace(p, r.Old, r.New, 1))}
}

// PathParams converts transformation parameters embedded as path segments
// into a signed "tr" query parameter.  For example,
// "/w_100/h_200/image.jpg" becomes "/image.jpg?tr=w-100,h-200".
type PathParams struct {
	// Keys lists the parameter names recognized in path segments of the form
	// "<key>_<digits>".  If empty, "w" and "h" are used.
	Keys []string `yaml:"keys" validate:"dive,required"`
}

var defaultPathParamKeys = []string{"w", "h"}

// param reports whether seg is a "<key>_<digits>" parameter segment.
func (p PathParams) param(seg string) (key, value string, ok bool) {
	keys := p.Keys
	if len(keys) == 0 {
		keys = defaultPathParamKeys
	}

	key, value, found := strings.Cut(seg, "_")
	if !found || value == "" {
		return "", "", false
	}
	for _, c := range value {
		if c < '0' || c > '9' {
			return "", "", false
		}
	}
	for _, k := range keys {
		if k == key {
			return key, value, true
		}
	}
	return "", "", false
}

func (p PathParams) Handle(rawurl, _ string, ctx Context) Result {
	u, ok := parseOrPass(rawurl, ctx)
	if !ok {
		return Rewrite{URL: rawurl}
	}

	var params, kept []string
	for _, seg := range strings.Split(u.EscapedPath(), "/") {
		if key, value, ok := p.param(seg); ok {
			params = append(params, key+"-"+value)
			continue
		}
		kept = append(kept, seg)
	}
	if len(params) == 0 {
		return Rewrite{URL: rawurl}
	}

	path := collapseSlashes(strings.Join(kept, "/"))
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if err := setPath(u, path); err != nil {
		return Rewrite{URL: rawurl}
	}

	tr := strings.Join(params, ",")
	u.RawQuery = "tr=" + trEscape(tr)
	u.ForceQuery = false

	ctx.logInfo(Fields{"transformations": tr}, "Converted path parameters to query string")
	return Rewrite{URL: u.String(), SignURL: true}
}

// ReplaceHost changes the hostname of the URL to Host.  Any port, path,
// query, and fragment are kept.
type ReplaceHost struct {
	Host string `yaml:"host" validate:"omitempty,hostname_rfc1123"`
}

func (r ReplaceHost) Handle(rawurl, _ string, ctx Context) Result {
	u, ok := parseOrPass(rawurl, ctx)
	if !ok || r.Host == "" || u.Hostname() == r.Host {
		return Rewrite{URL: rawurl}
	}

	if port := u.Port(); port != "" {
		u.Host = net.JoinHostPort(r.Host, port)
	} else {
		u.Host = r.Host
	}
	return Rewrite{URL: u.String()}
}

// Keywords rewrites whole path segments using a static mapping, such as
// "products" to "prod".  Segments not found in Map are left untouched.
//
// Values in Map should not themselves be keys, so that applying the
// rewrite more than once has no further effect.
type Keywords struct {
	Map map[string]string `yaml:"map" validate:"dive,keys,required,endkeys,required"`
}

func (k Keywords) Handle(rawurl, _ string, ctx Context) Result {
	u, ok := parseOrPass(rawurl, ctx)
	if !ok || len(k.Map) == 0 {
		return Rewrite{URL: rawurl}
	}

	segs := strings.Split(u.EscapedPath(), "/")
	changed := false
	for i, seg := range segs {
		if v, ok := k.Map[seg]; ok {
			segs[i] = v
			changed = true
		}
	}
	if !changed {
		return Rewrite{URL: rawurl}
	}
	return Rewrite{URL: rewritePath(rawurl, u, strings.Join(segs, "/"))}
}

// QueryParams converts width, height, and quality query parameters into a
// single signed "tr" parameter.  For example, "?width=100&height=200"
// becomes "?tr=w-100,h-200".
//
// Parameter names default to "width", "height", and "quality".
type QueryParams struct {
	Width   string `yaml:"width"`
	Height  string `yaml:"height"`
	Quality string `yaml:"quality"`
}

func (q QueryParams) names() (w, h, ql string) {
	w, h, ql = q.Width, q.Height, q.Quality
	if w == "" {
		w = "width"
	}
	if h == "" {
		h = "height"
	}
	if ql == "" {
		ql = "quality"
	}
	return w, h, ql
}

func (q QueryParams) Handle(rawurl, _ string, ctx Context) Result {
	u, ok := parseOrPass(rawurl, ctx)
	if !ok || u.RawQuery == "" {
		return Rewrite{URL: rawurl}
	}
	wName, hName, qName := q.names()

	var opt Options
	var kept []string
	seen := make(map[string]bool)
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			key = k
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			value = v
		}

		var dst *string
		switch key {
		case wName:
			dst = &opt.Width
		case hName:
			dst = &opt.Height
		case qName:
			dst = &opt.Quality
		case "tr":
			// replaced below by the combined parameter
			continue
		default:
			kept = append(kept, pair)
			continue
		}
		// only the first value of a parameter is used
		if !seen[key] {
			seen[key] = true
			*dst = value
		}
	}

	if opt == (Options{}) {
		return Rewrite{URL: rawurl}
	}

	tr := opt.String()
	u.RawQuery = strings.Join(append(kept, "tr="+trEscape(tr)), "&")

	ctx.logInfo(Fields{"transformations": tr}, "Converted custom params to ImageKit format")
	return Rewrite{URL: u.String(), SignURL: true}
}

// Thumbnail requests a thumbnail of a video for image URLs under a marker
// directory.  With the default settings, "/video/clip.jpg" becomes
// "/video/clip.mp4/ik-thumbnail.jpg".
type Thumbnail struct {
	// Marker is the path substring that identifies video assets.
	Marker string `yaml:"marker"`

	// Extensions lists image extensions without the leading dot.
	// Matching is case-insensitive.
	Extensions []string `yaml:"extensions" validate:"dive,required"`

	// Suffix replaces the extension, including its dot.
	Suffix string `yaml:"suffix"`
}

func (t Thumbnail) Handle(rawurl, _ string, ctx Context) Result {
	u, ok := parseOrPass(rawurl, ctx)
	if !ok {
		return Rewrite{URL: rawurl}
	}

	p := u.EscapedPath()
	if !strings.Contains(p, t.Marker) {
		return Rewrite{URL: rawurl}
	}
	i := strings.LastIndexByte(p, '.')
	if i < 0 || strings.Contains(p[i:], "/") || !t.allowed(p[i+1:]) {
		return Rewrite{URL: rawurl}
	}

	modified := rewritePath(rawurl, u, p[:i]+t.Suffix)
	ctx.logInfo(Fields{"originalPath": rawurl, "modifiedPath": modified}, "Added thumbnail suffix")
	return Rewrite{URL: modified}
}

func (t Thumbnail) allowed(ext string) bool {
	for _, e := range t.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
