// Copyright 2025 The urlendpoint authors.
// SPDX-License-Identifier: Apache-2.0

package urlendpoint

import (
	"errors"
	"net/url"
	"testing"
)

func TestOptions_String(t *testing.T) {
	tests := []struct {
		Options Options
		String  string
	}{
		{Options{}, ""},
		{Options{Width: "100"}, "w-100"},
		{Options{Quality: "80", Width: "100"}, "w-100,q-80"},
		{Options{Width: "1", Height: "2", Quality: "3"}, "w-1,h-2,q-3"},
		{Options{Height: "200", Quality: "80"}, "h-200,q-80"},
	}

	for i, tt := range tests {
		if got, want := tt.Options.String(), tt.String; got != want {
			t.Errorf("%d. Options.String returned %v, want %v", i, got, want)
		}
	}
}

func TestParseURL(t *testing.T) {
	tests := []struct {
		url   string
		valid bool
	}{
		{"https://ik.imagekit.io/demo/image.jpg", true},
		{"http://example.com:8080/a?b=c#d", true},
		{"https://example.com", true},

		{"", false},
		{"/demo/image.jpg", false},
		{"example.com/image.jpg", false},
		{"file:///etc/passwd", false},
		{"::", false},
		{"http://[::1", false},
	}

	for _, tt := range tests {
		u, err := parseURL(tt.url)
		if tt.valid {
			if err != nil {
				t.Errorf("parseURL(%q) returned unexpected error: %v", tt.url, err)
			} else if u.String() != tt.url {
				t.Errorf("parseURL(%q) returned %q", tt.url, u.String())
			}
			continue
		}

		var uerr URLError
		if !errors.As(err, &uerr) {
			t.Errorf("parseURL(%q) returned error %v, want URLError", tt.url, err)
		} else if uerr.URL != tt.url {
			t.Errorf("parseURL(%q) returned error for URL %q", tt.url, uerr.URL)
		}
		if got := validURL(tt.url); got {
			t.Errorf("validURL(%q) returned true, want false", tt.url)
		}
	}
}

func TestSetPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/a/b.jpg", "https://h/a/b.jpg?x=1"},
		{"/a%20b/c.jpg", "https://h/a%20b/c.jpg?x=1"},
		{"/caf%C3%A9.jpg", "https://h/caf%C3%A9.jpg?x=1"},
		{"/a%2Fb.jpg", "https://h/a%2Fb.jpg?x=1"},
	}

	for _, tt := range tests {
		u, _ := url.Parse("https://h/old?x=1")
		if err := setPath(u, tt.path); err != nil {
			t.Errorf("setPath(%q) returned error: %v", tt.path, err)
			continue
		}
		if got := u.String(); got != tt.want {
			t.Errorf("setPath(%q) returned %q, want %q", tt.path, got, tt.want)
		}
	}

	u, _ := url.Parse("https://h/old")
	if err := setPath(u, "/%zz"); err == nil {
		t.Errorf("setPath(%q) did not return expected error", "/%zz")
	}
}

func TestCollapseSlashes(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"", ""},
		{"/", "/"},
		{"//", "/"},
		{"/a//b///c/", "/a/b/c/"},
		{"a/b", "a/b"},
	}

	for _, tt := range tests {
		if got := collapseSlashes(tt.path); got != tt.want {
			t.Errorf("collapseSlashes(%q) returned %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestTREscape(t *testing.T) {
	tests := []struct {
		s, want string
	}{
		{"w-100,h-200", "w-100,h-200"},
		{"w-1&2", "w-1%262"},
		{"w-a b", "w-a+b"},
	}

	for _, tt := range tests {
		if got := trEscape(tt.s); got != tt.want {
			t.Errorf("trEscape(%q) returned %q, want %q", tt.s, got, tt.want)
		}
	}
}
