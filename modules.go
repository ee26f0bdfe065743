// Copyright 2025 The urlendpoint authors.
// SPDX-License-Identifier: Apache-2.0

package urlendpoint

// ModuleID identifies a handler variant, such as "access-control".
type ModuleID string

// ChainID selects a chain of modules rather than a single module.
const ChainID ModuleID = "chain"

// ModuleInfo describes a handler variant that can be selected by
// configuration.
type ModuleInfo struct {
	ID ModuleID

	// New constructs the handler from the options in cfg.
	New func(cfg *Config) Handler
}

var modules = []ModuleInfo{
	{"passthrough", func(*Config) Handler { return PassThrough }},
	{"literal", func(c *Config) Handler { return c.Literal }},
	{"path-params", func(c *Config) Handler { return c.PathParams }},
	{"host", func(c *Config) Handler { return c.Host }},
	{"keywords", func(c *Config) Handler { return c.Keywords }},
	{"query-params", func(c *Config) Handler { return c.QueryParams }},
	{"access-control", func(c *Config) Handler { return c.Access }},
	{"thumbnail", func(c *Config) Handler { return c.Thumbnail }},
}

// Modules returns all known modules.
func Modules() []ModuleInfo {
	return append([]ModuleInfo(nil), modules...)
}

// LookupModule returns the module with the given ID.
func LookupModule(id ModuleID) (ModuleInfo, bool) {
	for _, m := range modules {
		if m.ID == id {
			return m, true
		}
	}
	return ModuleInfo{}, false
}
