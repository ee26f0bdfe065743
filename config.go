// Copyright 2025 The urlendpoint authors.
// SPDX-License-Identifier: Apache-2.0

package urlendpoint

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config selects the active handler and holds the options of every handler
// variant.  Options that are not set take the values from DefaultConfig.
//
// A typical config file looks like:
//
//	handler: chain
//	chain: [access-control, path-params]
//	access:
//	  paths: [/private/, /internal/]
type Config struct {
	// Handler is the ID of the active module, or "chain".
	Handler ModuleID `yaml:"handler" validate:"required"`

	// Chain lists the modules run in order when Handler is "chain".
	Chain []ModuleID `yaml:"chain" validate:"required_if=Handler chain,dive,required"`

	Literal     ReplaceLiteral `yaml:"literal"`
	PathParams  PathParams     `yaml:"path_params"`
	Host        ReplaceHost    `yaml:"host"`
	Keywords    Keywords       `yaml:"keywords"`
	QueryParams QueryParams    `yaml:"query_params"`
	Access      AccessControl  `yaml:"access"`
	Thumbnail   Thumbnail      `yaml:"thumbnail"`
}

// DefaultConfig returns the configuration used when no config file is
// provided: a pass-through handler with the standard options for every
// other variant.
func DefaultConfig() *Config {
	return &Config{
		Handler:    "passthrough",
		Literal:    ReplaceLiteral{Old: "/v1/", New: "/v2/"},
		PathParams: PathParams{Keys: []string{"w", "h"}},
		Host:       ReplaceHost{Host: "new-domain.com"},
		Keywords: Keywords{Map: map[string]string{
			"products":   "prod",
			"images":     "img",
			"thumbnails": "thumb",
		}},
		QueryParams: QueryParams{Width: "width", Height: "height", Quality: "quality"},
		Access: AccessControl{
			Paths:      []string{"/private/"},
			Extensions: []string{".env", ".config", ".key"},
		},
		Thumbnail: Thumbnail{
			Marker:     "/video/",
			Extensions: []string{"jpg", "jpeg", "png", "webp"},
			Suffix:     ".mp4/ik-thumbnail.jpg",
		},
	}
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return ParseConfig(b)
}

// ParseConfig parses YAML config data, filling unset options from
// DefaultConfig.
func ParseConfig(data []byte) (*Config, error) {
	c := new(Config)
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	c.setDefaults()
	return c, nil
}

// setDefaults fills every unset option in c from DefaultConfig.
func (c *Config) setDefaults() {
	d := DefaultConfig()
	if c.Handler == "" {
		c.Handler = d.Handler
	}
	if c.Literal.Old == "" {
		c.Literal = d.Literal
	}
	if len(c.PathParams.Keys) == 0 {
		c.PathParams = d.PathParams
	}
	if c.Host.Host == "" {
		c.Host = d.Host
	}
	if len(c.Keywords.Map) == 0 {
		c.Keywords = d.Keywords
	}
	if c.QueryParams.Width == "" {
		c.QueryParams.Width = d.QueryParams.Width
	}
	if c.QueryParams.Height == "" {
		c.QueryParams.Height = d.QueryParams.Height
	}
	if c.QueryParams.Quality == "" {
		c.QueryParams.Quality = d.QueryParams.Quality
	}
	if c.Access.Paths == nil {
		c.Access.Paths = d.Access.Paths
	}
	if c.Access.Extensions == nil {
		c.Access.Extensions = d.Access.Extensions
	}
	if c.Thumbnail.Marker == "" {
		c.Thumbnail.Marker = d.Thumbnail.Marker
	}
	if len(c.Thumbnail.Extensions) == 0 {
		c.Thumbnail.Extensions = d.Thumbnail.Extensions
	}
	if c.Thumbnail.Suffix == "" {
		c.Thumbnail.Suffix = d.Thumbnail.Suffix
	}
}

var validate = validator.New()

// Validate reports whether c describes a usable handler.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ids := []ModuleID{c.Handler}
	if c.Handler == ChainID {
		ids = c.Chain
	}
	for _, id := range ids {
		if _, ok := LookupModule(id); !ok {
			return fmt.Errorf("invalid config: unknown handler %q", id)
		}
	}

	for k, v := range c.Keywords.Map {
		if w, ok := c.Keywords.Map[v]; ok && w != v {
			return fmt.Errorf("invalid config: keyword %q maps to %q, which is itself a keyword", k, v)
		}
	}
	return nil
}

// Build validates c and returns the configured handler.  The handler is
// wrapped with Recover, so it always passes the original URL through if
// anything goes wrong.
func (c *Config) Build() (Handler, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.Handler != ChainID {
		m, _ := LookupModule(c.Handler)
		return Recover(m.New(c)), nil
	}

	handlers := make([]Handler, 0, len(c.Chain))
	for _, id := range c.Chain {
		m, _ := LookupModule(id)
		handlers = append(handlers, m.New(c))
	}
	return Recover(Chain(handlers...)), nil
}
