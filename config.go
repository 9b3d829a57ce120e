// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package picoscan

import (
	"fmt"

	"github.com/creachadair/picoscan/internal/engine"
)

// FloatMode selects how a façade handles a number token with a decimal
// point or exponent. The default, FloatDisabled, preserves the raw span
// without attempting an f64 conversion.
type FloatMode = engine.FloatMode

const (
	FloatDisabled = engine.FloatDisabled
	FloatEnabled  = engine.FloatEnabled
	FloatError    = engine.FloatError
	FloatSkip     = engine.FloatSkip
	FloatTruncate = engine.FloatTruncate
)

// Config holds a façade's build-time configuration. There is no runtime
// reconfiguration mid-parse; Config is consumed once at construction.
type Config struct {
	depth     int
	intWidth  int
	floatMode FloatMode
}

// Option configures a façade at construction time, in place of the
// original implementation's Cargo build-time feature flags.
type Option func(*Config)

// WithDepth sets the maximum container nesting depth the depth bitstack
// can hold. The default is 32.
func WithDepth(n int) Option {
	return func(c *Config) { c.depth = n }
}

// WithIntWidth selects the integer width, in bits (8, 16, 32, or 64), used
// to classify integer-shaped Number tokens. The default is 64.
func WithIntWidth(bits int) Option {
	return func(c *Config) { c.intWidth = bits }
}

// WithFloatMode selects how float-shaped Number tokens are decoded. The
// default is FloatDisabled.
func WithFloatMode(mode FloatMode) Option {
	return func(c *Config) { c.floatMode = mode }
}

func newConfig(opts []Option) (Config, error) {
	c := Config{depth: 32, intWidth: 64, floatMode: FloatDisabled}
	for _, opt := range opts {
		opt(&c)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.intWidth {
	case 8, 16, 32, 64:
	default:
		return fmt.Errorf("picoscan: invalid integer width %d (want 8, 16, 32, or 64)", c.intWidth)
	}
	switch c.floatMode {
	case FloatDisabled, FloatEnabled, FloatError, FloatSkip, FloatTruncate:
	default:
		return fmt.Errorf("picoscan: invalid float mode %v", c.floatMode)
	}
	if c.depth <= 0 {
		return fmt.Errorf("picoscan: invalid depth %d", c.depth)
	}
	return nil
}
