// Package config loads ddlplatform configuration and applies custom
// platform definitions to the platform registry.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/ddlplatform/pkg/types"
)

// Config holds all configuration options.
type Config struct {
	Platform   string                    `koanf:"platform"`
	Output     string                    `koanf:"output"`
	LogLevel   string                    `koanf:"log_level"`
	Vocabulary string                    `koanf:"vocabulary"`
	Platforms  map[string]PlatformConfig `koanf:"platforms"`

	// File is the config file that was loaded, empty if none.
	File string `koanf:"-"`
}

// PlatformConfig derives a custom platform from a registered one.
//
// Type names in NativeTypes and the tag maps are resolved against the
// configured vocabulary; unknown names are skipped with a warning. Names in
// the Code(n) form address a code directly.
type PlatformConfig struct {
	Base              string            `koanf:"base" json:"base,omitempty" yaml:"base,omitempty"`
	Flags             map[string]any    `koanf:"flags" json:"flags,omitempty" yaml:"flags,omitempty"`
	NativeTypes       map[string]string `koanf:"native_types" json:"native_types,omitempty" yaml:"native_types,omitempty"`
	NullDefault       map[string]bool   `koanf:"null_default" json:"null_default,omitempty" yaml:"null_default,omitempty"`
	Sized             map[string]bool   `koanf:"sized" json:"sized,omitempty" yaml:"sized,omitempty"`
	PrecisionAndScale map[string]bool   `koanf:"precision_and_scale" json:"precision_and_scale,omitempty" yaml:"precision_and_scale,omitempty"`
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// TypeVocabulary returns the configured type vocabulary.
func (c *Config) TypeVocabulary() (types.Vocabulary, error) {
	switch strings.ToLower(c.Vocabulary) {
	case "", VocabularyStandard:
		return types.Standard, nil
	case VocabularyLegacy:
		return types.Legacy, nil
	default:
		return nil, fmt.Errorf("invalid vocabulary %q (expected %s or %s)", c.Vocabulary, VocabularyStandard, VocabularyLegacy)
	}
}

// Root follows base links from name through the configured platforms and
// returns the first name that is not defined in the config. It is used to
// find the built-in dialect a custom platform speaks.
func (c *Config) Root(name string) string {
	seen := make(map[string]bool)
	for {
		def, ok := c.Platforms[name]
		if !ok || def.Base == "" || def.Base == name || seen[name] {
			return name
		}
		seen[name] = true
		name = def.Base
	}
}
