// Copyright 2026 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package config loads converter settings from a YAML file
// and MDDOCX_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
	"zombiezen.com/go/mddocx"
)

// EnvPrefix is the prefix of environment variables that override configuration.
// For example, MDDOCX_PAGE_SIZE overrides page.size.
const EnvPrefix = "MDDOCX"

// Config is the converter configuration.
type Config struct {
	// LogLevel is the minimum level of log messages: debug, info, warn or error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// QuoteStyle is "plain" to format block quotes like paragraphs,
	// "quote" to use the Quote style with the backend's formatting,
	// or "distinct" to also give the Quote style its own indented formatting.
	QuoteStyle string `mapstructure:"quote_style" yaml:"quote_style"`
	// TranscriptLanguages are the fenced code languages
	// that are split into interactive input and output.
	TranscriptLanguages []string `mapstructure:"transcript_languages" yaml:"transcript_languages"`
	// FrontMatter enables reading the title and subtitle from front matter.
	FrontMatter bool       `mapstructure:"front_matter" yaml:"front_matter"`
	Page        PageConfig `mapstructure:"page" yaml:"page"`
	Creator     string     `mapstructure:"creator" yaml:"creator,omitempty"`
}

// PageConfig holds the page layout of generated documents.
type PageConfig struct {
	// Size is "letter" or "a4".
	Size string `mapstructure:"size" yaml:"size"`
}

// Quote style names.
const (
	QuotePlain    = "plain"
	QuoteQuote    = "quote"
	QuoteDistinct = "distinct"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		LogLevel:            "info",
		QuoteStyle:          QuoteQuote,
		TranscriptLanguages: append([]string(nil), mddocx.DefaultTranscriptLanguages...),
		FrontMatter:         true,
		Page:                PageConfig{Size: "letter"},
	}
}

// Load reads the configuration file at path,
// applying environment variable overrides and filling in defaults.
// An empty path or a path that does not exist yields the defaults
// plus any environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("quote_style", cfg.QuoteStyle)
	v.SetDefault("transcript_languages", cfg.TranscriptLanguages)
	v.SetDefault("front_matter", cfg.FrontMatter)
	v.SetDefault("page.size", cfg.Page.Size)
	v.SetDefault("creator", cfg.Creator)
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// Validate reports whether the configuration's enumerated values are known.
func (cfg *Config) Validate() error {
	switch strings.ToLower(cfg.QuoteStyle) {
	case QuotePlain, QuoteQuote, QuoteDistinct:
	default:
		return fmt.Errorf("config: unknown quote_style %q", cfg.QuoteStyle)
	}
	switch strings.ToLower(cfg.Page.Size) {
	case "letter", "a4":
	default:
		return fmt.Errorf("config: unknown page.size %q", cfg.Page.Size)
	}
	return nil
}

// Write writes the configuration to path as YAML.
func (cfg *Config) Write(path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Marshal returns the configuration as YAML.
func (cfg *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(cfg)
}
