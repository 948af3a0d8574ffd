// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pageforge/0.1"). Per prd001-analysis R5.2.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// VisionConfig holds settings for the vision analysis stage.
// Per prd001-analysis R3.1-R3.4.
type VisionConfig struct {
	HTTPConfig `yaml:",inline"`

	// Model is the vision model identifier (e.g. "gpt-4o").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the vision API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the API endpoint. Empty means the public endpoint.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// CacheConfig holds settings for the response cache.
// Per prd001-analysis R6.1-R6.3.
type CacheConfig struct {
	// Dir is the directory holding the cache database (default ".pageforge").
	Dir string `json:"dir" yaml:"dir"`

	// Disabled turns the cache off entirely; every run calls the API.
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// ConvertConfig groups all settings for a convert run.
type ConvertConfig struct {
	Vision VisionConfig `json:"vision" yaml:"vision"`
	Cache  CacheConfig  `json:"cache" yaml:"cache"`
}
