package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "snpedia-23andme/0.1"). SNPedia asks bots to identify themselves.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the SNPedia fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIBase is the SNPedia MediaWiki root (default "https://bots.snpedia.com").
	APIBase string `json:"api_base" yaml:"api_base"`

	// FetchDelay is the pause between consecutive page fetches, to keep
	// load on SNPedia low (default 100ms).
	FetchDelay time.Duration `json:"fetch_delay" yaml:"fetch_delay"`
}

// CacheConfig holds settings for the page archive.
type CacheConfig struct {
	// Path is the archive file location (default "snpedia-archive.db" in
	// the working directory).
	Path string `json:"path" yaml:"path"`
}

// ReportConfig groups the settings the report pipeline needs.
type ReportConfig struct {
	Fetch FetchConfig `json:"fetch" yaml:"fetch"`
	Cache CacheConfig `json:"cache" yaml:"cache"`

	// OutPath, when set, receives a YAML export of the sorted entries.
	OutPath string `json:"out_path,omitempty" yaml:"out_path,omitempty"`
}
