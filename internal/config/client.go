package config

import (
	"net/http"

	"stockfetch/pkg/nse"
)

// BuildClient constructs an NSE client from the client section. Zero values
// fall through to the client's own defaults.
func (c *Config) BuildClient() *nse.Client {
	var opts []nse.Option
	if c.Client.BaseURL != "" {
		opts = append(opts, nse.WithBaseURL(c.Client.BaseURL))
	}
	if c.Client.HomeURL != "" {
		opts = append(opts, nse.WithHomeURL(c.Client.HomeURL))
	}
	if c.Client.ArchivesURL != "" {
		opts = append(opts, nse.WithArchivesURL(c.Client.ArchivesURL))
	}
	if c.Client.IndicesURL != "" {
		opts = append(opts, nse.WithIndicesURL(c.Client.IndicesURL))
	}
	if c.Client.Timeout > 0 {
		opts = append(opts, nse.WithHTTPClient(&http.Client{Timeout: c.Client.Timeout}))
	}
	if c.Client.MaxRetries > 0 {
		opts = append(opts, nse.WithMaxRetries(c.Client.MaxRetries))
	}
	return nse.NewClient(opts...)
}
