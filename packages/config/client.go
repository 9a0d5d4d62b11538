package config

import (
	httpx "github.com/restsuite/restsuite/packages/http"
)

// ClientOptions translates the configuration into HTTP client options.
func (c *Config) ClientOptions() []httpx.ClientOption {
	opts := []httpx.ClientOption{
		httpx.WithFollowRedirects(c.GetFollowRedirects()),
		httpx.WithValidateSSL(c.GetValidateSSL()),
	}
	if c.Timeout > 0 {
		opts = append(opts, httpx.WithTimeout(c.GetTimeout()))
	}
	if c.MaxRedirects > 0 {
		opts = append(opts, httpx.WithMaxRedirects(c.MaxRedirects))
	}
	if len(c.Headers) > 0 {
		opts = append(opts, httpx.WithDefaultHeaders(c.Headers))
	}
	if c.Proxy != "" {
		opts = append(opts, httpx.WithProxy(c.Proxy))
	}
	if c.ErrorOnStatus > 0 {
		opts = append(opts, httpx.WithErrorOnStatus(c.ErrorOnStatus))
	}
	if c.RateLimit > 0 {
		opts = append(opts, httpx.WithRateLimit(c.RateLimit, 1))
	}
	return opts
}
