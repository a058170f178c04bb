// Package util holds small transport-level helpers shared by the source
// adapters: proxy selection and robots.txt compliance.
package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds the proxy selector for the outbound HTTP transport.
// With no explicit proxy configured it defers to the environment.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
