package auth

import "strings"

// PublicEndpoints defines endpoints that don't require authentication.
// Probes and the metrics scrape are called by infrastructure, and the API
// documentation carries no data.
var PublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/swagger/",
}

// IsPublicEndpoint checks if a given path is a public endpoint.
//
// Endpoints ending with '/' use prefix matching (/swagger/ matches /swagger/index.html).
// Others match exactly, with an optional trailing slash or query string
// (/health matches /health?x=1 but not /health/detail or /healthcheck).
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}

		if path == endpoint || path == endpoint+"/" {
			return true
		}
		if strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}
