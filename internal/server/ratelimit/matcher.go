package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited is returned for the health check.
var unlimited = EndpointConfig{Path: "/health", Method: http.MethodGet}

// MatchEndpoint returns the configuration whose method and path pattern match
// the request, or nil. Patterns are matched segment by segment: a "{name}"
// segment matches any single non-empty segment, and a pattern ending in "/"
// matches every path below it. Earlier configurations win.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == unlimited.Path && method == unlimited.Method {
		cfg := unlimited
		return &cfg
	}

	for i := range configs {
		if configs[i].Method == method && matchPattern(configs[i].Path, path) {
			return &configs[i]
		}
	}
	return nil
}

func matchPattern(pattern, path string) bool {
	prefix := strings.HasSuffix(pattern, "/")
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")

	if len(got) < len(want) || (!prefix && len(got) != len(want)) {
		return false
	}
	for i, seg := range want {
		if isWildcard(seg) {
			if got[i] == "" {
				return false
			}
			continue
		}
		if seg != got[i] {
			return false
		}
	}
	return true
}

func isWildcard(seg string) bool {
	return len(seg) > 2 && seg[0] == '{' && seg[len(seg)-1] == '}'
}
