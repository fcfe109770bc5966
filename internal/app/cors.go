package app

import (
	"net/url"
	"strings"
)

// originMatcher checks browser origins against the allowed_origins
// patterns from the config. A pattern is a bare host ("flipper.example.com"),
// a subdomain wildcard ("*.example.com"), or a host with any port
// ("localhost:*").
type originMatcher struct {
	exact     map[string]struct{}
	suffixes  []string // ".example.com" from "*.example.com"
	portHosts []string // "localhost" from "localhost:*"
}

func newOriginMatcher(patterns []string) *originMatcher {
	m := &originMatcher{exact: make(map[string]struct{}, len(patterns))}
	for _, raw := range patterns {
		p := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case p == "":
		case strings.HasPrefix(p, "*."):
			m.suffixes = append(m.suffixes, p[1:])
		case strings.HasSuffix(p, ":*"):
			m.portHosts = append(m.portHosts, strings.TrimSuffix(p, ":*"))
		default:
			m.exact[p] = struct{}{}
		}
	}
	return m
}

// Matches takes the raw Origin header value, scheme included.
func (m *originMatcher) Matches(origin string) bool {
	host := strings.ToLower(originHost(origin))
	if _, ok := m.exact[host]; ok {
		return true
	}
	for _, suffix := range m.suffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	for _, ph := range m.portHosts {
		if host == ph || strings.HasPrefix(host, ph+":") {
			return true
		}
	}
	return false
}

func originHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}
