package auth

import (
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// Matcher classifies navigation URLs by host.
type Matcher struct {
	providers  []string
	appDomains []string
}

// NewMatcher builds a matcher. Provider patterns are matched as substrings
// of the host; app domains match the host exactly or as a parent domain.
func NewMatcher(providerPatterns, appDomains []string) *Matcher {
	normalize := func(items []string) []string {
		return lo.Uniq(lo.FilterMap(items, func(s string, _ int) (string, bool) {
			s = strings.ToLower(strings.TrimSpace(s))
			return s, s != ""
		}))
	}
	return &Matcher{
		providers:  normalize(providerPatterns),
		appDomains: normalize(appDomains),
	}
}

// IsProvider reports whether rawURL points at the identity provider.
func (m *Matcher) IsProvider(rawURL string) bool {
	host, ok := hostOf(rawURL)
	if !ok {
		return false
	}
	return lo.SomeBy(m.providers, func(p string) bool {
		return strings.Contains(host, p)
	})
}

// IsAppDomain reports whether rawURL is on one of the application's hosts.
func (m *Matcher) IsAppDomain(rawURL string) bool {
	host, ok := hostOf(rawURL)
	if !ok {
		return false
	}
	return lo.SomeBy(m.appDomains, func(d string) bool {
		return host == d || strings.HasSuffix(host, "."+d)
	})
}

// IsComplete reports whether rawURL means authentication has finished:
// back on the application and off the identity provider.
func (m *Matcher) IsComplete(rawURL string) bool {
	return m.IsAppDomain(rawURL) && !m.IsProvider(rawURL)
}

func hostOf(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", false
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return "", false
	}
	return strings.ToLower(u.Hostname()), true
}
