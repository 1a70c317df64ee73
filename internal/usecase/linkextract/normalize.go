package linkextract

import (
	"errors"
	"net/url"
	"strings"

	"newsletter-agent/internal/domain/entity"
)

var errNotAbsolute = errors.New("url is not absolute")

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// NormalizeURL returns the canonical form of an absolute URL: lowercase scheme
// and host, default port dropped, empty path on http(s) replaced by "/".
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	if !u.IsAbs() {
		return "", errNotAbsolute
	}

	u.Scheme = strings.ToLower(u.Scheme)
	_, special := defaultPorts[u.Scheme]
	if special && (u.Opaque != "" || u.Host == "") {
		return "", errNotAbsolute
	}
	if u.Opaque != "" {
		return u.String(), nil
	}

	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if port == defaultPorts[u.Scheme] {
		port = ""
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port != "" {
		host += ":" + port
	}
	u.Host = host

	if special && u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}

func isValidURL(raw string) bool {
	_, err := NormalizeURL(raw)
	return err == nil
}

// dedupKey falls back to the raw string when the URL cannot be normalized.
func dedupKey(raw string) string {
	if n, err := NormalizeURL(raw); err == nil {
		return n
	}
	return raw
}

// dedupe keeps the first occurrence of every normalized URL and rewrites the
// kept entries' URL to its normalized form.
func dedupe(links []entity.ExtractedLink) []entity.ExtractedLink {
	seen := make(map[string]struct{}, len(links))
	out := make([]entity.ExtractedLink, 0, len(links))
	for _, l := range links {
		key := dedupKey(l.URL)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		l.URL = key
		out = append(out, l)
	}
	return out
}
