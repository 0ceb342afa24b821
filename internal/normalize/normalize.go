// Package normalize canonicalizes contact identifiers so cosmetic differences
// (case, punctuation, protocol prefixes) never cause a blacklist miss. All
// functions are pure, never fail, and are idempotent; a value that cannot be
// normalized is represented as the empty string.
package normalize

import (
	"net/url"
	"strings"
)

// Email lowercases and trims an email address. Returns "" when the result
// contains no "@", treating it as absent rather than invalid.
func Email(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !strings.Contains(email, "@") {
		return ""
	}
	return email
}

// WhatsApp strips every non-digit character from a phone number.
func WhatsApp(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DomainFromEmail returns the domain part of a normalized email, or "" when
// the input has no "@".
func DomainFromEmail(raw string) string {
	email := Email(raw)
	if email == "" {
		return ""
	}
	at := strings.LastIndex(email, "@")
	return email[at+1:]
}

// DomainFromWebsite extracts the lowercased host of a website URL, stripping
// a leading "www.". A missing scheme is tolerated by assuming https. On
// malformed input it falls back to a best-effort string split; it never fails.
func DomainFromWebsite(raw string) string {
	site := strings.TrimSpace(raw)
	if site == "" {
		return ""
	}
	candidate := site
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	if u, err := url.Parse(candidate); err == nil && u.Hostname() != "" {
		return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	}
	return fallbackHost(site)
}

func fallbackHost(site string) string {
	host := strings.ToLower(site)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimPrefix(host, "www.")
	for _, sep := range []string{"/", "?", "#"} {
		if idx := strings.Index(host, sep); idx >= 0 {
			host = host[:idx]
		}
	}
	return strings.TrimSpace(host)
}
