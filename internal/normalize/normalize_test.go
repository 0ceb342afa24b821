package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases and trims", "  A@Shop.COM  ", "a@shop.com"},
		{"no at sign treated as absent", "not-an-email", ""},
		{"empty input", "", ""},
		{"already canonical", "a@shop.com", "a@shop.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Email(tt.input))
		})
	}
}

func TestWhatsApp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"strips punctuation", "+55 11 99999-0000", "5511999990000"},
		{"digits only unchanged", "5511999990000", "5511999990000"},
		{"no digits", "call me", ""},
		{"empty input", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WhatsApp(tt.input))
		})
	}
}

func TestDomainFromEmail(t *testing.T) {
	assert.Equal(t, "shop.com", DomainFromEmail("A@Shop.COM"))
	assert.Equal(t, "", DomainFromEmail("no-at-sign"))
	assert.Equal(t, "", DomainFromEmail(""))
}

func TestDomainFromWebsite(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"full url with path and query", "HTTPS://WWW.Example.com/page?x=1", "example.com"},
		{"bare domain", "example.com", "example.com"},
		{"http scheme", "http://example.com/contact", "example.com"},
		{"www without scheme", "www.example.com", "example.com"},
		{"trailing fragment", "example.com#section", "example.com"},
		{"empty input", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DomainFromWebsite(tt.input))
		})
	}
}

func TestDomainFromWebsiteMalformedNeverPanics(t *testing.T) {
	for _, input := range []string{"not a url ///", "://", "ht!tp://%%%", "   "} {
		assert.NotPanics(t, func() { DomainFromWebsite(input) })
	}
}

func TestNormalizersIdempotent(t *testing.T) {
	inputs := []string{
		"  A@Shop.COM  ", "a@shop.com", "no-at", "+55 11 99999-0000",
		"HTTPS://WWW.Example.com/page?x=1", "example.com", "not a url ///", "",
	}
	for _, s := range inputs {
		assert.Equal(t, Email(s), Email(Email(s)), "Email not idempotent for %q", s)
		assert.Equal(t, WhatsApp(s), WhatsApp(WhatsApp(s)), "WhatsApp not idempotent for %q", s)
		assert.Equal(t, DomainFromWebsite(s), DomainFromWebsite(DomainFromWebsite(s)), "DomainFromWebsite not idempotent for %q", s)
	}
}
