// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package weburl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/devhub/pkg/weburl"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty_stays_empty", "", ""},
		{"bare_host", "example.com", "https://example.com"},
		{"http_upgraded", "http://example.com/about", "https://example.com/about"},
		{"www_and_case", "HTTPS://WWW.Example.COM/", "https://example.com"},
		{"default_port", "https://example.com:443/x", "https://example.com/x"},
		{"custom_port_kept", "example.com:8080", "https://example.com:8080"},
		{"tracking_dropped", "twitter.com/dev?utm_source=x&b=2&a=1", "https://twitter.com/dev?a=1&b=2"},
		{"fragment_dropped", "linkedin.com/in/dev#top", "https://linkedin.com/in/dev"},
		{"protocol_relative", "//youtube.com/c/dev", "https://youtube.com/c/dev"},
		{"idn_host", "bücher.de", "https://xn--bcher-kva.de"},
		{"surrounding_space", "  github.com/dev  ", "https://github.com/dev"},
		{"embedded_url_in_query", "github.com/login?next=http://x.io", "https://github.com/login?next=http%3A%2F%2Fx.io"},
		{"ipv6_literal", "http://[::1]:8080/", "https://[::1]:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := weburl.Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	once, err := weburl.Normalize("http://www.Example.com/a/?utm_medium=1&z=1")
	require.NoError(t, err)

	twice, err := weburl.Normalize(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestNormalize_Rejects(t *testing.T) {
	for _, in := range []string{"ftp://example.com", "https://exa mple.com", "https://"} {
		_, err := weburl.Normalize(in)
		assert.ErrorIs(t, err, weburl.ErrInvalid, in)
	}
}
