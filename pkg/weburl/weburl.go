// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package weburl canonicalizes user-supplied web addresses.

Rules applied by [Normalize]:

  - A missing scheme becomes https; http is upgraded to https.
  - The host is lowercased, IDNA-encoded and stripped of a leading "www.".
  - Default ports, fragments, utm_* tracking parameters and a trailing slash are removed.
  - Remaining query parameters are sorted by key.

An empty input is returned as-is so optional fields stay empty.
*/
package weburl

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// ErrInvalid is returned when the input cannot be read as a web address.
var ErrInvalid = errors.New("weburl: invalid url")

var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(false),
	idna.BidiRule(),
)

// Normalize returns the canonical HTTPS-preferring form of raw.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}

	switch {
	case strings.HasPrefix(trimmed, "//"):
		trimmed = "https:" + trimmed
	case !hasScheme(trimmed):
		trimmed = "https://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalid, parsed.Scheme)
	}

	host, err := canonicalHost(parsed.Hostname())
	if err != nil {
		return "", err
	}

	port := parsed.Port()
	if port == "80" || port == "443" {
		port = ""
	}

	parsed.Scheme = "https"
	parsed.Host = host
	if port != "" {
		parsed.Host = host + ":" + port
	}
	parsed.User = nil
	parsed.Fragment = ""
	parsed.RawFragment = ""
	parsed.RawQuery = canonicalQuery(parsed.Query())

	parsed.Path = strings.TrimRight(parsed.Path, "/")
	parsed.RawPath = ""

	return parsed.String(), nil
}

// hasScheme reports whether raw starts with "<letters>://".
func hasScheme(raw string) bool {
	index := strings.Index(raw, "://")
	if index <= 0 {
		return false
	}
	for _, r := range raw[:index] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '+' || r == '-') {
			return false
		}
	}
	return true
}

func canonicalHost(host string) (string, error) {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalid)
	}

	// IP literals skip IDNA; v6 needs its brackets back for url.URL.
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() == nil {
			return "[" + ip.String() + "]", nil
		}
		return ip.String(), nil
	}

	ascii, err := hostProfile.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return strings.TrimPrefix(ascii, "www."), nil
}

func canonicalQuery(values url.Values) string {
	for key := range values {
		if strings.HasPrefix(strings.ToLower(key), "utm_") {
			values.Del(key)
		}
	}
	// Encode sorts by key.
	return values.Encode()
}
