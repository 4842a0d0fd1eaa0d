package utils

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// TargetHost returns the lower-cased hostname of urlStr with the port and a
// leading "www." removed. Reports for a URL live under this name.
func TargetHost(urlStr string) (string, error) {
	parsedURL, err := url.Parse(strings.TrimSpace(urlStr))
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}

	host := strings.ToLower(parsedURL.Hostname())
	if host == "" {
		return "", fmt.Errorf("no host in URL: %s", urlStr)
	}

	host = strings.TrimPrefix(host, "www.")
	if host == "" || strings.ContainsAny(host, `/\`) || host == "." || host == ".." {
		return "", fmt.Errorf("invalid host in URL: %s", urlStr)
	}

	return host, nil
}

// RegistrableDomain returns the eTLD+1 of host, or host itself for IPs and
// names the public suffix list cannot resolve.
func RegistrableDomain(host string) string {
	if net.ParseIP(host) != nil {
		return host
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil || domain == "" {
		return host
	}
	return domain
}

// IsValidURL checks if a string is an absolute http(s) URL
func IsValidURL(urlStr string) bool {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return false
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return false
	}
	return parsedURL.Host != ""
}

// SanitizeURL trims whitespace and adds https:// when no scheme is given
func SanitizeURL(urlStr string) string {
	urlStr = strings.TrimSpace(urlStr)

	if !strings.Contains(urlStr, "://") {
		urlStr = "https://" + urlStr
	}

	return urlStr
}
