// Package fetcher fetches audited pages and extracts their readable text.
package fetcher

import (
	"fmt"
	"net"
	"net/url"

	"readability-audit/internal/usecase/audit"
)

// validateURL validates a URL for security before making an HTTP request.
// It prevents Server-Side Request Forgery (SSRF) by restricting schemes to
// http/https and, when denyPrivateIPs is set, resolving DNS and rejecting
// hostnames that map to loopback, private, or link-local addresses.
func validateURL(urlStr string, denyPrivateIPs bool) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%w: parse error: %v", audit.ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q not allowed (only http/https)", audit.ErrInvalidURL, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("%w: empty hostname", audit.ErrInvalidURL)
	}

	if !denyPrivateIPs {
		return nil
	}

	// DNS resolution catches URLs whose hostname points into the internal
	// network; rechecked on every redirect target as well.
	ips, err := net.LookupIP(hostname)
	if err != nil {
		return fmt.Errorf("%w: DNS lookup failed for %s: %v", audit.ErrInvalidURL, hostname, err)
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("%w: hostname %q resolves to %s", audit.ErrPrivateIP, hostname, ip)
		}
	}
	return nil
}

// isPrivateIP reports whether an IP address is loopback, private
// (RFC 1918 / RFC 4193), link-local, or unspecified. Both IPv4 and IPv6
// are covered.
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsUnspecified()
}
