package service

import (
	"net/netip"
	"strings"
)

// ResolveClientIP picks the client address for a request. header returns
// the value of a request header ("" when absent). Sources are tried in
// order: first X-Forwarded-For entry, X-Real-IP, CF-Connecting-IP, the
// for= parameter of Forwarded, then fallback (the socket peer). A source
// that does not hold a parseable address is skipped. IPv4-mapped IPv6
// addresses are returned in IPv4 form. The result is "" only when no
// source yields an address.
func ResolveClientIP(header func(string) string, fallback string) string {
	if xff := header("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := normalizeIP(first); ip != "" {
			return ip
		}
	}
	for _, name := range []string{"X-Real-IP", "CF-Connecting-IP"} {
		if ip := normalizeIP(header(name)); ip != "" {
			return ip
		}
	}
	if fwd := header("Forwarded"); fwd != "" {
		if ip := normalizeIP(forwardedFor(fwd)); ip != "" {
			return ip
		}
	}
	return normalizeIP(fallback)
}

// forwardedFor returns the for= value of the first element of an RFC 7239
// Forwarded header.
func forwardedFor(v string) string {
	first, _, _ := strings.Cut(v, ",")
	for _, pair := range strings.Split(first, ";") {
		key, val, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), "for") {
			return val
		}
	}
	return ""
}

// normalizeIP parses an address that may carry quotes, brackets, a port or
// a zone, and returns its canonical text form.
func normalizeIP(s string) string {
	s = strings.Trim(strings.TrimSpace(s), `"`)
	if s == "" {
		return ""
	}
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap.Addr().Unmap().String()
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if addr, err := netip.ParseAddr(s); err == nil {
		return addr.Unmap().String()
	}
	return ""
}
