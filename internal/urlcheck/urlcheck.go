// Package urlcheck validates declared URLs without ever dereferencing them.
//
// The check is purely lexical: scheme must be HTTPS and the hostname must not
// name a private or loopback network location, including numeric IPs hidden
// behind octal/hex/decimal notation. DNS is never consulted: a hostname that
// only resolves to a private address at request time is out of scope, because
// resolving it here would turn the validator itself into a network actor.
package urlcheck

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/finding"
)

// Check validates a single URL string. A nil return means valid.
func Check(raw, subject, field string) *finding.Finding {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		f := finding.Errorf(finding.KindInvalidURL, subject, "field %s: unparseable URL %q", field, raw)
		return &f
	}
	if !strings.EqualFold(u.Scheme, "https") {
		f := finding.Errorf(finding.KindInvalidURL, subject, "field %s: scheme must be https, got %q", field, u.Scheme)
		return &f
	}
	host := strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
	if host == "" {
		f := finding.Errorf(finding.KindInvalidURL, subject, "field %s: missing host in %q", field, raw)
		return &f
	}

	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		f := finding.Errorf(finding.KindPrivateNetworkURL, subject, "field %s: localhost is not allowed", field)
		return &f
	}
	if ip := net.ParseIP(host); ip != nil {
		if reason := privateRange(ip); reason != "" {
			f := finding.Errorf(finding.KindPrivateNetworkURL, subject, "field %s: host %s is %s", field, host, reason)
			return &f
		}
		// Canonical public IP literals pass the range check but stay
		// suspicious; registries link to domains.
		return nil
	}
	if ip, ok := decodeDisguisedIPv4(host); ok {
		if reason := privateRange(ip); reason != "" {
			f := finding.Errorf(finding.KindPrivateNetworkURL, subject,
				"field %s: host %q is an encoded IP for %s (%s)", field, host, ip, reason)
			return &f
		}
		f := finding.Errorf(finding.KindPrivateNetworkURL, subject,
			"field %s: host %q is a disguised numeric IP (%s)", field, host, ip)
		return &f
	}
	if !plausibleHostname(host) {
		f := finding.Errorf(finding.KindInvalidURL, subject, "field %s: %q is not a valid hostname", field, host)
		return &f
	}
	return nil
}

// CheckFields validates every URL-valued field of an entry and enumerates
// all offending fields, not just the first.
func CheckFields(subject string, fields map[string]string) []finding.Finding {
	var out []finding.Finding
	for field, raw := range fields {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if f := Check(raw, subject, field); f != nil {
			out = append(out, *f)
		}
	}
	return out
}

func privateRange(ip net.IP) string {
	switch {
	case ip.IsLoopback():
		return "a loopback address"
	case ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast():
		return "link-local"
	case ip.IsPrivate():
		return "in a private range"
	case ip.IsUnspecified():
		return "the unspecified address"
	}
	// fc00::/7 unique-local is covered by IsPrivate on modern Go, keep the
	// explicit check for clarity on the IPv6 path.
	if v6 := ip.To16(); v6 != nil && ip.To4() == nil && v6[0]&0xfe == 0xfc {
		return "an IPv6 unique-local address"
	}
	return ""
}

// decodeDisguisedIPv4 applies inet_aton-style parsing: one to four dot
// separated parts, each in decimal, octal (leading 0) or hex (0x) form.
// net.ParseIP already handled canonical dotted-quads, so any host that
// decodes here is using an alternate encoding.
func decodeDisguisedIPv4(host string) (net.IP, bool) {
	parts := strings.Split(host, ".")
	if len(parts) == 0 || len(parts) > 4 {
		return nil, false
	}
	vals := make([]uint64, 0, 4)
	for _, p := range parts {
		if p == "" {
			return nil, false
		}
		v, err := parseIPPart(p)
		if err != nil {
			return nil, false
		}
		vals = append(vals, v)
	}

	var n uint64
	last := len(vals) - 1
	for i := 0; i < last; i++ {
		if vals[i] > 0xff {
			return nil, false
		}
		n = n<<8 | vals[i]
	}
	// The final part fills the remaining bytes.
	rest := 4 - last
	limit := uint64(1)<<(8*rest) - 1
	if vals[last] > limit {
		return nil, false
	}
	n = n<<(8*rest) | vals[last]
	return net.IPv4(byte(n>>24), byte(n>>16), byte(n>>8), byte(n)), true
}

func parseIPPart(p string) (uint64, error) {
	lower := strings.ToLower(p)
	switch {
	case strings.HasPrefix(lower, "0x"):
		if len(lower) == 2 {
			return 0, fmt.Errorf("bare 0x")
		}
		return strconv.ParseUint(lower[2:], 16, 64)
	case len(lower) > 1 && lower[0] == '0':
		return strconv.ParseUint(lower[1:], 8, 64)
	default:
		return strconv.ParseUint(lower, 10, 64)
	}
}

// plausibleHostname applies minimal DNS label rules: letters, digits and
// hyphens, dot separated, with a non-numeric final label.
func plausibleHostname(host string) bool {
	if len(host) > 253 {
		return false
	}
	labels := strings.Split(host, ".")
	for _, l := range labels {
		if l == "" || len(l) > 63 {
			return false
		}
		if l[0] == '-' || l[len(l)-1] == '-' {
			return false
		}
		for i := 0; i < len(l); i++ {
			c := l[i]
			if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-') {
				return false
			}
		}
	}
	tld := labels[len(labels)-1]
	for i := 0; i < len(tld); i++ {
		if tld[i] < '0' || tld[i] > '9' {
			return true
		}
	}
	return false
}
