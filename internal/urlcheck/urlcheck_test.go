package urlcheck

import (
	"testing"

	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/finding"
)

func TestCheckValidURLs(t *testing.T) {
	valid := []string{
		"https://example.org",
		"https://www.vinuchain.org/token",
		"https://sub.domain.co.uk/path?query=1",
		"https://t.me/somegroup",
	}
	for _, raw := range valid {
		if f := Check(raw, "TEST", "website"); f != nil {
			t.Errorf("valid URL %q rejected: %v", raw, f)
		}
	}
}

func TestCheckRejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want finding.Kind
	}{
		{"plain http", "http://example.org", finding.KindInvalidURL},
		{"ftp scheme", "ftp://example.org", finding.KindInvalidURL},
		{"no scheme", "example.org", finding.KindInvalidURL},
		{"empty host", "https://", finding.KindInvalidURL},
		{"localhost", "https://localhost/admin", finding.KindPrivateNetworkURL},
		{"localhost subdomain", "https://api.localhost", finding.KindPrivateNetworkURL},
		{"loopback", "https://127.0.0.1", finding.KindPrivateNetworkURL},
		{"loopback high", "https://127.255.255.254", finding.KindPrivateNetworkURL},
		{"ten net", "https://10.0.0.5", finding.KindPrivateNetworkURL},
		{"rfc1918 172", "https://172.16.10.1", finding.KindPrivateNetworkURL},
		{"rfc1918 192", "https://192.168.1.1:8443", finding.KindPrivateNetworkURL},
		{"link local", "https://169.254.169.254/latest/meta-data", finding.KindPrivateNetworkURL},
		{"ipv6 loopback", "https://[::1]", finding.KindPrivateNetworkURL},
		{"ipv6 unique local", "https://[fd12:3456:789a::1]", finding.KindPrivateNetworkURL},
		{"decimal encoded loopback", "https://2130706433", finding.KindPrivateNetworkURL},
		{"octal encoded loopback", "https://0177.0.0.1", finding.KindPrivateNetworkURL},
		{"hex encoded loopback", "https://0x7f.0.0.1", finding.KindPrivateNetworkURL},
		{"hex encoded public", "https://0xc0a80101", finding.KindPrivateNetworkURL},
		{"short form loopback", "https://127.1", finding.KindPrivateNetworkURL},
		{"numeric tld", "https://example.123", finding.KindInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Check(tt.raw, "TEST", "website")
			if f == nil {
				t.Fatalf("URL %q was accepted", tt.raw)
			}
			if f.Kind != tt.want {
				t.Errorf("URL %q: expected %s, got %s (%s)", tt.raw, tt.want, f.Kind, f.Message)
			}
		})
	}
}

func TestCheckFieldsEnumeratesAllFailures(t *testing.T) {
	fields := map[string]string{
		"website":   "http://example.org",
		"twitter":   "https://twitter.com/ok",
		"telegram":  "https://10.1.2.3",
		"discord":   "",
		"suspected": "https://localhost",
	}

	findings := CheckFields("TEST", fields)
	if len(findings) != 3 {
		t.Fatalf("expected 3 findings, got %d: %v", len(findings), findings)
	}
	for _, f := range findings {
		if f.Subject != "TEST" {
			t.Errorf("finding subject = %q, want TEST", f.Subject)
		}
	}
}

func TestDecodeDisguisedIPv4(t *testing.T) {
	tests := []struct {
		host string
		want string
		ok   bool
	}{
		{"2130706433", "127.0.0.1", true},
		{"0x7f000001", "127.0.0.1", true},
		{"017700000001", "127.0.0.1", true},
		{"0xc0.0xa8.0x01.0x01", "192.168.1.1", true},
		{"192.168.257", "192.168.1.1", true}, // inet_aton fills trailing bytes
		{"example.org", "", false},
		{"1.2.3.4.5", "", false},
	}

	for _, tt := range tests {
		ip, ok := decodeDisguisedIPv4(tt.host)
		if ok != tt.ok {
			t.Errorf("decodeDisguisedIPv4(%q) ok = %v, want %v", tt.host, ok, tt.ok)
			continue
		}
		if ok && ip.String() != tt.want {
			t.Errorf("decodeDisguisedIPv4(%q) = %s, want %s", tt.host, ip, tt.want)
		}
	}
}
