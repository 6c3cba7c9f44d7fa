package content

import (
	"net/mail"
	"strings"

	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/finding"
)

// defaultDisposableDomains are always rejected; the config may extend the
// list but not shrink it.
var defaultDisposableDomains = []string{
	"mailinator.com",
	"guerrillamail.com",
	"10minutemail.com",
	"tempmail.com",
	"temp-mail.org",
	"trashmail.com",
	"yopmail.com",
	"sharklasers.com",
	"getnada.com",
	"dispostable.com",
	"maildrop.cc",
	"throwawaymail.com",
}

// EmailValidator checks syntax and rejects disposable-email domains.
type EmailValidator struct {
	disposable map[string]bool
}

// NewEmailValidator merges extraDomains into the built-in denylist.
func NewEmailValidator(extraDomains []string) *EmailValidator {
	deny := make(map[string]bool, len(defaultDisposableDomains)+len(extraDomains))
	for _, d := range defaultDisposableDomains {
		deny[d] = true
	}
	for _, d := range extraDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			deny[d] = true
		}
	}
	return &EmailValidator{disposable: deny}
}

// Validate returns nil when email is syntactically valid and its domain is
// not on the denylist.
func (v *EmailValidator) Validate(email, subject, field string) *finding.Finding {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Address != strings.TrimSpace(email) {
		f := finding.Errorf(finding.KindInvalidEmail, subject, "field %s: %q is not a valid email address", field, email)
		return &f
	}
	at := strings.LastIndexByte(addr.Address, '@')
	domain := strings.ToLower(addr.Address[at+1:])
	if !strings.Contains(domain, ".") {
		f := finding.Errorf(finding.KindInvalidEmail, subject, "field %s: email domain %q has no TLD", field, domain)
		return &f
	}
	if v.disposable[domain] {
		f := finding.Errorf(finding.KindDisposableDomain, subject, "field %s: %s is a disposable email domain", field, domain)
		return &f
	}
	return nil
}
