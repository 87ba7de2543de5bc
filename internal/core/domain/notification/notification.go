package notification

import (
	"context"
	"passwordreset/internal/core/domain/account"
	"passwordreset/internal/core/domain/token"
	"strings"
)

// TokenSender delivers a freshly issued reset token to the account
// owner. Delivery is best-effort; a failed send never invalidates the
// token itself.
type TokenSender interface {
	SendResetToken(ctx context.Context, a account.Account, t token.Token) error
}

// Domains that must never receive mail: documentation-example domains
// plus TLDs reserved for testing, local and invalid use.
// https://en.wikipedia.org/wiki/Example.com
// https://en.wikipedia.org/wiki/Top-level_domain#Reserved_domains
var restrictedDomains = []string{
	"example.com",
	"example.net",
	"example.org",
	"example.edu",
	"example",
	"local",
	"localhost",
	"invalid",
	"test",
}

// IsDeliverable reports whether a reset notification may be sent to the
// account at all. Accounts without an email address and addresses under
// a restricted domain are filtered out here, before the sender is ever
// invoked. Matching is case-insensitive and on whole domain labels:
// "notexample.com" is deliverable, "sub.example.com" is not.
func IsDeliverable(a account.Account) bool {
	if !a.Email.IsPresent || a.Email.Value == "" {
		return false
	}
	domain := a.Email.Value.Domain()
	if domain == "" {
		return false
	}
	for _, restricted := range restrictedDomains {
		if domain == restricted || strings.HasSuffix(domain, "."+restricted) {
			return false
		}
	}
	return true
}
