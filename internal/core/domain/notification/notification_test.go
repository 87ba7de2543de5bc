package notification

import (
	"passwordreset/internal/core/domain/account"
	c "passwordreset/internal/core/domain/common"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsDeliverable(t *testing.T) {
	cases := []struct {
		id          string
		email       string
		hasEmail    bool
		deliverable bool
	}{
		{id: "routable domain", email: "alice@realdomain.com", hasEmail: true, deliverable: true},
		{id: "no email", hasEmail: false, deliverable: false},
		{id: "empty email", email: "", hasEmail: true, deliverable: false},
		{id: "example.com", email: "bob@example.com", hasEmail: true, deliverable: false},
		{id: "example.net", email: "bob@example.net", hasEmail: true, deliverable: false},
		{id: "example.org", email: "bob@example.org", hasEmail: true, deliverable: false},
		{id: "example.edu", email: "bob@example.edu", hasEmail: true, deliverable: false},
		{id: "uppercase", email: "bob@EXAMPLE.COM", hasEmail: true, deliverable: false},
		{id: "subdomain of example.com", email: "bob@mail.example.com", hasEmail: true, deliverable: false},
		{id: "bare example label", email: "bob@example", hasEmail: true, deliverable: false},
		{id: "test tld", email: "alice@realdomain.test", hasEmail: true, deliverable: false},
		{id: "localhost", email: "root@localhost", hasEmail: true, deliverable: false},
		{id: "invalid tld", email: "x@foo.invalid", hasEmail: true, deliverable: false},
		{id: "local tld", email: "x@printer.local", hasEmail: true, deliverable: false},
		// Suffix matching is on whole labels, not substrings.
		{id: "contains but not label", email: "bob@notexample.com", hasEmail: true, deliverable: true},
		{id: "label ends with test", email: "bob@attest.com", hasEmail: true, deliverable: true},
		{id: "tld merely containing test", email: "bob@foo.contest", hasEmail: true, deliverable: true},
		{id: "no domain part", email: "bob@", hasEmail: true, deliverable: false},
		{id: "not an address", email: "bob", hasEmail: true, deliverable: false},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			a := account.Account{
				Username: "test-user",
				Email:    c.NewOptional(c.NewEmail(testcase.email), testcase.hasEmail),
			}
			require.Equal(t, testcase.deliverable, IsDeliverable(a))
		})
	}
}
