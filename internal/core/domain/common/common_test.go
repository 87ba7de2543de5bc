package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	assert := require.New(t)

	optionalInt := NewOptional(42, true)
	assert.Equal(42, optionalInt.Value)
	assert.True(optionalInt.IsPresent)

	optionalString := NewOptional("foo", false)
	assert.Equal("foo", optionalString.Value)
	assert.False(optionalString.IsPresent)
}

func TestEmailDomain(t *testing.T) {
	cases := []struct {
		id       string
		email    string
		expected string
	}{
		{id: "1", email: "alice@example.com", expected: "example.com"},
		{id: "2", email: "Alice@Example.COM", expected: "example.com"},
		{id: "3", email: "bob@sub.domain.test", expected: "sub.domain.test"},
		{id: "4", email: "no-at-sign", expected: ""},
		{id: "5", email: "trailing@", expected: ""},
		{id: "6", email: "a@b@c.org", expected: "c.org"},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			require.Equal(t, testcase.expected, NewEmail(testcase.email).Domain())
		})
	}
}
