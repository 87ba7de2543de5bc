package notification

import (
	"context"
	"fmt"
	"passwordreset/internal/core/domain/account"
	"passwordreset/internal/core/domain/token"
	"sync"
)

type FakeTokenSender struct {
	Sent        []account.Account
	SentTokens  []token.Token
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeTokenSender() *FakeTokenSender {
	return &FakeTokenSender{}
}

func (s *FakeTokenSender) SendResetToken(ctx context.Context, a account.Account, t token.Token) error {
	if s.ReturnError {
		return fmt.Errorf("could not send reset token to account %v", a.Username)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, a)
	s.SentTokens = append(s.SentTokens, t)
	return nil
}

func (s *FakeTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

func (s *FakeTokenSender) LastSentTo() account.Account {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}
