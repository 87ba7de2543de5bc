package token

import (
	"context"
	"fmt"
	"passwordreset/internal/core/domain/account"
	"sort"
	"sync"
	"time"
)

type FakeTokenRepository struct {
	Tokens      []ResetToken
	ReturnError bool
	PurgeCount  int
	lock        sync.Mutex
}

func NewFakeTokenRepository() *FakeTokenRepository {
	return &FakeTokenRepository{Tokens: make([]ResetToken, 0, 10)}
}

func (r *FakeTokenRepository) Create(ctx context.Context, input CreateTokenInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not create reset token for %v", input.Username)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, t := range r.Tokens {
		if t.Token == input.Token {
			return ErrTokenAlreadyExists
		}
	}
	r.Tokens = append(r.Tokens, ResetToken{
		Token:         input.Token,
		Username:      input.Username,
		SourceAddress: input.SourceAddress,
		ExpiresAt:     input.ExpiresAt,
	})
	return nil
}

func (r *FakeTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (count int64, err error) {
	if r.ReturnError {
		return 0, fmt.Errorf("could not purge expired reset tokens")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.PurgeCount++
	kept := r.Tokens[:0]
	for _, t := range r.Tokens {
		if t.IsExpired(now) {
			count++
			continue
		}
		kept = append(kept, t)
	}
	r.Tokens = kept
	return count, nil
}

func (r *FakeTokenRepository) GetOwnerByToken(
	ctx context.Context,
	token Token,
	now time.Time,
) (username account.Username, err error) {
	if r.ReturnError {
		return username, fmt.Errorf("could not look up reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, t := range r.Tokens {
		if t.Token == token && !t.IsExpired(now) {
			return t.Username, nil
		}
	}
	return username, ErrTokenDoesNotExist
}

func (r *FakeTokenRepository) DeleteByUsername(ctx context.Context, username account.Username) error {
	if r.ReturnError {
		return fmt.Errorf("could not delete reset tokens for %v", username)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	kept := r.Tokens[:0]
	for _, t := range r.Tokens {
		if t.Username != username {
			kept = append(kept, t)
		}
	}
	r.Tokens = kept
	return nil
}

func (r *FakeTokenRepository) ListRequests(ctx context.Context, now time.Time) ([]ResetRequest, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list reset requests")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	requests := make([]ResetRequest, 0, len(r.Tokens))
	for _, t := range r.Tokens {
		if t.IsExpired(now) {
			continue
		}
		requests = append(requests, ResetRequest{
			Username:      t.Username,
			SourceAddress: t.SourceAddress,
			ExpiresAt:     t.ExpiresAt,
		})
	}
	sort.Slice(requests, func(i, j int) bool {
		if requests[i].Username != requests[j].Username {
			return requests[i].Username < requests[j].Username
		}
		return requests[i].ExpiresAt.Before(requests[j].ExpiresAt)
	})
	return requests, nil
}

type FakeTokenGenerator struct {
	Tokens []Token
	next   int
	lock   sync.Mutex
}

func NewFakeTokenGenerator(tokens ...string) *FakeTokenGenerator {
	g := &FakeTokenGenerator{}
	for _, t := range tokens {
		g.Tokens = append(g.Tokens, Token(t))
	}
	return g
}

func (g *FakeTokenGenerator) GenerateResetToken() Token {
	g.lock.Lock()
	defer g.lock.Unlock()
	if len(g.Tokens) == 0 {
		return Token("fake-reset-token")
	}
	t := g.Tokens[g.next%len(g.Tokens)]
	g.next++
	return t
}
