package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
)

type fakeIssuer struct {
	mintToken   string
	mintErr     error
	validUserID int64
	validErr    error
	validCalls  int
}

func (f *fakeIssuer) Mint(userID int64) (string, error) {
	return f.mintToken, f.mintErr
}

func (f *fakeIssuer) Validate(token string) (int64, error) {
	f.validCalls++
	return f.validUserID, f.validErr
}

type fakeProvider struct {
	subject string
	err     error
	calls   int
}

func (f *fakeProvider) Verify(ctx context.Context, token string) (string, error) {
	f.calls++
	return f.subject, f.err
}

type fakeUserRepo struct {
	bySubject map[string]*domain.User
}

func (f *fakeUserRepo) Register(ctx context.Context, user *domain.User, team *domain.Team, member *domain.TeamMember, key *domain.APIKey) error {
	return errors.New("not implemented")
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetByAuth0Subject(ctx context.Context, subject string) (*domain.User, error) {
	return f.bySubject[subject], nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, user *domain.User) error {
	return errors.New("not implemented")
}

type fakeKeyRepo struct {
	keys    map[string]*domain.APIKey
	touched map[string]time.Time
}

func newFakeKeyRepo() *fakeKeyRepo {
	return &fakeKeyRepo{
		keys:    make(map[string]*domain.APIKey),
		touched: make(map[string]time.Time),
	}
}

func (f *fakeKeyRepo) Insert(ctx context.Context, key *domain.APIKey) error {
	if _, ok := f.keys[key.Key]; ok {
		return errors.New("duplicate key")
	}
	f.keys[key.Key] = key
	return nil
}

func (f *fakeKeyRepo) GetBySecret(ctx context.Context, secret string) (*domain.APIKey, error) {
	return f.keys[secret], nil
}

func (f *fakeKeyRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.APIKey, error) {
	var out []*domain.APIKey
	for _, k := range f.keys {
		if k.UserID == userID {
			out = append(out, k)
		}
	}
	return out, nil
}

func (f *fakeKeyRepo) TouchLastUsed(ctx context.Context, secret string, at time.Time) error {
	f.touched[secret] = at
	return nil
}

func (f *fakeKeyRepo) Delete(ctx context.Context, secret string) error {
	delete(f.keys, secret)
	return nil
}
