package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/auth"
	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
	domerrors "github.com/jiggy-ai/jiggy-user-api/internal/domain/errors"
)

type fakeProvider struct {
	subject string
	err     error
}

func (f *fakeProvider) Verify(ctx context.Context, token string) (string, error) {
	return f.subject, f.err
}

type registered struct {
	user   *domain.User
	team   *domain.Team
	member *domain.TeamMember
	key    *domain.APIKey
}

type fakeUserRepo struct {
	bySubject  map[string]*domain.User
	byUsername map[string]*domain.User
	created    *registered
	deleted    *domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		bySubject:  make(map[string]*domain.User),
		byUsername: make(map[string]*domain.User),
	}
}

func (f *fakeUserRepo) Register(ctx context.Context, user *domain.User, team *domain.Team, member *domain.TeamMember, key *domain.APIKey) error {
	f.created = &registered{user: user, team: team, member: member, key: key}
	f.byUsername[user.Username] = user
	if user.Auth0Subject != nil {
		f.bySubject[*user.Auth0Subject] = user
	}
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return f.byUsername[username], nil
}

func (f *fakeUserRepo) GetByAuth0Subject(ctx context.Context, subject string) (*domain.User, error) {
	return f.bySubject[subject], nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, user *domain.User) error {
	f.deleted = user
	delete(f.byUsername, user.Username)
	return nil
}

type fakeCache struct {
	invalidated []int64
}

func (f *fakeCache) TeamsOf(ctx context.Context, userID int64) ([]int64, error) {
	return nil, nil
}

func (f *fakeCache) Invalidate(userID int64) {
	f.invalidated = append(f.invalidated, userID)
}

func testNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return node
}

func TestRegister(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	provider := &fakeProvider{subject: "auth0|alice"}
	uc := NewRegister(repo, provider, testNode(t))

	result, err := uc.Execute(context.Background(), "provider-token", "alice")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.User.Username != "alice" {
		t.Errorf("username = %q", result.User.Username)
	}
	if result.User.Auth0Subject == nil || *result.User.Auth0Subject != "auth0|alice" {
		t.Error("subject should be bound to the new account")
	}
	if !strings.HasPrefix(result.Key.Key, auth.KeyPrefix) {
		t.Errorf("initial key has bad format: %s", result.Key.Key)
	}

	c := repo.created
	if c == nil {
		t.Fatal("repository Register not called")
	}
	if c.team.Name != "alice" {
		t.Errorf("personal team name = %q, want alice", c.team.Name)
	}
	if c.user.DefaultTeamID != c.team.ID {
		t.Error("default team should point at the personal team")
	}
	if c.member.TeamID != c.team.ID || c.member.UserID != c.user.ID {
		t.Error("membership should join the new user to the personal team")
	}
	if c.member.Role != domain.RoleAdmin || !c.member.Accepted {
		t.Errorf("initial membership should be an accepted admin, got role=%s accepted=%v", c.member.Role, c.member.Accepted)
	}
	if c.key.UserID != c.user.ID {
		t.Error("initial key should belong to the new user")
	}
}

func TestRegister_Conflicts(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.bySubject["auth0|taken"] = &domain.User{ID: 1, Username: "taken"}
	repo.byUsername["alice"] = &domain.User{ID: 2, Username: "alice"}
	uc := NewRegister(repo, &fakeProvider{subject: "auth0|taken"}, testNode(t))

	if _, err := uc.Execute(context.Background(), "tok", "fresh"); !errors.Is(err, domerrors.ErrConflict) {
		t.Errorf("duplicate subject: want ErrConflict, got %v", err)
	}

	uc = NewRegister(repo, &fakeProvider{subject: "auth0|fresh"}, testNode(t))
	if _, err := uc.Execute(context.Background(), "tok", "alice"); !errors.Is(err, domerrors.ErrConflict) {
		t.Errorf("taken username: want ErrConflict, got %v", err)
	}
}

func TestRegister_ProviderRejects(t *testing.T) {
	t.Parallel()

	uc := NewRegister(newFakeUserRepo(), &fakeProvider{err: domerrors.ErrInvalidCredential}, testNode(t))

	if _, err := uc.Execute(context.Background(), "bad", "alice"); !errors.Is(err, domerrors.ErrInvalidCredential) {
		t.Errorf("want ErrInvalidCredential, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.byUsername["alice"] = &domain.User{ID: 7, Username: "alice"}
	cache := &fakeCache{}
	uc := NewDelete(repo, cache)

	if err := uc.Execute(context.Background(), 8, 7); !errors.Is(err, domerrors.ErrForbidden) {
		t.Errorf("deleting someone else: want ErrForbidden, got %v", err)
	}
	if err := uc.Execute(context.Background(), 9, 9); !errors.Is(err, domerrors.ErrNotFound) {
		t.Errorf("missing user: want ErrNotFound, got %v", err)
	}
	if err := uc.Execute(context.Background(), 7, 7); err != nil {
		t.Fatalf("self delete failed: %v", err)
	}
	if repo.deleted == nil || repo.deleted.ID != 7 {
		t.Error("repository Delete should receive the account")
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != 7 {
		t.Errorf("cache invalidations = %v, want [7]", cache.invalidated)
	}
}
