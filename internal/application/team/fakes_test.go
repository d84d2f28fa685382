package team

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
)

type fakeTeamRepo struct {
	teams   map[int64]*domain.Team
	members map[int64]*domain.TeamMember
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		teams:   make(map[int64]*domain.Team),
		members: make(map[int64]*domain.TeamMember),
	}
}

func (f *fakeTeamRepo) CreateWithAdmin(ctx context.Context, team *domain.Team, member *domain.TeamMember) error {
	for _, t := range f.teams {
		if t.Name == team.Name {
			return errors.New("duplicate team name")
		}
	}
	f.teams[team.ID] = team
	f.members[member.ID] = member
	return nil
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	return f.teams[id], nil
}

func (f *fakeTeamRepo) GetByName(ctx context.Context, name string) (*domain.Team, error) {
	for _, t := range f.teams {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTeamRepo) ListTeamIDsForUser(ctx context.Context, userID int64) ([]int64, error) {
	var out []int64
	for _, m := range f.members {
		if m.UserID == userID {
			out = append(out, m.TeamID)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) ListMembers(ctx context.Context, teamID int64) ([]*domain.TeamMember, error) {
	var out []*domain.TeamMember
	for _, m := range f.members {
		if m.TeamID == teamID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) GetMembership(ctx context.Context, teamID, userID int64) (*domain.TeamMember, error) {
	for _, m := range f.members {
		if m.TeamID == teamID && m.UserID == userID {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeTeamRepo) GetMemberByID(ctx context.Context, memberID int64) (*domain.TeamMember, error) {
	return f.members[memberID], nil
}

func (f *fakeTeamRepo) InsertMember(ctx context.Context, m *domain.TeamMember) error {
	for _, existing := range f.members {
		if existing.TeamID == m.TeamID && existing.UserID == m.UserID {
			return errors.New("duplicate membership")
		}
	}
	f.members[m.ID] = m
	return nil
}

func (f *fakeTeamRepo) UpdateMember(ctx context.Context, memberID int64, role *domain.TeamRole, accepted *bool) error {
	m, ok := f.members[memberID]
	if !ok {
		return errors.New("no such member")
	}
	if role != nil {
		m.Role = *role
	}
	if accepted != nil {
		m.Accepted = *accepted
	}
	return nil
}

func (f *fakeTeamRepo) DeleteMember(ctx context.Context, memberID int64) error {
	delete(f.members, memberID)
	return nil
}

func (f *fakeTeamRepo) CountAcceptedAdmins(ctx context.Context, teamID int64) (int, error) {
	n := 0
	for _, m := range f.members {
		if m.TeamID == teamID && m.Role == domain.RoleAdmin && m.Accepted {
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	byUsername map[string]*domain.User
}

func (f *fakeUserRepo) Register(ctx context.Context, user *domain.User, team *domain.Team, member *domain.TeamMember, key *domain.APIKey) error {
	return errors.New("not implemented")
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
	return nil, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, user *domain.User) error {
	return errors.New("not implemented")
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

func seedTeam(repo *fakeTeamRepo, teamID int64) *domain.Team {
	now := time.Now()
	team := &domain.Team{ID: teamID, Name: "acme", CreatedAt: now, UpdatedAt: now}
	repo.teams[teamID] = team
	return team
}

func seedMember(repo *fakeTeamRepo, memberID, teamID, userID int64, role domain.TeamRole, accepted bool) *domain.TeamMember {
	now := time.Now()
	m := &domain.TeamMember{
		ID:        memberID,
		TeamID:    teamID,
		UserID:    userID,
		InvitedBy: userID,
		Role:      role,
		Accepted:  accepted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	repo.members[memberID] = m
	return m
}
