package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
)

const (
	insertUserSQL = `INSERT INTO users (id, username, auth0_subject, default_team_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	selectUserSQL = `SELECT id, username, auth0_subject, default_team_id, created_at FROM users`

	deleteUserMembersSQL  = `DELETE FROM team_members WHERE user_id = $1`
	deleteUserKeysSQL     = `DELETE FROM api_keys WHERE user_id = $1`
	deletePersonalTeamSQL = `DELETE FROM teams WHERE name = $1`
	deleteUserSQL         = `DELETE FROM users WHERE id = $1`
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Register creates the user and everything a new account starts with in a
// single transaction; a failure anywhere leaves no partial account behind.
func (r *UserRepository) Register(ctx context.Context, user *domain.User, team *domain.Team, member *domain.TeamMember, key *domain.APIKey) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if _, err := tx.Exec(ctx, insertTeamSQL,
		team.ID, team.Name, team.Description, team.CreatedAt, team.UpdatedAt); err != nil {
		return mapUnique(err)
	}
	if _, err := tx.Exec(ctx, insertUserSQL,
		user.ID, user.Username, user.Auth0Subject, user.DefaultTeamID, user.CreatedAt); err != nil {
		return mapUnique(err)
	}
	if _, err := tx.Exec(ctx, insertMemberSQL,
		member.ID, member.TeamID, member.UserID, member.InvitedBy, member.Role, member.Accepted,
		member.CreatedAt, member.UpdatedAt); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, insertKeySQL,
		key.Key, key.UserID, key.Description, key.CreatedAt, key.LastUsed); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx, selectUserSQL+` WHERE id = $1`, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx, selectUserSQL+` WHERE username = $1`, username))
}

func (r *UserRepository) GetByAuth0Subject(ctx context.Context, subject string) (*domain.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx, selectUserSQL+` WHERE auth0_subject = $1`, subject))
}

// Delete removes the user, their memberships, API keys and personal team.
func (r *UserRepository) Delete(ctx context.Context, user *domain.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if _, err := tx.Exec(ctx, deleteUserMembersSQL, user.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, deleteUserKeysSQL, user.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, deletePersonalTeamSQL, user.Username); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, deleteUserSQL, user.ID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *UserRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Auth0Subject, &u.DefaultTeamID, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
