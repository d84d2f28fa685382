package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
)

const (
	insertTeamSQL = `INSERT INTO teams (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	selectTeamSQL = `SELECT id, name, description, created_at, updated_at FROM teams`

	insertMemberSQL = `INSERT INTO team_members (id, team_id, user_id, invited_by, role, accepted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	selectMemberSQL = `SELECT id, team_id, user_id, invited_by, role, accepted, created_at, updated_at FROM team_members`

	listUserTeamIDsSQL = `SELECT team_id FROM team_members WHERE user_id = $1`
	countAdminsSQL     = `SELECT COUNT(*) FROM team_members WHERE team_id = $1 AND role = 'admin' AND accepted`
	deleteMemberSQL    = `DELETE FROM team_members WHERE id = $1`
)

type TeamRepository struct {
	pool *pgxpool.Pool
}

func NewTeamRepository(pool *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{pool: pool}
}

// CreateWithAdmin inserts the team and its first admin membership in one
// transaction so a membership failure never leaves an orphaned team.
func (r *TeamRepository) CreateWithAdmin(ctx context.Context, team *domain.Team, member *domain.TeamMember) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if _, err := tx.Exec(ctx, insertTeamSQL,
		team.ID, team.Name, team.Description, team.CreatedAt, team.UpdatedAt); err != nil {
		return mapUnique(err)
	}
	if _, err := tx.Exec(ctx, insertMemberSQL,
		member.ID, member.TeamID, member.UserID, member.InvitedBy, member.Role, member.Accepted,
		member.CreatedAt, member.UpdatedAt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	return r.scanTeam(r.pool.QueryRow(ctx, selectTeamSQL+` WHERE id = $1`, id))
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (*domain.Team, error) {
	return r.scanTeam(r.pool.QueryRow(ctx, selectTeamSQL+` WHERE name = $1`, name))
}

func (r *TeamRepository) ListTeamIDsForUser(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, listUserTeamIDsSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *TeamRepository) ListMembers(ctx context.Context, teamID int64) ([]*domain.TeamMember, error) {
	rows, err := r.pool.Query(ctx, selectMemberSQL+` WHERE team_id = $1 ORDER BY created_at`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var members []*domain.TeamMember
	for rows.Next() {
		m, err := r.scanMemberRows(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *TeamRepository) GetMembership(ctx context.Context, teamID, userID int64) (*domain.TeamMember, error) {
	return r.scanMember(r.pool.QueryRow(ctx, selectMemberSQL+` WHERE team_id = $1 AND user_id = $2`, teamID, userID))
}

func (r *TeamRepository) GetMemberByID(ctx context.Context, memberID int64) (*domain.TeamMember, error) {
	return r.scanMember(r.pool.QueryRow(ctx, selectMemberSQL+` WHERE id = $1`, memberID))
}

func (r *TeamRepository) InsertMember(ctx context.Context, m *domain.TeamMember) error {
	_, err := r.pool.Exec(ctx, insertMemberSQL,
		m.ID, m.TeamID, m.UserID, m.InvitedBy, m.Role, m.Accepted, m.CreatedAt, m.UpdatedAt)
	return mapUnique(err)
}

// UpdateMember patches role and/or acceptance; nil fields are left alone.
func (r *TeamRepository) UpdateMember(ctx context.Context, memberID int64, role *domain.TeamRole, accepted *bool) error {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{memberID}
	if role != nil {
		args = append(args, string(*role))
		sets = append(sets, "role = $2")
	}
	if accepted != nil {
		args = append(args, *accepted)
		if role != nil {
			sets = append(sets, "accepted = $3")
		} else {
			sets = append(sets, "accepted = $2")
		}
	}
	sql := `UPDATE team_members SET ` + strings.Join(sets, ", ") + ` WHERE id = $1`
	_, err := r.pool.Exec(ctx, sql, args...)
	return err
}

func (r *TeamRepository) DeleteMember(ctx context.Context, memberID int64) error {
	_, err := r.pool.Exec(ctx, deleteMemberSQL, memberID)
	return err
}

func (r *TeamRepository) CountAcceptedAdmins(ctx context.Context, teamID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, countAdminsSQL, teamID).Scan(&n)
	return n, err
}

func (r *TeamRepository) scanTeam(row pgx.Row) (*domain.Team, error) {
	var t domain.Team
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TeamRepository) scanMember(row pgx.Row) (*domain.TeamMember, error) {
	var m domain.TeamMember
	err := row.Scan(&m.ID, &m.TeamID, &m.UserID, &m.InvitedBy, &m.Role, &m.Accepted, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *TeamRepository) scanMemberRows(rows pgx.Rows) (*domain.TeamMember, error) {
	var m domain.TeamMember
	if err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.InvitedBy, &m.Role, &m.Accepted, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

var _ ports.TeamRepository = (*TeamRepository)(nil)
