package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/competition-service/internal/domain"
)

// TeamRepository reads teams and their memberships.
type TeamRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	// FindMembership returns pgx.ErrNoRows when the user holds no such role in the team.
	FindMembership(ctx context.Context, userID, teamID string, role domain.MemberRole) (*domain.TeamMember, error)
	ListActiveMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error)
}

type teamRepository struct {
	pool *pgxpool.Pool
}

// NewTeamRepository constructs repository.
func NewTeamRepository(pool *pgxpool.Pool) TeamRepository {
	return &teamRepository{pool: pool}
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	const query = `SELECT id, name, description, created_at FROM teams WHERE id=$1`
	var team domain.Team
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.Description,
		&team.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) FindMembership(ctx context.Context, userID, teamID string, role domain.MemberRole) (*domain.TeamMember, error) {
	const query = `
        SELECT id, team_id, user_id, role, status, joined_at
        FROM team_members
        WHERE user_id=$1 AND team_id=$2 AND role=$3
        LIMIT 1`
	var m domain.TeamMember
	if err := r.pool.QueryRow(ctx, query, userID, teamID, role).Scan(
		&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.Status, &m.JoinedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *teamRepository) ListActiveMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	const query = `
        SELECT id, team_id, user_id, role, status, joined_at
        FROM team_members
        WHERE team_id=$1 AND status=$2
        ORDER BY joined_at, id`
	rows, err := r.pool.Query(ctx, query, teamID, domain.MemberStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		if err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.Status, &m.JoinedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
