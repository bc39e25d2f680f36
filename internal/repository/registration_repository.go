package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/competition-service/internal/domain"
	apperrors "github.com/spec-kit/competition-service/pkg/util/errorutil"
)

// RegistrationRepository persists competition registrations.
type RegistrationRepository interface {
	// Find returns pgx.ErrNoRows when the team is not registered.
	Find(ctx context.Context, competitionID, teamID string) (*domain.CompetitionRegistration, error)
	Create(ctx context.Context, registration *domain.CompetitionRegistration) error
	ListTeams(ctx context.Context, competitionID string) ([]domain.Team, error)
	ListByTeam(ctx context.Context, teamID string) ([]domain.CompetitionRegistration, error)
}

type registrationRepository struct {
	pool *pgxpool.Pool
}

// NewRegistrationRepository constructs repository.
func NewRegistrationRepository(pool *pgxpool.Pool) RegistrationRepository {
	return &registrationRepository{pool: pool}
}

func (r *registrationRepository) Find(ctx context.Context, competitionID, teamID string) (*domain.CompetitionRegistration, error) {
	const query = `
        SELECT id, competition_id, team_id, created_at
        FROM competition_registrations
        WHERE competition_id=$1 AND team_id=$2`
	var reg domain.CompetitionRegistration
	if err := r.pool.QueryRow(ctx, query, competitionID, teamID).Scan(
		&reg.ID, &reg.CompetitionID, &reg.TeamID, &reg.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Create inserts the registration. The (competition_id, team_id) unique
// constraint backs up the service-level duplicate check.
func (r *registrationRepository) Create(ctx context.Context, registration *domain.CompetitionRegistration) error {
	const query = `
        INSERT INTO competition_registrations (competition_id, team_id)
        VALUES ($1,$2)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query, registration.CompetitionID, registration.TeamID).
		Scan(&registration.ID, &registration.CreatedAt)
	code, constraint, ok := pgErrorCode(err)
	if !ok {
		return err
	}
	switch code {
	case pgUniqueViolation:
		return apperrors.NewDuplicateRegistration(registration.CompetitionID, registration.TeamID)
	case pgForeignKeyViolation:
		if constraint == "competition_registrations_team_id_fkey" {
			return apperrors.NewNotFound("team", map[string]any{"team_id": registration.TeamID})
		}
		return apperrors.NewNotFound("competition", map[string]any{"competition_id": registration.CompetitionID})
	}
	return err
}

func (r *registrationRepository) ListTeams(ctx context.Context, competitionID string) ([]domain.Team, error) {
	const query = `
        SELECT t.id, t.name, t.description, t.created_at
        FROM competition_registrations cr
        JOIN teams t ON t.id = cr.team_id
        WHERE cr.competition_id=$1
        ORDER BY cr.created_at, cr.id`
	rows, err := r.pool.Query(ctx, query, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Team
	for rows.Next() {
		var team domain.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.Description, &team.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, team)
	}
	return result, rows.Err()
}

func (r *registrationRepository) ListByTeam(ctx context.Context, teamID string) ([]domain.CompetitionRegistration, error) {
	const query = `
        SELECT id, competition_id, team_id, created_at
        FROM competition_registrations
        WHERE team_id=$1
        ORDER BY created_at DESC, id`
	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.CompetitionRegistration{}
	for rows.Next() {
		var reg domain.CompetitionRegistration
		if err := rows.Scan(&reg.ID, &reg.CompetitionID, &reg.TeamID, &reg.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, reg)
	}
	return result, rows.Err()
}
