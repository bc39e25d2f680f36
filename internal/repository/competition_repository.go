package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/competition-service/internal/domain"
)

// CompetitionRepository manages persistence for competitions.
type CompetitionRepository interface {
	Create(ctx context.Context, competition *domain.Competition) error
	Update(ctx context.Context, competition *domain.Competition) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Competition, error)
	List(ctx context.Context) ([]domain.Competition, error)
}

type competitionRepository struct {
	pool *pgxpool.Pool
}

// NewCompetitionRepository constructs repository.
func NewCompetitionRepository(pool *pgxpool.Pool) CompetitionRepository {
	return &competitionRepository{pool: pool}
}

const competitionColumns = `id, title, description, location, start_time, end_time, registration_deadline, created_at, updated_at`

func (r *competitionRepository) Create(ctx context.Context, competition *domain.Competition) error {
	const query = `
        INSERT INTO competitions (title, description, location, start_time, end_time, registration_deadline)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		competition.Title,
		competition.Description,
		competition.Location,
		competition.StartTime,
		competition.EndTime,
		competition.RegistrationDeadline,
	).Scan(&competition.ID, &competition.CreatedAt, &competition.UpdatedAt)
}

func (r *competitionRepository) Update(ctx context.Context, competition *domain.Competition) error {
	const query = `
        UPDATE competitions
        SET title=$1, description=$2, location=$3, start_time=$4, end_time=$5, registration_deadline=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		competition.Title,
		competition.Description,
		competition.Location,
		competition.StartTime,
		competition.EndTime,
		competition.RegistrationDeadline,
		competition.ID,
	).Scan(&competition.UpdatedAt)
}

func (r *competitionRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM competitions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *competitionRepository) GetByID(ctx context.Context, id string) (*domain.Competition, error) {
	query := `SELECT ` + competitionColumns + ` FROM competitions WHERE id=$1`
	var competition domain.Competition
	if err := scanCompetition(r.pool.QueryRow(ctx, query, id), &competition); err != nil {
		return nil, err
	}
	return &competition, nil
}

func (r *competitionRepository) List(ctx context.Context) ([]domain.Competition, error) {
	query := `SELECT ` + competitionColumns + ` FROM competitions ORDER BY start_time DESC, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Competition{}
	for rows.Next() {
		var competition domain.Competition
		if err := scanCompetition(rows, &competition); err != nil {
			return nil, err
		}
		result = append(result, competition)
	}
	return result, rows.Err()
}

func scanCompetition(row pgx.Row, c *domain.Competition) error {
	return row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.Location,
		&c.StartTime,
		&c.EndTime,
		&c.RegistrationDeadline,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}
