package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/competition-service/internal/domain"
	apperrors "github.com/spec-kit/competition-service/pkg/util/errorutil"
)

// AnnouncementRepository persists competition announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *domain.CompetitionAnnouncement) error
	Delete(ctx context.Context, competitionID, id string) error
	ListByCompetition(ctx context.Context, competitionID string) ([]domain.CompetitionAnnouncement, error)
}

type announcementRepository struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository creates repository.
func NewAnnouncementRepository(pool *pgxpool.Pool) AnnouncementRepository {
	return &announcementRepository{pool: pool}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *domain.CompetitionAnnouncement) error {
	const query = `
        INSERT INTO competition_announcements (competition_id, title, content)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		announcement.CompetitionID,
		announcement.Title,
		announcement.Content,
	).Scan(&announcement.ID, &announcement.CreatedAt)
	if code, _, ok := pgErrorCode(err); ok && code == pgForeignKeyViolation {
		return apperrors.NewNotFound("competition", map[string]any{"competition_id": announcement.CompetitionID})
	}
	return err
}

func (r *announcementRepository) Delete(ctx context.Context, competitionID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM competition_announcements WHERE id=$1 AND competition_id=$2`, id, competitionID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *announcementRepository) ListByCompetition(ctx context.Context, competitionID string) ([]domain.CompetitionAnnouncement, error) {
	const query = `
        SELECT id, competition_id, title, content, created_at
        FROM competition_announcements
        WHERE competition_id=$1
        ORDER BY created_at DESC, id`
	rows, err := r.pool.Query(ctx, query, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.CompetitionAnnouncement{}
	for rows.Next() {
		var a domain.CompetitionAnnouncement
		if err := rows.Scan(&a.ID, &a.CompetitionID, &a.Title, &a.Content, &a.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
