package interactionrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/care-moments/internal/domain/interaction"
)

// maxHistoryRows caps a single history load.
const maxHistoryRows = 1000

// PostgresRepository implements interaction.Repository against the Supabase schema using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// List implements interaction.Repository.
func (r *PostgresRepository) List(ctx context.Context, q interaction.Query) ([]interaction.Record, bool, error) {
	var visible bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM care_relationships cr
			JOIN caregivers c ON c.id = cr.caregiver_id
			WHERE c.user_id::text = $1 AND cr.recipient_id::text = $2
		)
	`, q.ViewerID, q.RecipientID).Scan(&visible)
	if err != nil {
		return nil, false, err
	}
	if !visible {
		return nil, false, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id::text, recipient_id::text, created_at, activity_type,
		       COALESCE(title, ''), COALESCE(description, ''),
		       mood_rating, success_level, energy_level,
		       COALESCE(tags, '{}')
		FROM interactions
		WHERE recipient_id::text = $1 AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT $3
	`, q.RecipientID, q.Since, maxHistoryRows)
	if err != nil {
		return nil, true, err
	}
	defer rows.Close()

	records := make([]interaction.Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, true, err
		}
		records = append(records, record)
	}
	return records, true, rows.Err()
}

// interactionRow is one interactions row as selected by List.
type interactionRow struct {
	ID           string
	RecipientID  string
	CreatedAt    time.Time
	ActivityType string
	Title        string
	Description  string
	Mood         *int32
	Success      *int32
	Energy       *int32
	Tags         []string
}

func scanRecord(rows pgx.Rows) (interaction.Record, error) {
	var row interactionRow
	if err := rows.Scan(
		&row.ID, &row.RecipientID, &row.CreatedAt, &row.ActivityType,
		&row.Title, &row.Description,
		&row.Mood, &row.Success, &row.Energy,
		&row.Tags,
	); err != nil {
		return interaction.Record{}, err
	}
	return row.record(), nil
}

// record converts the row; NULL and out-of-scale ratings become not recorded.
func (row interactionRow) record() interaction.Record {
	return interaction.Record{
		ID:           row.ID,
		RecipientID:  row.RecipientID,
		CreatedAt:    interaction.At(row.CreatedAt.UTC()),
		ActivityType: row.ActivityType,
		Title:        row.Title,
		Description:  row.Description,
		MoodRating:   ratingFrom(row.Mood),
		SuccessLevel: ratingFrom(row.Success),
		EnergyLevel:  ratingFrom(row.Energy),
		Tags:         row.Tags,
	}
}

func ratingFrom(v *int32) interaction.Rating {
	if v == nil {
		return interaction.Rating{}
	}
	return interaction.RatingOf(int(*v))
}

var _ interaction.Repository = (*PostgresRepository)(nil)
