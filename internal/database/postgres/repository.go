package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/zipway/zipway/internal/database"
	"github.com/zipway/zipway/internal/models"
)

type urlRecord struct {
	ID        string    `db:"id"`
	TargetURL string    `db:"target_url"`
	Clicks    int64     `db:"clicks"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *urlRecord) ToURL() *models.URL {
	return &models.URL{
		ShortID:   r.ID,
		TargetURL: r.TargetURL,
		Clicks:    r.Clicks,
		CreatedAt: r.CreatedAt,
	}
}

// URLRepository persists URL records in Postgres. The primary key on urls.id
// is the authoritative uniqueness guard for short identifiers.
type URLRepository struct {
	db *sqlx.DB
}

func NewURLRepository(db *sqlx.DB) *URLRepository {
	return &URLRepository{
		db: db,
	}
}

func (r *URLRepository) Create(ctx context.Context, shortID, targetURL string) (*models.URL, error) {
	const op = "database.postgres.URLRepository.Create"

	rec := new(urlRecord)
	query := `INSERT INTO urls(id, target_url)
		VALUES ($1, $2)
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query, shortID, targetURL)
	if err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrShortIDExists)
		}

		return nil, fmt.Errorf("%s: failed to create url record: %w", op, err)
	}

	return rec.ToURL(), nil
}

func (r *URLRepository) Get(ctx context.Context, shortID string) (*models.URL, error) {
	const op = "database.postgres.URLRepository.Get"

	rec := new(urlRecord)
	query := `SELECT * FROM urls WHERE id = $1`

	err := r.db.GetContext(ctx, rec, query, shortID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get url record: %w", op, err)
	}

	return rec.ToURL(), nil
}

func (r *URLRepository) Exists(ctx context.Context, shortID string) (bool, error) {
	const op = "database.postgres.URLRepository.Exists"

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM urls WHERE id = $1)`

	if err := r.db.GetContext(ctx, &exists, query, shortID); err != nil {
		return false, fmt.Errorf("%s: failed to check url record existence: %w", op, err)
	}

	return exists, nil
}

func (r *URLRepository) IncrementClicks(ctx context.Context, shortID string) error {
	const op = "database.postgres.URLRepository.IncrementClicks"

	query := `UPDATE urls
		SET clicks = clicks + 1
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, shortID)
	if err != nil {
		return fmt.Errorf("%s: failed to increment clicks: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, database.ErrURLNotFound)
	}

	return nil
}

func (r *URLRepository) Delete(ctx context.Context, shortID string) error {
	const op = "database.postgres.URLRepository.Delete"

	query := `DELETE FROM urls WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, shortID)
	if err != nil {
		return fmt.Errorf("%s: failed to delete url record: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, database.ErrURLNotFound)
	}

	return nil
}

// TopByClicks returns up to limit records ordered by click count descending.
// Ties break by identifier so the ordering is deterministic.
func (r *URLRepository) TopByClicks(ctx context.Context, limit int) ([]models.URL, error) {
	const op = "database.postgres.URLRepository.TopByClicks"

	var recs []urlRecord
	query := `SELECT * FROM urls
		ORDER BY clicks DESC, id ASC
		LIMIT $1`

	if err := r.db.SelectContext(ctx, &recs, query, limit); err != nil {
		return nil, fmt.Errorf("%s: failed to get top url records: %w", op, err)
	}

	urls := make([]models.URL, 0, len(recs))
	for _, rec := range recs {
		urls = append(urls, *rec.ToURL())
	}

	return urls, nil
}
