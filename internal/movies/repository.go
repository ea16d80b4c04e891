package movies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/lib/pq"
)

// Store is the persistence boundary for curated movies.
type Store interface {
	List(ctx context.Context, offset, limit int) ([]Movie, int, error)
	Get(ctx context.Context, id int64) (*Movie, error)
	Create(ctx context.Context, m *Movie) error
	Update(ctx context.Context, m *Movie) error
	Delete(ctx context.Context, id int64) error
	ListIDs(ctx context.Context) ([]int64, error)
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const movieColumns = `id, title, slug, overview, poster_path, release_date, streaming_link,
	asset_id, external_id, rating, duration_minutes, "cast", director, category,
	custom_tags, created_at, updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(row scanner) (*Movie, error) {
	m := &Movie{}
	var castJSON []byte
	var category string
	err := row.Scan(&m.ID, &m.Title, &m.Slug, &m.Overview, &m.PosterPath, &m.ReleaseDate,
		&m.StreamingLink, &m.AssetID, &m.ExternalID, &m.Rating, &m.DurationMinutes,
		&castJSON, &m.Director, &category, pq.Array(&m.CustomTags), &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.Category = Category(category)
	if len(castJSON) > 0 {
		if err := json.Unmarshal(castJSON, &m.Cast); err != nil {
			return nil, fmt.Errorf("decode cast: %w", err)
		}
	}
	if m.Cast == nil {
		m.Cast = []CastMember{}
	}
	if m.CustomTags == nil {
		m.CustomTags = []string{}
	}
	return m, nil
}

// List returns one page ordered newest first, plus the total row count.
func (r *Repository) List(ctx context.Context, offset, limit int) ([]Movie, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movies: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+movieColumns+" FROM movies ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	out := []Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *m)
	}
	return out, total, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id int64) (*Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx, "SELECT "+movieColumns+" FROM movies WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return m, err
}

func (r *Repository) Create(ctx context.Context, m *Movie) error {
	castJSON, err := json.Marshal(m.Cast)
	if err != nil {
		return fmt.Errorf("encode cast: %w", err)
	}
	return r.db.QueryRowContext(ctx, `
		INSERT INTO movies (title, slug, overview, poster_path, release_date, streaming_link,
			asset_id, external_id, rating, duration_minutes, "cast", director, category, custom_tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at`,
		m.Title, m.Slug, m.Overview, m.PosterPath, m.ReleaseDate, m.StreamingLink,
		m.AssetID, m.ExternalID, m.Rating, m.DurationMinutes, castJSON, m.Director,
		string(m.Category), pq.Array(m.CustomTags),
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *Repository) Update(ctx context.Context, m *Movie) error {
	castJSON, err := json.Marshal(m.Cast)
	if err != nil {
		return fmt.Errorf("encode cast: %w", err)
	}
	err = r.db.QueryRowContext(ctx, `
		UPDATE movies SET title=$1, slug=$2, overview=$3, poster_path=$4, release_date=$5,
			streaming_link=$6, asset_id=$7, external_id=$8, rating=$9, duration_minutes=$10,
			"cast"=$11, director=$12, category=$13, custom_tags=$14, updated_at=NOW()
		WHERE id=$15
		RETURNING created_at, updated_at`,
		m.Title, m.Slug, m.Overview, m.PosterPath, m.ReleaseDate, m.StreamingLink,
		m.AssetID, m.ExternalID, m.Rating, m.DurationMinutes, castJSON, m.Director,
		string(m.Category), pq.Array(m.CustomTags), m.ID,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM movies WHERE id = $1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListIDs returns every stored movie id, oldest first.
func (r *Repository) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id FROM movies ORDER BY id")
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
