package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the catalog loader needs.
// It can be mocked with pgxmock in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// AutoMigrate creates the videos table when it does not exist yet.
func AutoMigrate(ctx context.Context, db DB) error {
	_, err := db.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS videos (
          video_id   TEXT PRIMARY KEY,
          title      TEXT NOT NULL,
          tags       TEXT[] NOT NULL DEFAULT '{}',
          created_at TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `)
	if err != nil {
		return fmt.Errorf("migrate videos: %w", err)
	}
	return nil
}

// LoadPostgres builds a catalog from the videos table. Flag state is not
// stored; every loaded video starts unflagged.
func LoadPostgres(ctx context.Context, db DB) (*Catalog, error) {
	rows, err := db.Query(ctx, `
		SELECT title, video_id, tags
		FROM videos
		ORDER BY video_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	c := New()
	for rows.Next() {
		var (
			title string
			id    string
			tags  []string
		)
		if err := rows.Scan(&title, &id, &tags); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		if err := c.Add(NewVideo(title, id, tags)); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read videos: %w", err)
	}
	return c, nil
}
