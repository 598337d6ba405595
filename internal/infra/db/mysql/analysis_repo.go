package mysql

import (
	"context"
	"database/sql"

	domain "github.com/imageinsight/appraiser/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save insert/update satu record analisis
func (r *AnalysisRepository) Save(ctx context.Context, rec *domain.Record) error {
	const q = `
INSERT INTO analysis_history
(id, image_url, item_count, degraded, duration_ms, created_at)
VALUES (?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 image_url=VALUES(image_url), item_count=VALUES(item_count),
 degraded=VALUES(degraded), duration_ms=VALUES(duration_ms);
`
	_, err := r.db.ExecContext(ctx, q,
		rec.ID, rec.ImageURL, rec.ItemCount, rec.Degraded, rec.DurationMS, rec.CreatedAt,
	)
	return err
}

// Latest ambil N record terakhir
func (r *AnalysisRepository) Latest(ctx context.Context, limit int) ([]*domain.Record, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, image_url, item_count, degraded, duration_ms, created_at
FROM analysis_history
ORDER BY created_at DESC LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Record
	for rows.Next() {
		var rec domain.Record
		if err := rows.Scan(
			&rec.ID, &rec.ImageURL, &rec.ItemCount, &rec.Degraded, &rec.DurationMS, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}
