package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
)

// MaterialRepository handles round study material data access.
type MaterialRepository struct {
	pool *pgxpool.Pool
}

// NewMaterialRepository creates a new MaterialRepository.
func NewMaterialRepository(pool *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{pool: pool}
}

// ListByRound retrieves a round's materials in sequence order.
func (r *MaterialRepository) ListByRound(ctx context.Context, roundID int64) ([]model.RoundMaterial, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, round_id, material_type, title, url, file_name, seq_no, created_at
		 FROM round_materials
		 WHERE round_id = $1
		 ORDER BY seq_no ASC, id ASC`, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []model.RoundMaterial
	for rows.Next() {
		var m model.RoundMaterial
		if err := rows.Scan(&m.ID, &m.RoundID, &m.MaterialType, &m.Title,
			&m.URL, &m.FileName, &m.SeqNo, &m.CreatedAt); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// FindByID retrieves one material.
func (r *MaterialRepository) FindByID(ctx context.Context, id int64) (*model.RoundMaterial, error) {
	var m model.RoundMaterial
	err := r.pool.QueryRow(ctx,
		`SELECT id, round_id, material_type, title, url, file_name, seq_no, created_at
		 FROM round_materials
		 WHERE id = $1`, id).
		Scan(&m.ID, &m.RoundID, &m.MaterialType, &m.Title,
			&m.URL, &m.FileName, &m.SeqNo, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a material and fills its ID and timestamp.
func (r *MaterialRepository) Create(ctx context.Context, m *model.RoundMaterial) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO round_materials (round_id, material_type, title, url, file_name, seq_no)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		m.RoundID, m.MaterialType, m.Title, m.URL, m.FileName, m.SeqNo).
		Scan(&m.ID, &m.CreatedAt)
}

// MaxSeqNo returns the highest sequence number in a round, 0 when empty.
func (r *MaterialRepository) MaxSeqNo(ctx context.Context, roundID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(seq_no), 0) FROM round_materials WHERE round_id = $1`, roundID).Scan(&n)
	return n, err
}

// Delete removes a material.
func (r *MaterialRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM round_materials WHERE id = $1`, id)
	return err
}
