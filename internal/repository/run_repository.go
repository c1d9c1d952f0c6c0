package repository

import (
	"database/sql"
	"time"
)

// RunRepository records pipeline runs for auditing.
type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) StartRun(runType string) (int64, error) {
	var id int64
	err := r.db.QueryRow(`
		INSERT INTO run_log(run_type) VALUES($1) RETURNING id
	`, runType).Scan(&id)
	return id, err
}

func (r *RunRepository) CompleteRun(runID int64, status, summary, runErr string) error {
	_, err := r.db.Exec(`
		UPDATE run_log SET completed_at = $1, status = $2, summary = $3, error = $4
		WHERE id = $5
	`, time.Now().UTC(), status, nullable(summary), nullable(runErr), runID)
	return err
}
