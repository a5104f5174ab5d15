package postgres

import (
	"context"

	"go-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type availabilityRepo struct {
	db *pgxpool.Pool
}

func NewAvailabilityRepository(db *pgxpool.Pool) domain.AvailabilityRepository {
	return &availabilityRepo{db: db}
}

func (r *availabilityRepo) ListByWorker(ctx context.Context, workerID string) ([]domain.AvailabilitySlot, error) {
	query := `SELECT id, worker_id, day_of_week, start_time, end_time
              FROM availability_slots WHERE worker_id = $1 ORDER BY day_of_week, start_time`
	rows, err := r.db.Query(ctx, query, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []domain.AvailabilitySlot
	for rows.Next() {
		var s domain.AvailabilitySlot
		if err := rows.Scan(&s.ID, &s.WorkerID, &s.DayOfWeek, &s.StartTime, &s.EndTime); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// Replace deletes the worker's slots and inserts the new set atomically
func (r *availabilityRepo) Replace(ctx context.Context, workerID string, slots []domain.AvailabilitySlot) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM availability_slots WHERE worker_id = $1`, workerID); err != nil {
		return err
	}

	if len(slots) > 0 {
		batch := &pgx.Batch{}
		for _, s := range slots {
			batch.Queue(`INSERT INTO availability_slots (worker_id, day_of_week, start_time, end_time)
                         VALUES ($1, $2, $3, $4) RETURNING id`,
				workerID, s.DayOfWeek, s.StartTime, s.EndTime)
		}
		results := tx.SendBatch(ctx, batch)
		for i := range slots {
			if err := results.QueryRow().Scan(&slots[i].ID); err != nil {
				results.Close()
				return err
			}
		}
		if err := results.Close(); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
