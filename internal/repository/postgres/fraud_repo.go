package postgres

import (
	"context"
	"time"

	"go-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const fraudColumns = `id, alert_type, severity, status, subject_user_id, description, evidence, evidence_ids,
	resolved_by, resolution_note, resolved_at, created_at, updated_at`

type fraudRepo struct {
	db *pgxpool.Pool
}

func NewFraudRepository(db *pgxpool.Pool) domain.FraudRepository {
	return &fraudRepo{db: db}
}

func scanFraudAlert(row rowScanner) (*domain.FraudAlert, error) {
	var a domain.FraudAlert
	var evidence []byte
	err := row.Scan(&a.ID, &a.AlertType, &a.Severity, &a.Status, &a.SubjectUserID, &a.Description, &evidence,
		pq.Array(&a.EvidenceIDs), &a.ResolvedBy, &a.ResolutionNote, &a.ResolvedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	a.Evidence = evidence
	return &a, nil
}

func (r *fraudRepo) Create(ctx context.Context, a *domain.FraudAlert) error {
	var evidence interface{}
	if len(a.Evidence) > 0 {
		evidence = []byte(a.Evidence)
	}
	query := `INSERT INTO fraud_alerts (alert_type, severity, status, subject_user_id, description, evidence, evidence_ids)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`
	return mapError(r.db.QueryRow(ctx, query, a.AlertType, a.Severity, a.Status, a.SubjectUserID, a.Description,
		evidence, pq.Array(a.EvidenceIDs)).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt))
}

func (r *fraudRepo) GetByID(ctx context.Context, id int64) (*domain.FraudAlert, error) {
	return scanFraudAlert(r.db.QueryRow(ctx, `SELECT `+fraudColumns+` FROM fraud_alerts WHERE id = $1`, id))
}

func (r *fraudRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.FraudAlert, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []domain.FraudAlert
	for rows.Next() {
		a, err := scanFraudAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, *a)
	}
	return alerts, rows.Err()
}

func (r *fraudRepo) Fetch(ctx context.Context, f domain.FraudAlertFilter, limit, offset int) ([]domain.FraudAlert, int64, error) {
	var w whereBuilder
	if f.AlertType != "" {
		w.add("alert_type = ?", f.AlertType)
	}
	if f.Severity != "" {
		w.add("severity = ?", f.Severity)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}

	suffix, args := w.page(limit, offset)
	alerts, err := r.list(ctx, `SELECT `+fraudColumns+` FROM fraud_alerts`+w.clause()+` ORDER BY created_at DESC, id DESC`+suffix, args...)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM fraud_alerts`+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return alerts, total, nil
}

func (r *fraudRepo) UpdateStatus(ctx context.Context, a *domain.FraudAlert) error {
	query := `UPDATE fraud_alerts SET status = $2, resolved_by = $3, resolution_note = $4, resolved_at = $5, updated_at = $6
              WHERE id = $1`
	return affected(r.db.Exec(ctx, query, a.ID, a.Status, a.ResolvedBy, a.ResolutionNote, a.ResolvedAt, a.UpdatedAt))
}

func (r *fraudRepo) HasActive(ctx context.Context, alertType, subjectUserID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (
		SELECT 1 FROM fraud_alerts
		WHERE alert_type = $1 AND subject_user_id = $2 AND status IN ('open', 'investigating'))`,
		alertType, subjectUserID).Scan(&exists)
	return exists, err
}

// Stats counts every alert by status, severity and type; Daily only covers alerts created since the cutoff
func (r *fraudRepo) Stats(ctx context.Context, since time.Time) (*domain.FraudStats, error) {
	stats := &domain.FraudStats{
		ByStatus:   map[string]int64{},
		BySeverity: map[string]int64{},
		ByType:     map[string]int64{},
	}

	groups := []struct {
		column string
		into   map[string]int64
	}{
		{"status", stats.ByStatus},
		{"severity", stats.BySeverity},
		{"alert_type", stats.ByType},
	}
	for _, g := range groups {
		rows, err := r.db.Query(ctx, `SELECT `+g.column+`, COUNT(*) FROM fraud_alerts GROUP BY `+g.column)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var key string
			var count int64
			if err := rows.Scan(&key, &count); err != nil {
				rows.Close()
				return nil, err
			}
			g.into[key] = count
			if g.column == "status" {
				stats.Total += count
			}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	rows, err := r.db.Query(ctx, `SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
		FROM fraud_alerts WHERE created_at >= $1 GROUP BY day ORDER BY day`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d domain.DailyCount
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, err
		}
		stats.Daily = append(stats.Daily, d)
	}
	return stats, rows.Err()
}

func (r *fraudRepo) ListAll(ctx context.Context) ([]domain.FraudAlert, error) {
	return r.list(ctx, `SELECT `+fraudColumns+` FROM fraud_alerts ORDER BY created_at DESC, id DESC`)
}

// EarningsWindows compares each worker's last 24 hours against the 30 days before that
func (r *fraudRepo) EarningsWindows(ctx context.Context, now time.Time) ([]domain.EarningsWindow, error) {
	dayAgo := now.Add(-24 * time.Hour)
	query := `SELECT worker_id,
		COALESCE(SUM(amount) FILTER (WHERE created_at >= $1), 0),
		COALESCE(SUM(amount) FILTER (WHERE created_at < $1), 0)
	FROM earnings
	WHERE created_at >= $2 AND created_at <= $3
	GROUP BY worker_id
	HAVING COALESCE(SUM(amount) FILTER (WHERE created_at >= $1), 0) > 0`
	rows, err := r.db.Query(ctx, query, dayAgo, dayAgo.AddDate(0, 0, -30), now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.EarningsWindow
	for rows.Next() {
		var w domain.EarningsWindow
		if err := rows.Scan(&w.WorkerID, &w.Last24h, &w.Prior30Days); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// LoginFailures groups recent login_failed security events by the targeted account
func (r *fraudRepo) LoginFailures(ctx context.Context, since time.Time) ([]domain.LoginFailureCount, error) {
	query := `SELECT details->>'user_id' AS user_id, COUNT(*), array_agg(id::text ORDER BY id)
	FROM security_events
	WHERE event_type = 'login_failed' AND created_at >= $1 AND COALESCE(details->>'user_id', '') <> ''
	GROUP BY user_id`
	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LoginFailureCount
	for rows.Next() {
		var l domain.LoginFailureCount
		if err := rows.Scan(&l.UserID, &l.Failures, pq.Array(&l.EventIDs)); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// FreshAccountReviewBursts finds five-star reviews written by accounts younger than accountAge at review time
func (r *fraudRepo) FreshAccountReviewBursts(ctx context.Context, since time.Time, accountAge time.Duration) ([]domain.ReviewBurst, error) {
	query := `SELECT r.reviewee_id, COUNT(*), array_agg(r.id::text ORDER BY r.id), COUNT(DISTINCT r.reviewer_id)
	FROM reviews r
	JOIN users u ON u.id = r.reviewer_id
	WHERE r.rating = 5
	  AND r.created_at >= $1
	  AND u.created_at > r.created_at - make_interval(secs => $2)
	GROUP BY r.reviewee_id`
	rows, err := r.db.Query(ctx, query, since, accountAge.Seconds())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ReviewBurst
	for rows.Next() {
		var b domain.ReviewBurst
		if err := rows.Scan(&b.RevieweeID, &b.FreshReviews, pq.Array(&b.ReviewIDs), &b.ReviewerCount); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SharedPhones lists phone numbers registered to more than one account, oldest account first
func (r *fraudRepo) SharedPhones(ctx context.Context) ([]domain.SharedPhone, error) {
	query := `SELECT phone, array_agg(id ORDER BY created_at, id)
	FROM users
	WHERE phone IS NOT NULL AND phone <> ''
	GROUP BY phone
	HAVING COUNT(*) >= 2`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SharedPhone
	for rows.Next() {
		var s domain.SharedPhone
		if err := rows.Scan(&s.Phone, pq.Array(&s.UserIDs)); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// WorkerRates pairs each worker's hourly rate with every category they hold a skill in
func (r *fraudRepo) WorkerRates(ctx context.Context) ([]domain.WorkerRate, error) {
	query := `SELECT DISTINCT ws.worker_id, ws.category_id, wp.hourly_rate
	FROM worker_skills ws
	JOIN worker_profiles wp ON wp.user_id = ws.worker_id
	WHERE wp.hourly_rate > 0 AND ws.category_id IS NOT NULL`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WorkerRate
	for rows.Next() {
		var w domain.WorkerRate
		if err := rows.Scan(&w.WorkerID, &w.CategoryID, &w.HourlyRate); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
