package postgres

import (
	"context"

	"go-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type skillRepo struct {
	db *pgxpool.Pool
}

func NewSkillRepository(db *pgxpool.Pool) domain.SkillRepository {
	return &skillRepo{db: db}
}

func (r *skillRepo) ListCategories(ctx context.Context) ([]domain.SkillCategory, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, created_at FROM skill_categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.SkillCategory
	for rows.Next() {
		var c domain.SkillCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *skillRepo) GetCategory(ctx context.Context, id int64) (*domain.SkillCategory, error) {
	var c domain.SkillCategory
	err := r.db.QueryRow(ctx, `SELECT id, name, description, created_at FROM skill_categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *skillRepo) CreateCategory(ctx context.Context, c *domain.SkillCategory) error {
	return mapError(r.db.QueryRow(ctx,
		`INSERT INTO skill_categories (name, description) VALUES ($1, $2) RETURNING id, created_at`,
		c.Name, c.Description,
	).Scan(&c.ID, &c.CreatedAt))
}

func (r *skillRepo) UpdateCategory(ctx context.Context, c *domain.SkillCategory) error {
	return affected(r.db.Exec(ctx, `UPDATE skill_categories SET name = $2, description = $3 WHERE id = $1`, c.ID, c.Name, c.Description))
}

func (r *skillRepo) DeleteCategory(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM skill_categories WHERE id = $1`, id))
}

const skillSelect = `SELECT s.id, s.worker_id, s.category_id, c.name, s.skill_name, s.level, s.years,
	s.is_verified, s.assessment_score, s.assessed_at, s.created_at
	FROM worker_skills s
	LEFT JOIN skill_categories c ON c.id = s.category_id`

func scanSkill(row rowScanner) (*domain.WorkerSkill, error) {
	var s domain.WorkerSkill
	err := row.Scan(&s.ID, &s.WorkerID, &s.CategoryID, &s.CategoryName, &s.SkillName, &s.Level, &s.Years,
		&s.IsVerified, &s.AssessmentScore, &s.AssessedAt, &s.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *skillRepo) ListByWorker(ctx context.Context, workerID string) ([]domain.WorkerSkill, error) {
	rows, err := r.db.Query(ctx, skillSelect+` WHERE s.worker_id = $1 ORDER BY s.is_verified DESC, s.skill_name`, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []domain.WorkerSkill
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, *s)
	}
	return skills, rows.Err()
}

func (r *skillRepo) GetSkill(ctx context.Context, id int64) (*domain.WorkerSkill, error) {
	return scanSkill(r.db.QueryRow(ctx, skillSelect+` WHERE s.id = $1`, id))
}

func (r *skillRepo) CreateSkill(ctx context.Context, s *domain.WorkerSkill) error {
	query := `INSERT INTO worker_skills (worker_id, category_id, skill_name, level, years)
              VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	return mapError(r.db.QueryRow(ctx, query, s.WorkerID, s.CategoryID, s.SkillName, s.Level, s.Years).
		Scan(&s.ID, &s.CreatedAt))
}

func (r *skillRepo) UpdateSkill(ctx context.Context, s *domain.WorkerSkill) error {
	query := `UPDATE worker_skills SET category_id = $2, skill_name = $3, level = $4, years = $5,
                  is_verified = $6, assessment_score = $7, assessed_at = $8
              WHERE id = $1`
	return affected(r.db.Exec(ctx, query, s.ID, s.CategoryID, s.SkillName, s.Level, s.Years,
		s.IsVerified, s.AssessmentScore, s.AssessedAt))
}

func (r *skillRepo) DeleteSkill(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM worker_skills WHERE id = $1`, id))
}

func (r *skillRepo) RecordAssessment(ctx context.Context, id int64, score int, verified bool) error {
	query := `UPDATE worker_skills SET assessment_score = $2, is_verified = $3, assessed_at = NOW() WHERE id = $1`
	return affected(r.db.Exec(ctx, query, id, score, verified))
}

func (r *skillRepo) CountByWorker(ctx context.Context, workerID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM worker_skills WHERE worker_id = $1`, workerID).Scan(&n)
	return n, err
}
