package domain

import (
	"context"
	"time"
)

// Skill levels
const (
	SkillLevelBeginner     = "beginner"
	SkillLevelIntermediate = "intermediate"
	SkillLevelExpert       = "expert"
)

// AssessmentPassScore is the minimum assessment score that verifies a skill
const AssessmentPassScore = 70

type SkillCategory struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type WorkerSkill struct {
	ID              int64      `json:"id"`
	WorkerID        string     `json:"worker_id"`
	CategoryID      *int64     `json:"category_id"`
	CategoryName    *string    `json:"category_name,omitempty"`
	SkillName       string     `json:"skill_name"`
	Level           string     `json:"level"`
	Years           int        `json:"years"`
	IsVerified      bool       `json:"is_verified"`
	AssessmentScore *int       `json:"assessment_score"`
	AssessedAt      *time.Time `json:"assessed_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

type SkillCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=80"`
	Description string `json:"description" binding:"max=500"`
}

type WorkerSkillRequest struct {
	SkillName  string `json:"skill_name" binding:"required,min=1,max=80,no_emoji"`
	CategoryID *int64 `json:"category_id" binding:"omitempty,gt=0"`
	Level      string `json:"level" binding:"required,oneof=beginner intermediate expert"`
	Years      int    `json:"years" binding:"gte=0,lte=60"`
}

type AssessmentRequest struct {
	Score *int `json:"score" binding:"required,gte=0,lte=100"`
}

type SkillRepository interface {
	ListCategories(ctx context.Context) ([]SkillCategory, error)
	GetCategory(ctx context.Context, id int64) (*SkillCategory, error)
	CreateCategory(ctx context.Context, category *SkillCategory) error
	UpdateCategory(ctx context.Context, category *SkillCategory) error
	DeleteCategory(ctx context.Context, id int64) error

	ListByWorker(ctx context.Context, workerID string) ([]WorkerSkill, error)
	GetSkill(ctx context.Context, id int64) (*WorkerSkill, error)
	CreateSkill(ctx context.Context, skill *WorkerSkill) error
	UpdateSkill(ctx context.Context, skill *WorkerSkill) error
	DeleteSkill(ctx context.Context, id int64) error
	RecordAssessment(ctx context.Context, id int64, score int, verified bool) error
	CountByWorker(ctx context.Context, workerID string) (int, error)
}

type SkillUsecase interface {
	ListCategories(ctx context.Context) ([]SkillCategory, error)
	CreateCategory(ctx context.Context, req SkillCategoryRequest) (*SkillCategory, error)
	UpdateCategory(ctx context.Context, id int64, req SkillCategoryRequest) (*SkillCategory, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListWorkerSkills(ctx context.Context, workerID string) ([]WorkerSkill, error)
	AddSkill(ctx context.Context, userID string, req WorkerSkillRequest) (*WorkerSkill, error)
	UpdateSkill(ctx context.Context, userID string, id int64, req WorkerSkillRequest) (*WorkerSkill, error)
	DeleteSkill(ctx context.Context, userID string, id int64) error
	SubmitAssessment(ctx context.Context, userID string, id int64, score int) (*WorkerSkill, error)
}
