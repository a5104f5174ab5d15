package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"
)

type skillUsecase struct {
	skills domain.SkillRepository
	scorer *profileScorer
	audit  *Auditor
}

func NewSkillUsecase(deps WorkerDeps, audit *Auditor) domain.SkillUsecase {
	return &skillUsecase{
		skills: deps.Skills,
		scorer: newProfileScorer(deps),
		audit:  audit,
	}
}

func (u *skillUsecase) ListCategories(ctx context.Context) ([]domain.SkillCategory, error) {
	categories, err := u.skills.ListCategories(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return nonNil(categories), nil
}

func (u *skillUsecase) CreateCategory(ctx context.Context, req domain.SkillCategoryRequest) (*domain.SkillCategory, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	category := &domain.SkillCategory{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if err := u.skills.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("A category with this name already exists")
		}
		return nil, apperror.Internal(err)
	}
	u.audit.Record(ctx, "skill_category.create", "skill_category", strconv.FormatInt(category.ID, 10), map[string]interface{}{"name": category.Name})
	return category, nil
}

func (u *skillUsecase) UpdateCategory(ctx context.Context, id int64, req domain.SkillCategoryRequest) (*domain.SkillCategory, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	category, err := u.skills.GetCategory(ctx, id)
	if err != nil {
		return nil, repoError(err, "Skill category not found")
	}
	category.Name = strings.TrimSpace(req.Name)
	category.Description = strings.TrimSpace(req.Description)
	if err := u.skills.UpdateCategory(ctx, category); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("A category with this name already exists")
		}
		return nil, repoError(err, "Skill category not found")
	}
	u.audit.Record(ctx, "skill_category.update", "skill_category", strconv.FormatInt(id, 10), map[string]interface{}{"name": category.Name})
	return category, nil
}

func (u *skillUsecase) DeleteCategory(ctx context.Context, id int64) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := u.skills.DeleteCategory(ctx, id); err != nil {
		return repoError(err, "Skill category not found")
	}
	u.audit.Record(ctx, "skill_category.delete", "skill_category", strconv.FormatInt(id, 10), nil)
	return nil
}

func (u *skillUsecase) ListWorkerSkills(ctx context.Context, workerID string) ([]domain.WorkerSkill, error) {
	skills, err := u.skills.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return nonNil(skills), nil
}

func (u *skillUsecase) checkCategory(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := u.skills.GetCategory(ctx, *id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.BadRequest("Skill category does not exist")
		}
		return apperror.Internal(err)
	}
	return nil
}

// hasSkillNamed reports whether the worker already lists the skill, ignoring exceptID
func (u *skillUsecase) hasSkillNamed(ctx context.Context, workerID, name string, exceptID int64) (bool, error) {
	existing, err := u.skills.ListByWorker(ctx, workerID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	for _, s := range existing {
		if s.ID != exceptID && strings.EqualFold(s.SkillName, name) {
			return true, nil
		}
	}
	return false, nil
}

func (u *skillUsecase) AddSkill(ctx context.Context, userID string, req domain.WorkerSkillRequest) (*domain.WorkerSkill, error) {
	name := strings.TrimSpace(req.SkillName)
	if name == "" {
		return nil, apperror.BadRequest("Skill name is required")
	}
	if err := u.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	dup, err := u.hasSkillNamed(ctx, userID, name, 0)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, apperror.Conflict("You already listed this skill")
	}

	skill := &domain.WorkerSkill{
		WorkerID:   userID,
		CategoryID: req.CategoryID,
		SkillName:  name,
		Level:      req.Level,
		Years:      req.Years,
	}
	if err := u.skills.CreateSkill(ctx, skill); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("You already listed this skill")
		}
		return nil, apperror.Internal(err)
	}
	if err := u.scorer.Refresh(ctx, userID); err != nil {
		return nil, err
	}
	return skill, nil
}

func (u *skillUsecase) ownedSkill(ctx context.Context, userID string, id int64) (*domain.WorkerSkill, error) {
	skill, err := u.skills.GetSkill(ctx, id)
	if err != nil {
		return nil, repoError(err, "Skill not found")
	}
	if skill.WorkerID != userID {
		return nil, apperror.Forbidden("You can only modify your own skills")
	}
	return skill, nil
}

func (u *skillUsecase) UpdateSkill(ctx context.Context, userID string, id int64, req domain.WorkerSkillRequest) (*domain.WorkerSkill, error) {
	skill, err := u.ownedSkill(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.SkillName)
	if err := u.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	dup, err := u.hasSkillNamed(ctx, userID, name, id)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, apperror.Conflict("You already listed this skill")
	}

	// Renaming a skill invalidates a previous assessment
	if !strings.EqualFold(skill.SkillName, name) {
		skill.IsVerified = false
		skill.AssessmentScore = nil
		skill.AssessedAt = nil
	}
	skill.SkillName = name
	skill.CategoryID = req.CategoryID
	skill.Level = req.Level
	skill.Years = req.Years

	if err := u.skills.UpdateSkill(ctx, skill); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("You already listed this skill")
		}
		return nil, repoError(err, "Skill not found")
	}
	u.scorer.invalidate(ctx)
	return skill, nil
}

func (u *skillUsecase) DeleteSkill(ctx context.Context, userID string, id int64) error {
	if _, err := u.ownedSkill(ctx, userID, id); err != nil {
		return err
	}
	if err := u.skills.DeleteSkill(ctx, id); err != nil {
		return repoError(err, "Skill not found")
	}
	return u.scorer.Refresh(ctx, userID)
}

// SubmitAssessment stores the latest score; a passing score verifies the skill
func (u *skillUsecase) SubmitAssessment(ctx context.Context, userID string, id int64, score int) (*domain.WorkerSkill, error) {
	if score < 0 || score > 100 {
		return nil, apperror.BadRequest("Score must be between 0 and 100")
	}
	skill, err := u.ownedSkill(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	verified := score >= domain.AssessmentPassScore
	if err := u.skills.RecordAssessment(ctx, id, score, verified); err != nil {
		return nil, repoError(err, "Skill not found")
	}
	updated, err := u.skills.GetSkill(ctx, id)
	if err != nil {
		skill.AssessmentScore = &score
		skill.IsVerified = verified
		return skill, nil
	}
	u.scorer.invalidate(ctx)
	return updated, nil
}
