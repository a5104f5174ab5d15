package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/internal/usecase"
	"go-marketplace-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddSkill(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return 409 when the worker already lists the skill", func(t *testing.T) {
		skills := new(MockSkillRepo)
		skills.On("ListByWorker", mock.Anything, "w1").Return([]domain.WorkerSkill{{ID: 1, WorkerID: "w1", SkillName: "Plumbing"}}, nil)

		uc := usecase.NewSkillUsecase(usecase.WorkerDeps{Skills: skills}, nil)
		_, err := uc.AddSkill(ctx, "w1", domain.WorkerSkillRequest{SkillName: " plumbing ", Level: domain.SkillLevelExpert})

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, apperror.StatusOf(err))
		skills.AssertNotCalled(t, "CreateSkill", mock.Anything, mock.Anything)
	})

	t.Run("Should map a unique violation on insert to 409", func(t *testing.T) {
		skills := new(MockSkillRepo)
		skills.On("ListByWorker", mock.Anything, "w1").Return(nil, nil)
		skills.On("CreateSkill", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

		uc := usecase.NewSkillUsecase(usecase.WorkerDeps{Skills: skills}, nil)
		_, err := uc.AddSkill(ctx, "w1", domain.WorkerSkillRequest{SkillName: "Tiling", Level: domain.SkillLevelBeginner})

		assert.Equal(t, http.StatusConflict, apperror.StatusOf(err))
	})

	t.Run("Should reject an unknown category", func(t *testing.T) {
		skills := new(MockSkillRepo)
		category := int64(42)
		skills.On("GetCategory", mock.Anything, category).Return(nil, domain.ErrNotFound)

		uc := usecase.NewSkillUsecase(usecase.WorkerDeps{Skills: skills}, nil)
		_, err := uc.AddSkill(ctx, "w1", domain.WorkerSkillRequest{SkillName: "Tiling", CategoryID: &category, Level: domain.SkillLevelBeginner})

		assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
	})

	t.Run("Should add the skill and refresh completeness", func(t *testing.T) {
		skills := new(MockSkillRepo)
		workers := new(MockWorkerRepo)
		portfolio := new(MockPortfolioRepo)
		skills.On("ListByWorker", mock.Anything, "w1").Return([]domain.WorkerSkill{}, nil)
		skills.On("CreateSkill", mock.Anything, mock.MatchedBy(func(s *domain.WorkerSkill) bool {
			return s.WorkerID == "w1" && s.SkillName == "Tiling" && !s.IsVerified
		})).Return(nil)
		workers.On("GetProfile", mock.Anything, "w1").Return(&domain.WorkerProfile{UserID: "w1"}, nil)
		skills.On("CountByWorker", mock.Anything, "w1").Return(1, nil)
		portfolio.On("CountByWorker", mock.Anything, "w1").Return(0, nil)
		workers.On("SetCompleteness", mock.Anything, "w1", 13).Return(nil)

		uc := usecase.NewSkillUsecase(usecase.WorkerDeps{Workers: workers, Skills: skills, Portfolio: portfolio}, nil)
		skill, err := uc.AddSkill(ctx, "w1", domain.WorkerSkillRequest{SkillName: " Tiling ", Level: domain.SkillLevelIntermediate, Years: 3})

		require.NoError(t, err)
		assert.Equal(t, "Tiling", skill.SkillName)
		workers.AssertExpectations(t)
	})
}

func TestSubmitAssessment(t *testing.T) {
	ctx := context.Background()
	owned := func() *domain.WorkerSkill {
		return &domain.WorkerSkill{ID: 7, WorkerID: "w1", SkillName: "Welding"}
	}

	t.Run("Should verify the skill on a passing score", func(t *testing.T) {
		skills := new(MockSkillRepo)
		score := domain.AssessmentPassScore
		skills.On("GetSkill", mock.Anything, int64(7)).Return(owned(), nil).Once()
		skills.On("RecordAssessment", mock.Anything, int64(7), score, true).Return(nil)
		skills.On("GetSkill", mock.Anything, int64(7)).
			Return(&domain.WorkerSkill{ID: 7, WorkerID: "w1", SkillName: "Welding", IsVerified: true, AssessmentScore: &score}, nil)

		uc := usecase.NewSkillUsecase(usecase.WorkerDeps{Skills: skills}, nil)
		skill, err := uc.SubmitAssessment(ctx, "w1", 7, score)

		require.NoError(t, err)
		assert.True(t, skill.IsVerified)
		skills.AssertExpectations(t)
	})

	t.Run("Should leave the skill unverified below the pass mark", func(t *testing.T) {
		skills := new(MockSkillRepo)
		skills.On("GetSkill", mock.Anything, int64(7)).Return(owned(), nil).Once()
		skills.On("RecordAssessment", mock.Anything, int64(7), 69, false).Return(nil)
		skills.On("GetSkill", mock.Anything, int64(7)).Return(nil, assert.AnError)

		uc := usecase.NewSkillUsecase(usecase.WorkerDeps{Skills: skills}, nil)
		skill, err := uc.SubmitAssessment(ctx, "w1", 7, 69)

		require.NoError(t, err)
		assert.False(t, skill.IsVerified)
		require.NotNil(t, skill.AssessmentScore)
		assert.Equal(t, 69, *skill.AssessmentScore)
	})

	t.Run("Should reject scores outside 0 to 100", func(t *testing.T) {
		skills := new(MockSkillRepo)

		uc := usecase.NewSkillUsecase(usecase.WorkerDeps{Skills: skills}, nil)
		_, err := uc.SubmitAssessment(ctx, "w1", 7, 101)

		assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
		skills.AssertNotCalled(t, "GetSkill", mock.Anything, mock.Anything)
	})

	t.Run("Should return 403 for another worker's skill", func(t *testing.T) {
		skills := new(MockSkillRepo)
		skills.On("GetSkill", mock.Anything, int64(7)).Return(owned(), nil)

		uc := usecase.NewSkillUsecase(usecase.WorkerDeps{Skills: skills}, nil)
		_, err := uc.SubmitAssessment(ctx, "w2", 7, 90)

		assert.Equal(t, http.StatusForbidden, apperror.StatusOf(err))
		skills.AssertNotCalled(t, "RecordAssessment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdateSkill(t *testing.T) {
	t.Run("Should drop a previous assessment when the skill is renamed", func(t *testing.T) {
		skills := new(MockSkillRepo)
		score := 90
		skills.On("GetSkill", mock.Anything, int64(7)).
			Return(&domain.WorkerSkill{ID: 7, WorkerID: "w1", SkillName: "Welding", IsVerified: true, AssessmentScore: &score}, nil)
		skills.On("ListByWorker", mock.Anything, "w1").Return([]domain.WorkerSkill{{ID: 7, SkillName: "Welding"}}, nil)
		skills.On("UpdateSkill", mock.Anything, mock.Anything).Return(nil)

		uc := usecase.NewSkillUsecase(usecase.WorkerDeps{Skills: skills}, nil)
		skill, err := uc.UpdateSkill(context.Background(), "w1", 7, domain.WorkerSkillRequest{SkillName: "Brazing", Level: domain.SkillLevelExpert})

		require.NoError(t, err)
		assert.False(t, skill.IsVerified)
		assert.Nil(t, skill.AssessmentScore)
	})
}

func TestCreateCategory(t *testing.T) {
	t.Run("Should require the admin role", func(t *testing.T) {
		skills := new(MockSkillRepo)

		uc := usecase.NewSkillUsecase(usecase.WorkerDeps{Skills: skills}, nil)
		_, err := uc.CreateCategory(context.Background(), domain.SkillCategoryRequest{Name: "Trades"})

		assert.Equal(t, http.StatusForbidden, apperror.StatusOf(err))
	})

	t.Run("Should audit a new category", func(t *testing.T) {
		skills := new(MockSkillRepo)
		admin := new(MockAdminRepo)
		skills.On("CreateCategory", mock.Anything, mock.Anything).Return(nil)
		admin.On("RecordAction", mock.Anything, mock.MatchedBy(func(a *domain.AdminAction) bool {
			return a.Action == "skill_category.create" && a.ActorID == "admin-1"
		})).Return(nil)

		uc := usecase.NewSkillUsecase(usecase.WorkerDeps{Skills: skills}, usecase.NewAuditor(admin, nil))
		category, err := uc.CreateCategory(adminCtx("admin-1"), domain.SkillCategoryRequest{Name: " Trades "})

		require.NoError(t, err)
		assert.Equal(t, "Trades", category.Name)
		admin.AssertExpectations(t)
	})
}
