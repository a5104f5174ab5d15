package usecase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/internal/usecase"
	"go-marketplace-backend/pkg/apperror"
	"go-marketplace-backend/pkg/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSearchWorkers(t *testing.T) {
	ctx := context.Background()

	t.Run("Should serve a cached page without hitting the repository", func(t *testing.T) {
		workers := new(MockWorkerRepo)
		cache := new(MockCache)
		cached := domain.PaginatedResult[domain.WorkerProfile]{
			Data:       []domain.WorkerProfile{{UserID: "w9"}},
			Total:      1,
			Page:       1,
			PageSize:   10,
			TotalPages: 1,
		}
		cache.On("Get", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				*args.Get(2).(*domain.PaginatedResult[domain.WorkerProfile]) = cached
			}).Return(nil)

		uc := usecase.NewWorkerUsecase(usecase.WorkerDeps{Workers: workers, Cache: cache})
		page, err := uc.Search(ctx, domain.WorkerFilter{Skill: "plumbing"})

		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "w9", page.Data[0].UserID)
		workers.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should rank results by default and cache them on a miss", func(t *testing.T) {
		workers := new(MockWorkerRepo)
		cache := new(MockCache)
		cache.On("Get", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.Contains(key, "sort=rank")
		}), mock.Anything).Return(redis.ErrCacheMiss)
		workers.On("Search", mock.Anything, mock.MatchedBy(func(f domain.WorkerFilter) bool {
			return f.Sort == domain.SortRank && f.Page == 1 && f.PageSize == 10
		}), 10, 0).Return([]domain.WorkerProfile{
			{UserID: "novice", RatingAvg: 3, RatingCount: 1},
			{UserID: "veteran", RatingAvg: 4.9, RatingCount: 40, CompletedJobs: 60, IsVerified: true},
		}, int64(2), nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		uc := usecase.NewWorkerUsecase(usecase.WorkerDeps{Workers: workers, Cache: cache})
		page, err := uc.Search(ctx, domain.WorkerFilter{})

		require.NoError(t, err)
		require.Len(t, page.Data, 2)
		assert.Equal(t, "veteran", page.Data[0].UserID)
		assert.Greater(t, page.Data[0].RankScore, page.Data[1].RankScore)
		assert.Equal(t, "USD", page.Data[1].Currency)
		cache.AssertExpectations(t)
	})

	t.Run("Should still search when the cache read fails", func(t *testing.T) {
		workers := new(MockWorkerRepo)
		cache := new(MockCache)
		cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)
		workers.On("Search", mock.Anything, mock.Anything, 10, 0).Return([]domain.WorkerProfile{}, int64(0), nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		uc := usecase.NewWorkerUsecase(usecase.WorkerDeps{Workers: workers, Cache: cache})
		page, err := uc.Search(ctx, domain.WorkerFilter{})

		require.NoError(t, err)
		assert.Empty(t, page.Data)
		workers.AssertExpectations(t)
	})

	t.Run("Should reject min_rate above max_rate", func(t *testing.T) {
		lo, hi := 80.0, 20.0

		uc := usecase.NewWorkerUsecase(usecase.WorkerDeps{Workers: new(MockWorkerRepo)})
		_, err := uc.Search(ctx, domain.WorkerFilter{MinRate: &lo, MaxRate: &hi})

		assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
	})
}

func TestUpdateMyProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Should recompute completeness after the update", func(t *testing.T) {
		workers := new(MockWorkerRepo)
		skills := new(MockSkillRepo)
		portfolio := new(MockPortfolioRepo)
		cache := new(MockCache)
		stored := &domain.WorkerProfile{UserID: "w1", Bio: "Twenty years under sinks"}

		workers.On("GetProfile", mock.Anything, "w1").Return(stored, nil)
		workers.On("UpdateProfile", mock.Anything, mock.Anything).Return(nil)
		skills.On("CountByWorker", mock.Anything, "w1").Return(1, nil)
		portfolio.On("CountByWorker", mock.Anything, "w1").Return(0, nil)
		// headline, bio and one skill fill 3 of 8 sections
		workers.On("SetCompleteness", mock.Anything, "w1", 38).Return(nil)
		cache.On("InvalidatePrefix", mock.Anything).Return(nil)
		workers.On("ListWorkHistory", mock.Anything, "w1").Return([]domain.WorkHistory{}, nil)

		headline := " Plumber "
		uc := usecase.NewWorkerUsecase(usecase.WorkerDeps{Workers: workers, Skills: skills, Portfolio: portfolio, Cache: cache})
		profile, err := uc.UpdateMyProfile(ctx, "w1", domain.UpdateWorkerProfileRequest{Headline: &headline})

		require.NoError(t, err)
		assert.Equal(t, "Plumber", profile.Headline)
		workers.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("Should skip the write when completeness is unchanged", func(t *testing.T) {
		workers := new(MockWorkerRepo)
		skills := new(MockSkillRepo)
		portfolio := new(MockPortfolioRepo)
		stored := &domain.WorkerProfile{UserID: "w1", ProfileCompleteness: 13}

		workers.On("GetProfile", mock.Anything, "w1").Return(stored, nil)
		workers.On("UpdateProfile", mock.Anything, mock.Anything).Return(nil)
		skills.On("CountByWorker", mock.Anything, "w1").Return(0, nil)
		portfolio.On("CountByWorker", mock.Anything, "w1").Return(0, nil)
		workers.On("ListWorkHistory", mock.Anything, "w1").Return(nil, nil)

		rate := 45.0
		uc := usecase.NewWorkerUsecase(usecase.WorkerDeps{Workers: workers, Skills: skills, Portfolio: portfolio})
		profile, err := uc.UpdateMyProfile(ctx, "w1", domain.UpdateWorkerProfileRequest{HourlyRate: &rate})

		require.NoError(t, err)
		assert.Equal(t, 45.0, profile.HourlyRate)
		assert.NotNil(t, profile.WorkHistory)
		workers.AssertNotCalled(t, "SetCompleteness", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should return 404 for a missing profile", func(t *testing.T) {
		workers := new(MockWorkerRepo)
		workers.On("GetProfile", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

		uc := usecase.NewWorkerUsecase(usecase.WorkerDeps{Workers: workers})
		_, err := uc.UpdateMyProfile(ctx, "ghost", domain.UpdateWorkerProfileRequest{})

		assert.Equal(t, http.StatusNotFound, apperror.StatusOf(err))
	})
}

func TestAddWorkHistory(t *testing.T) {
	t.Run("Should reject an end date before the start date", func(t *testing.T) {
		workers := new(MockWorkerRepo)

		uc := usecase.NewWorkerUsecase(usecase.WorkerDeps{Workers: workers})
		_, err := uc.AddWorkHistory(context.Background(), "w1", domain.WorkHistoryRequest{
			Title: "Foreman", StartDate: "2022-05-01", EndDate: "2021-01-01",
		})

		assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
		workers.AssertNotCalled(t, "CreateWorkHistory", mock.Anything, mock.Anything)
	})
}
