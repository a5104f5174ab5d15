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

func TestApply(t *testing.T) {
	ctx := context.Background()
	openJob := &domain.Job{ID: 7, HirerID: "hirer", Title: "Logo design", Status: domain.JobStatusOpen}

	t.Run("Should reject applying to your own job", func(t *testing.T) {
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(7)).Return(openJob, nil)

		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), jobs, nil)
		_, err := uc.Apply(ctx, "hirer", 7, domain.ApplyRequest{})

		assert.Equal(t, http.StatusForbidden, apperror.StatusOf(err))
	})

	t.Run("Should reject closed jobs", func(t *testing.T) {
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(8)).Return(&domain.Job{ID: 8, HirerID: "hirer", Status: domain.JobStatusInProgress}, nil)

		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), jobs, nil)
		_, err := uc.Apply(ctx, "worker", 8, domain.ApplyRequest{})

		assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
	})

	t.Run("Should reject a second application with 409", func(t *testing.T) {
		jobs := new(MockJobRepo)
		apps := new(MockApplicationRepo)
		jobs.On("GetByID", mock.Anything, int64(7)).Return(openJob, nil)
		apps.On("CheckExists", mock.Anything, int64(7), "worker").Return(true, nil)

		uc := usecase.NewApplicationUsecase(apps, jobs, nil)
		_, err := uc.Apply(ctx, "worker", 7, domain.ApplyRequest{})

		assert.Equal(t, http.StatusConflict, apperror.StatusOf(err))
		apps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should return 404 for a missing job", func(t *testing.T) {
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), jobs, nil)
		_, err := uc.Apply(ctx, "worker", 99, domain.ApplyRequest{})

		assert.Equal(t, http.StatusNotFound, apperror.StatusOf(err))
	})

	t.Run("Should create a pending application", func(t *testing.T) {
		jobs := new(MockJobRepo)
		apps := new(MockApplicationRepo)
		jobs.On("GetByID", mock.Anything, int64(7)).Return(openJob, nil)
		apps.On("CheckExists", mock.Anything, int64(7), "worker").Return(false, nil)
		apps.On("Create", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil)

		uc := usecase.NewApplicationUsecase(apps, jobs, nil)
		app, err := uc.Apply(ctx, "worker", 7, domain.ApplyRequest{CoverLetter: "  I can help  ", ProposedRate: 40})

		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
		assert.Equal(t, "I can help", app.CoverLetter)
		require.NotNil(t, app.JobTitle)
		assert.Equal(t, "Logo design", *app.JobTitle)
	})
}

func TestApplicationStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Should only let the job owner change status", func(t *testing.T) {
		jobs := new(MockJobRepo)
		apps := new(MockApplicationRepo)
		apps.On("GetByID", mock.Anything, int64(1)).Return(&domain.Application{ID: 1, JobID: 7, Status: domain.ApplicationStatusPending}, nil)
		jobs.On("GetByID", mock.Anything, int64(7)).Return(&domain.Job{ID: 7, HirerID: "hirer", Status: domain.JobStatusOpen}, nil)

		uc := usecase.NewApplicationUsecase(apps, jobs, nil)
		_, err := uc.UpdateStatus(ctx, "someone-else", 1, domain.ApplicationStatusShortlisted)

		assert.Equal(t, http.StatusForbidden, apperror.StatusOf(err))
	})

	t.Run("Should not reopen a rejected application", func(t *testing.T) {
		jobs := new(MockJobRepo)
		apps := new(MockApplicationRepo)
		apps.On("GetByID", mock.Anything, int64(1)).Return(&domain.Application{ID: 1, JobID: 7, Status: domain.ApplicationStatusRejected}, nil)
		jobs.On("GetByID", mock.Anything, int64(7)).Return(&domain.Job{ID: 7, HirerID: "hirer", Status: domain.JobStatusOpen}, nil)

		uc := usecase.NewApplicationUsecase(apps, jobs, nil)
		_, err := uc.UpdateStatus(ctx, "hirer", 1, domain.ApplicationStatusAccepted)

		assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
	})

	t.Run("Should hire through Accept", func(t *testing.T) {
		jobs := new(MockJobRepo)
		apps := new(MockApplicationRepo)
		app := &domain.Application{ID: 1, JobID: 7, WorkerID: "worker", Status: domain.ApplicationStatusShortlisted}
		apps.On("GetByID", mock.Anything, int64(1)).Return(app, nil)
		jobs.On("GetByID", mock.Anything, int64(7)).Return(&domain.Job{ID: 7, HirerID: "hirer", Status: domain.JobStatusOpen}, nil)
		apps.On("Accept", mock.Anything, app).Return(nil)

		uc := usecase.NewApplicationUsecase(apps, jobs, nil)
		updated, err := uc.UpdateStatus(ctx, "hirer", 1, domain.ApplicationStatusAccepted)

		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusAccepted, updated.Status)
		apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should refuse a second hire", func(t *testing.T) {
		jobs := new(MockJobRepo)
		apps := new(MockApplicationRepo)
		apps.On("GetByID", mock.Anything, int64(2)).Return(&domain.Application{ID: 2, JobID: 7, Status: domain.ApplicationStatusPending}, nil)
		jobs.On("GetByID", mock.Anything, int64(7)).Return(&domain.Job{ID: 7, HirerID: "hirer", Status: domain.JobStatusInProgress}, nil)

		uc := usecase.NewApplicationUsecase(apps, jobs, nil)
		_, err := uc.UpdateStatus(ctx, "hirer", 2, domain.ApplicationStatusAccepted)

		assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
	})
}

func TestWithdraw(t *testing.T) {
	apps := new(MockApplicationRepo)
	apps.On("GetByID", mock.Anything, int64(3)).Return(&domain.Application{ID: 3, WorkerID: "worker", Status: domain.ApplicationStatusShortlisted}, nil)

	uc := usecase.NewApplicationUsecase(apps, new(MockJobRepo), nil)

	err := uc.Withdraw(context.Background(), "intruder", 3)
	assert.Equal(t, http.StatusForbidden, apperror.StatusOf(err))

	err = uc.Withdraw(context.Background(), "worker", 3)
	assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
	apps.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
