package usecase

import (
	"context"
	"errors"
	"strings"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"
	"go-marketplace-backend/pkg/email"
	"go-marketplace-backend/pkg/logger"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	notifier        Notifier
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	notifier Notifier,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		notifier:        notifier,
	}
}

// Apply submits a worker's proposal for an open job
func (uc *applicationUsecase) Apply(ctx context.Context, userID string, jobID int64, req domain.ApplyRequest) (*domain.Application, error) {
	// 1. Validate job exists
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, repoError(err, "Job not found")
	}

	// 2. Hirers cannot apply to their own postings
	if job.HirerID == userID {
		return nil, apperror.Forbidden("You cannot apply to your own job")
	}

	// 3. Job must still accept applications
	if job.Status != domain.JobStatusOpen {
		return nil, apperror.BadRequest("This job is no longer accepting applications")
	}

	// 4. Check for duplicate application
	exists, err := uc.applicationRepo.CheckExists(ctx, jobID, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("You have already applied to this job")
	}

	// 5. Create application
	app := &domain.Application{
		JobID:        jobID,
		WorkerID:     userID,
		CoverLetter:  strings.TrimSpace(req.CoverLetter),
		ProposedRate: req.ProposedRate,
		Status:       domain.ApplicationStatusPending,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("You have already applied to this job")
		}
		return nil, apperror.Internal(err)
	}

	title := job.Title
	app.JobTitle = &title
	return app, nil
}

// GetMyApplications returns all applications for the current worker
func (uc *applicationUsecase) GetMyApplications(ctx context.Context, userID string) ([]domain.Application, error) {
	apps, err := uc.applicationRepo.GetByWorkerID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return nonNil(apps), nil
}

// Withdraw removes a pending application owned by the worker
func (uc *applicationUsecase) Withdraw(ctx context.Context, userID string, applicationID int64) error {
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return repoError(err, "Application not found")
	}
	if app.WorkerID != userID {
		return apperror.Forbidden("You can only withdraw your own applications")
	}
	if app.Status != domain.ApplicationStatusPending {
		return apperror.BadRequest("Only pending applications can be withdrawn")
	}
	if err := uc.applicationRepo.Delete(ctx, applicationID); err != nil {
		return repoError(err, "Application not found")
	}
	return nil
}

// ListByJobID returns all applications for a job (hirer only, validated by ownership)
func (uc *applicationUsecase) ListByJobID(ctx context.Context, userID string, jobID int64) ([]domain.Application, error) {
	if _, err := uc.ownedJob(ctx, userID, jobID); err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return nonNil(apps), nil
}

// canTransition reports whether an application may move from one status to another.
// Status flow: pending → shortlisted → accepted / rejected, pending → accepted / rejected
func canTransition(from, to string) bool {
	switch from {
	case domain.ApplicationStatusPending:
		return to == domain.ApplicationStatusShortlisted ||
			to == domain.ApplicationStatusAccepted ||
			to == domain.ApplicationStatusRejected
	case domain.ApplicationStatusShortlisted:
		return to == domain.ApplicationStatusAccepted ||
			to == domain.ApplicationStatusRejected
	default:
		return false
	}
}

// UpdateStatus lets the job owner shortlist, accept or reject an application
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, userID string, applicationID int64, status string) (*domain.Application, error) {
	switch status {
	case domain.ApplicationStatusShortlisted, domain.ApplicationStatusAccepted, domain.ApplicationStatusRejected:
	default:
		return nil, apperror.BadRequest("Status must be one of: shortlisted, accepted, rejected")
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, repoError(err, "Application not found")
	}
	job, err := uc.ownedJob(ctx, userID, app.JobID)
	if err != nil {
		return nil, err
	}
	if !canTransition(app.Status, status) {
		return nil, apperror.BadRequest("Cannot change application status from " + app.Status + " to " + status)
	}

	if status == domain.ApplicationStatusAccepted {
		if job.Status != domain.JobStatusOpen {
			return nil, apperror.BadRequest("A worker has already been hired for this job")
		}
		if err := uc.applicationRepo.Accept(ctx, app); err != nil {
			return nil, repoError(err, "Application not found")
		}
	} else {
		if err := uc.applicationRepo.UpdateStatus(ctx, applicationID, status); err != nil {
			return nil, repoError(err, "Application not found")
		}
	}
	app.Status = status

	uc.notifyStatus(app, job)
	return app, nil
}

func (uc *applicationUsecase) notifyStatus(app *domain.Application, job *domain.Job) {
	if uc.notifier == nil || app.WorkerEmail == nil {
		return
	}
	name := ""
	if app.WorkerName != nil {
		name = *app.WorkerName
	}
	err := uc.notifier.SendApplicationStatus(*app.WorkerEmail, email.ApplicationStatusEmailData{
		FullName: name,
		JobTitle: job.Title,
		Status:   app.Status,
	})
	if err != nil {
		logger.Log.Warn("application status email not sent", "application_id", app.ID, "error", err)
	}
}

func (uc *applicationUsecase) ownedJob(ctx context.Context, userID string, jobID int64) (*domain.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, repoError(err, "Job not found")
	}
	if job.HirerID != userID {
		return nil, apperror.Forbidden("You do not own this job")
	}
	return job, nil
}
