package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"
)

type jobUsecase struct {
	jobRepo    domain.JobRepository
	skillRepo  domain.SkillRepository
	workerRepo domain.WorkerRepository
	cache      SearchCache
}

func NewJobUsecase(jobRepo domain.JobRepository, skillRepo domain.SkillRepository, workerRepo domain.WorkerRepository, cache SearchCache) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:    jobRepo,
		skillRepo:  skillRepo,
		workerRepo: workerRepo,
		cache:      cache,
	}
}

func (u *jobUsecase) validateRequest(ctx context.Context, req domain.JobRequest) error {
	if req.BudgetMax < req.BudgetMin {
		return apperror.BadRequest("budget_max must be greater than or equal to budget_min")
	}
	if req.CategoryID != nil {
		if _, err := u.skillRepo.GetCategory(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return apperror.BadRequest("Skill category does not exist")
			}
			return apperror.Internal(err)
		}
	}
	return nil
}

// CreateJob posts a new open job for the hirer
func (u *jobUsecase) CreateJob(ctx context.Context, userID string, req domain.JobRequest) (*domain.Job, error) {
	if err := u.validateRequest(ctx, req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job := &domain.Job{
		HirerID:        userID,
		Title:          strings.TrimSpace(req.Title),
		Description:    strings.TrimSpace(req.Description),
		CategoryID:     req.CategoryID,
		RequiredSkills: dedupeStrings(req.RequiredSkills),
		BudgetMin:      req.BudgetMin,
		BudgetMax:      req.BudgetMax,
		Location:       strings.TrimSpace(req.Location),
		Status:         domain.JobStatusOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Job not found")
	}
	return job, nil
}

// ListOpenJobs lists jobs accepting applications
func (u *jobUsecase) ListOpenJobs(ctx context.Context, filter domain.JobFilter) (*domain.PaginatedResult[domain.Job], error) {
	filter.Status = domain.JobStatusOpen
	filter.HirerID = ""
	return u.list(ctx, filter)
}

// ListMyJobs lists every job posted by the hirer, optionally filtered by status
func (u *jobUsecase) ListMyJobs(ctx context.Context, userID string, filter domain.JobFilter) (*domain.PaginatedResult[domain.Job], error) {
	filter.HirerID = userID
	return u.list(ctx, filter)
}

func (u *jobUsecase) list(ctx context.Context, filter domain.JobFilter) (*domain.PaginatedResult[domain.Job], error) {
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)
	jobs, total, err := u.jobRepo.Fetch(ctx, filter, filter.PageSize, offsetFor(filter.Page, filter.PageSize))
	if err != nil {
		return nil, apperror.Internal(errors.New("Failed to fetch jobs: " + err.Error()))
	}
	return newPage(jobs, total, filter.Page, filter.PageSize), nil
}

func (u *jobUsecase) ownedJob(ctx context.Context, userID string, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Job not found")
	}
	if job.HirerID != userID {
		return nil, apperror.Forbidden("You do not own this job")
	}
	return job, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, userID string, id int64, req domain.JobRequest) (*domain.Job, error) {
	job, err := u.ownedJob(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusOpen {
		return nil, apperror.BadRequest("Only open jobs can be edited")
	}
	if err := u.validateRequest(ctx, req); err != nil {
		return nil, err
	}

	job.Title = strings.TrimSpace(req.Title)
	job.Description = strings.TrimSpace(req.Description)
	job.CategoryID = req.CategoryID
	job.RequiredSkills = dedupeStrings(req.RequiredSkills)
	job.BudgetMin = req.BudgetMin
	job.BudgetMax = req.BudgetMax
	job.Location = strings.TrimSpace(req.Location)
	job.UpdatedAt = time.Now().UTC()

	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, repoError(err, "Job not found")
	}
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, userID string, id int64) error {
	job, err := u.ownedJob(ctx, userID, id)
	if err != nil {
		return err
	}
	if job.Status == domain.JobStatusInProgress || job.Status == domain.JobStatusCompleted {
		return apperror.BadRequest("Jobs with a hired worker cannot be deleted")
	}
	if err := u.jobRepo.Delete(ctx, id); err != nil {
		return repoError(err, "Job not found")
	}
	return nil
}

// CompleteJob closes an in-progress job and credits the hired worker
func (u *jobUsecase) CompleteJob(ctx context.Context, userID string, id int64) (*domain.Job, error) {
	job, err := u.ownedJob(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusInProgress || job.HiredWorkerID == nil {
		return nil, apperror.BadRequest("Only jobs in progress can be completed")
	}

	amount := job.BudgetMax
	if job.AgreedAmount != nil {
		amount = *job.AgreedAmount
	}
	currency := defaultCurrency
	if profile, err := u.workerRepo.GetProfile(ctx, *job.HiredWorkerID); err == nil && profile.Currency != "" {
		currency = profile.Currency
	}

	now := time.Now().UTC()
	jobID := job.ID
	earning := &domain.Earning{
		WorkerID:  *job.HiredWorkerID,
		JobID:     &jobID,
		Amount:    amount,
		Currency:  currency,
		Status:    domain.EarningStatusPending,
		CreatedAt: now,
	}
	if err := u.jobRepo.Complete(ctx, id, now, earning); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.BadRequest("Only jobs in progress can be completed")
		}
		return nil, apperror.Internal(err)
	}

	invalidateSearchCache(ctx, u.cache)

	job.Status = domain.JobStatusCompleted
	job.CompletedAt = &now
	job.UpdatedAt = now
	return job, nil
}
