package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"
	"go-marketplace-backend/pkg/logger"
)

type reviewUsecase struct {
	reviewRepo domain.ReviewRepository
	jobRepo    domain.JobRepository
	workerRepo domain.WorkerRepository
	cache      SearchCache
}

func NewReviewUsecase(reviewRepo domain.ReviewRepository, jobRepo domain.JobRepository, workerRepo domain.WorkerRepository, cache SearchCache) domain.ReviewUsecase {
	return &reviewUsecase{
		reviewRepo: reviewRepo,
		jobRepo:    jobRepo,
		workerRepo: workerRepo,
		cache:      cache,
	}
}

// CreateReview records a rating from one party of a completed job about the other
func (u *reviewUsecase) CreateReview(ctx context.Context, userID string, req domain.CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperror.BadRequest("Rating must be between 1 and 5")
	}

	job, err := u.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, repoError(err, "Job not found")
	}
	if job.Status != domain.JobStatusCompleted {
		return nil, apperror.Forbidden("Reviews can only be left for completed jobs")
	}

	var reviewee string
	switch {
	case job.HirerID == userID && job.HiredWorkerID != nil:
		reviewee = *job.HiredWorkerID
	case job.HiredWorkerID != nil && *job.HiredWorkerID == userID:
		reviewee = job.HirerID
	default:
		return nil, apperror.Forbidden("Only the hirer or the hired worker can review this job")
	}

	review := &domain.Review{
		JobID:      job.ID,
		ReviewerID: userID,
		RevieweeID: reviewee,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	}
	if err := u.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("You have already reviewed this job")
		}
		return nil, apperror.Internal(err)
	}

	u.refreshRating(ctx, reviewee)
	return review, nil
}

func (u *reviewUsecase) ownedReview(ctx context.Context, userID string, id int64) (*domain.Review, error) {
	review, err := u.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Review not found")
	}
	if review.ReviewerID != userID {
		return nil, apperror.Forbidden("You can only modify your own reviews")
	}
	return review, nil
}

func (u *reviewUsecase) UpdateReview(ctx context.Context, userID string, id int64, req domain.UpdateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperror.BadRequest("Rating must be between 1 and 5")
	}
	review, err := u.ownedReview(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	review.Rating = req.Rating
	review.Comment = strings.TrimSpace(req.Comment)
	review.UpdatedAt = time.Now().UTC()

	if err := u.reviewRepo.Update(ctx, review); err != nil {
		return nil, repoError(err, "Review not found")
	}
	u.refreshRating(ctx, review.RevieweeID)
	return review, nil
}

func (u *reviewUsecase) DeleteReview(ctx context.Context, userID string, id int64) error {
	review, err := u.ownedReview(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := u.reviewRepo.Delete(ctx, id); err != nil {
		return repoError(err, "Review not found")
	}
	u.refreshRating(ctx, review.RevieweeID)
	return nil
}

// ListForWorker lists visible reviews about a worker, newest first
func (u *reviewUsecase) ListForWorker(ctx context.Context, workerID string, page, pageSize int) (*domain.PaginatedResult[domain.Review], error) {
	page, pageSize = normalizePage(page, pageSize)
	reviews, total, err := u.reviewRepo.Fetch(ctx, domain.ReviewFilter{RevieweeID: workerID}, pageSize, offsetFor(page, pageSize))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return newPage(reviews, total, page, pageSize), nil
}

// refreshRating recomputes the reviewee's aggregate; hirers have no profile and are a no-op
func (u *reviewUsecase) refreshRating(ctx context.Context, revieweeID string) {
	if err := u.workerRepo.RecomputeRating(ctx, revieweeID); err != nil {
		logger.Log.Error("failed to recompute worker rating", "worker_id", revieweeID, "error", err)
		return
	}
	invalidateSearchCache(ctx, u.cache)
}
