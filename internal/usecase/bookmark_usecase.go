package usecase

import (
	"context"
	"errors"
	"strings"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"
)

type bookmarkUsecase struct {
	bookmarkRepo domain.BookmarkRepository
	workerRepo   domain.WorkerRepository
}

func NewBookmarkUsecase(bookmarkRepo domain.BookmarkRepository, workerRepo domain.WorkerRepository) domain.BookmarkUsecase {
	return &bookmarkUsecase{bookmarkRepo: bookmarkRepo, workerRepo: workerRepo}
}

// Add saves a worker to the hirer's shortlist
func (u *bookmarkUsecase) Add(ctx context.Context, userID string, req domain.BookmarkRequest) (*domain.Bookmark, error) {
	profile, err := u.workerRepo.GetProfile(ctx, req.WorkerID)
	if err != nil {
		return nil, repoError(err, "Worker not found")
	}
	applyProfileDefaults(profile)

	bookmark := &domain.Bookmark{
		HirerID:  userID,
		WorkerID: req.WorkerID,
		Note:     strings.TrimSpace(req.Note),
		Worker:   profile,
	}
	if err := u.bookmarkRepo.Create(ctx, bookmark); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Worker is already bookmarked")
		}
		return nil, apperror.Internal(err)
	}
	return bookmark, nil
}

func (u *bookmarkUsecase) Remove(ctx context.Context, userID, workerID string) error {
	if err := u.bookmarkRepo.Delete(ctx, userID, workerID); err != nil {
		return repoError(err, "Bookmark not found")
	}
	return nil
}

func (u *bookmarkUsecase) List(ctx context.Context, userID string, page, pageSize int) (*domain.PaginatedResult[domain.Bookmark], error) {
	page, pageSize = normalizePage(page, pageSize)
	bookmarks, total, err := u.bookmarkRepo.ListByHirer(ctx, userID, pageSize, offsetFor(page, pageSize))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range bookmarks {
		if bookmarks[i].Worker != nil {
			applyProfileDefaults(bookmarks[i].Worker)
		}
	}
	return newPage(bookmarks, total, page, pageSize), nil
}
