package usecase

import (
	"context"
	"strconv"
	"time"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"
)

type earningUsecase struct {
	repo  domain.EarningRepository
	audit *Auditor
	now   func() time.Time
}

func NewEarningUsecase(repo domain.EarningRepository, audit *Auditor) domain.EarningUsecase {
	return &earningUsecase{repo: repo, audit: audit, now: time.Now}
}

func (u *earningUsecase) List(ctx context.Context, userID string, page, pageSize int) (*domain.PaginatedResult[domain.Earning], error) {
	page, pageSize = normalizePage(page, pageSize)
	earnings, total, err := u.repo.ListByWorker(ctx, userID, pageSize, offsetFor(page, pageSize))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return newPage(earnings, total, page, pageSize), nil
}

// Summary totals the worker's earnings, including the trailing 30 days
func (u *earningUsecase) Summary(ctx context.Context, userID string) (*domain.EarningsSummary, error) {
	summary, err := u.repo.Summary(ctx, userID, u.now().UTC().AddDate(0, 0, -30))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if summary.Currency == "" {
		summary.Currency = defaultCurrency
	}
	return summary, nil
}

// MarkPaid settles a pending earning (admin only)
func (u *earningUsecase) MarkPaid(ctx context.Context, id int64) (*domain.Earning, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	earning, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Earning not found")
	}
	if earning.Status == domain.EarningStatusPaid {
		return nil, apperror.BadRequest("Earning is already paid")
	}

	paidAt := u.now().UTC()
	if err := u.repo.MarkPaid(ctx, id, paidAt); err != nil {
		return nil, repoError(err, "Earning not found")
	}
	earning.Status = domain.EarningStatusPaid
	earning.PaidAt = &paidAt

	u.audit.Record(ctx, "earning.mark_paid", "earning", strconv.FormatInt(id, 10), map[string]interface{}{
		"worker_id": earning.WorkerID,
		"amount":    earning.Amount,
	})
	return earning, nil
}
