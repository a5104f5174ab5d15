package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"
	"go-marketplace-backend/pkg/security"
)

type portfolioUsecase struct {
	portfolio domain.PortfolioRepository
	scorer    *profileScorer
	uploader  *MediaUploader
}

func NewPortfolioUsecase(deps WorkerDeps, uploader *MediaUploader) domain.PortfolioUsecase {
	return &portfolioUsecase{
		portfolio: deps.Portfolio,
		scorer:    newProfileScorer(deps),
		uploader:  uploader,
	}
}

func (u *portfolioUsecase) ListItems(ctx context.Context, workerID string) ([]domain.PortfolioItem, error) {
	items, err := u.portfolio.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return nonNil(items), nil
}

func (u *portfolioUsecase) CreateItem(ctx context.Context, userID string, req domain.PortfolioItemRequest) (*domain.PortfolioItem, error) {
	count, err := u.portfolio.CountByWorker(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if count >= domain.MaxPortfolioItems {
		return nil, apperror.BadRequest(fmt.Sprintf("Portfolio is limited to %d items", domain.MaxPortfolioItems))
	}

	item := &domain.PortfolioItem{
		WorkerID:    userID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		ProjectURL:  req.ProjectURL,
		Tags:        dedupeStrings(req.Tags),
		SortOrder:   req.SortOrder,
	}
	if err := u.portfolio.Create(ctx, item); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := u.scorer.Refresh(ctx, userID); err != nil {
		return nil, err
	}
	return item, nil
}

func (u *portfolioUsecase) ownedItem(ctx context.Context, userID string, id int64) (*domain.PortfolioItem, error) {
	item, err := u.portfolio.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Portfolio item not found")
	}
	if item.WorkerID != userID {
		return nil, apperror.Forbidden("You can only modify your own portfolio")
	}
	return item, nil
}

func (u *portfolioUsecase) UpdateItem(ctx context.Context, userID string, id int64, req domain.PortfolioItemRequest) (*domain.PortfolioItem, error) {
	item, err := u.ownedItem(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	item.Title = strings.TrimSpace(req.Title)
	item.Description = strings.TrimSpace(req.Description)
	item.ProjectURL = req.ProjectURL
	item.Tags = dedupeStrings(req.Tags)
	item.SortOrder = req.SortOrder
	item.UpdatedAt = time.Now().UTC()

	if err := u.portfolio.Update(ctx, item); err != nil {
		return nil, repoError(err, "Portfolio item not found")
	}
	u.scorer.invalidate(ctx)
	return item, nil
}

func (u *portfolioUsecase) DeleteItem(ctx context.Context, userID string, id int64) error {
	item, err := u.ownedItem(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := u.portfolio.Delete(ctx, id); err != nil {
		return repoError(err, "Portfolio item not found")
	}
	u.uploader.remove(ctx, keyFromURL(item.MediaURL, "portfolio/"), keyFromURL(item.ThumbnailURL, "portfolio/"))
	return u.scorer.Refresh(ctx, userID)
}

// UploadMedia attaches an image or PDF to a portfolio item, replacing any previous file
func (u *portfolioUsecase) UploadMedia(ctx context.Context, userID string, id int64, upload domain.MediaUpload) (*domain.PortfolioItem, error) {
	item, err := u.ownedItem(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf("portfolio/%s/%d", userID, id)
	stored, err := u.uploader.save(ctx, userID, prefix, security.PurposePortfolioMedia, upload, true)
	if err != nil {
		return nil, err
	}

	oldMedia, oldThumb := keyFromURL(item.MediaURL, "portfolio/"), keyFromURL(item.ThumbnailURL, "portfolio/")

	item.MediaURL = &stored.URL
	item.ThumbnailURL = nil
	if stored.ThumbnailURL != "" {
		item.ThumbnailURL = &stored.ThumbnailURL
	}
	if err := u.portfolio.SetMedia(ctx, id, item.MediaURL, item.ThumbnailURL); err != nil {
		u.uploader.remove(ctx, stored.Key, stored.ThumbnailKey)
		return nil, repoError(err, "Portfolio item not found")
	}
	u.uploader.remove(ctx, oldMedia, oldThumb)
	u.scorer.invalidate(ctx)
	return item, nil
}

func (u *portfolioUsecase) ListCertificates(ctx context.Context, workerID string) ([]domain.Certificate, error) {
	certs, err := u.portfolio.ListCertificates(ctx, workerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return nonNil(certs), nil
}

func certificateFromRequest(req domain.CertificateRequest) (*domain.Certificate, error) {
	issued, err := parseDate("issued_at", req.IssuedAt)
	if err != nil {
		return nil, err
	}
	expires, err := parseOptionalDate("expires_at", req.ExpiresAt)
	if err != nil {
		return nil, err
	}
	if expires != nil && expires.Before(issued) {
		return nil, apperror.BadRequest("expires_at must not be before issued_at")
	}
	return &domain.Certificate{
		Name:          strings.TrimSpace(req.Name),
		Issuer:        strings.TrimSpace(req.Issuer),
		IssuedAt:      issued,
		ExpiresAt:     expires,
		CredentialURL: req.CredentialURL,
	}, nil
}

func (u *portfolioUsecase) CreateCertificate(ctx context.Context, userID string, req domain.CertificateRequest) (*domain.Certificate, error) {
	cert, err := certificateFromRequest(req)
	if err != nil {
		return nil, err
	}
	cert.WorkerID = userID
	if err := u.portfolio.CreateCertificate(ctx, cert); err != nil {
		return nil, apperror.Internal(err)
	}
	u.scorer.invalidate(ctx)
	return cert, nil
}

func (u *portfolioUsecase) ownedCertificate(ctx context.Context, userID string, id int64) (*domain.Certificate, error) {
	cert, err := u.portfolio.GetCertificate(ctx, id)
	if err != nil {
		return nil, repoError(err, "Certificate not found")
	}
	if cert.WorkerID != userID {
		return nil, apperror.Forbidden("You can only modify your own certificates")
	}
	return cert, nil
}

func (u *portfolioUsecase) UpdateCertificate(ctx context.Context, userID string, id int64, req domain.CertificateRequest) (*domain.Certificate, error) {
	existing, err := u.ownedCertificate(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	cert, err := certificateFromRequest(req)
	if err != nil {
		return nil, err
	}
	cert.ID = existing.ID
	cert.WorkerID = existing.WorkerID
	cert.CreatedAt = existing.CreatedAt
	if err := u.portfolio.UpdateCertificate(ctx, cert); err != nil {
		return nil, repoError(err, "Certificate not found")
	}
	return cert, nil
}

func (u *portfolioUsecase) DeleteCertificate(ctx context.Context, userID string, id int64) error {
	if _, err := u.ownedCertificate(ctx, userID, id); err != nil {
		return err
	}
	if err := u.portfolio.DeleteCertificate(ctx, id); err != nil {
		return repoError(err, "Certificate not found")
	}
	return nil
}
