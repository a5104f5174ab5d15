package usecase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/internal/usecase"
	"go-marketplace-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pdfBytes = []byte("%PDF-1.7\n1 0 obj << /Type /Catalog >> endobj\n")

func TestCreatePortfolioItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse a new item once the portfolio holds the maximum", func(t *testing.T) {
		portfolio := new(MockPortfolioRepo)
		portfolio.On("CountByWorker", mock.Anything, "w1").Return(domain.MaxPortfolioItems, nil)

		uc := usecase.NewPortfolioUsecase(usecase.WorkerDeps{Portfolio: portfolio}, nil)
		_, err := uc.CreateItem(ctx, "w1", domain.PortfolioItemRequest{Title: "Kitchen"})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
		assert.Contains(t, err.Error(), "20")
		portfolio.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should accept the last free slot and refresh completeness", func(t *testing.T) {
		portfolio := new(MockPortfolioRepo)
		workers := new(MockWorkerRepo)
		skills := new(MockSkillRepo)
		portfolio.On("CountByWorker", mock.Anything, "w1").Return(domain.MaxPortfolioItems-1, nil).Once()
		portfolio.On("Create", mock.Anything, mock.MatchedBy(func(i *domain.PortfolioItem) bool {
			return i.WorkerID == "w1" && i.Title == "Kitchen" && len(i.Tags) == 1
		})).Return(nil)
		workers.On("GetProfile", mock.Anything, "w1").Return(&domain.WorkerProfile{UserID: "w1"}, nil)
		skills.On("CountByWorker", mock.Anything, "w1").Return(0, nil)
		portfolio.On("CountByWorker", mock.Anything, "w1").Return(domain.MaxPortfolioItems, nil)
		workers.On("SetCompleteness", mock.Anything, "w1", 13).Return(nil)

		uc := usecase.NewPortfolioUsecase(usecase.WorkerDeps{Workers: workers, Skills: skills, Portfolio: portfolio}, nil)
		item, err := uc.CreateItem(ctx, "w1", domain.PortfolioItemRequest{Title: " Kitchen ", Tags: []string{"tiles", "Tiles"}})

		require.NoError(t, err)
		assert.Equal(t, "Kitchen", item.Title)
		workers.AssertExpectations(t)
	})
}

func TestUploadPortfolioMedia(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return 503 when no object store is configured", func(t *testing.T) {
		portfolio := new(MockPortfolioRepo)
		portfolio.On("GetByID", mock.Anything, int64(3)).Return(&domain.PortfolioItem{ID: 3, WorkerID: "w1"}, nil)

		uc := usecase.NewPortfolioUsecase(usecase.WorkerDeps{Portfolio: portfolio}, nil)
		_, err := uc.UploadMedia(ctx, "w1", 3, domain.MediaUpload{Filename: "plan.pdf", Data: pdfBytes})

		assert.Equal(t, http.StatusServiceUnavailable, apperror.StatusOf(err))
	})

	t.Run("Should reject a file whose content does not match its extension", func(t *testing.T) {
		portfolio := new(MockPortfolioRepo)
		store := new(MockObjectStore)
		portfolio.On("GetByID", mock.Anything, int64(3)).Return(&domain.PortfolioItem{ID: 3, WorkerID: "w1"}, nil)

		uploader := usecase.NewMediaUploader(store, nil, nil, 1<<20)
		uc := usecase.NewPortfolioUsecase(usecase.WorkerDeps{Portfolio: portfolio}, uploader)
		_, err := uc.UploadMedia(ctx, "w1", 3, domain.MediaUpload{Filename: "plan.png", Data: pdfBytes})

		assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should store the file and delete the one it replaces", func(t *testing.T) {
		portfolio := new(MockPortfolioRepo)
		store := new(MockObjectStore)
		old := "https://cdn.example.com/portfolio/w1/3/old.pdf"
		portfolio.On("GetByID", mock.Anything, int64(3)).Return(&domain.PortfolioItem{ID: 3, WorkerID: "w1", MediaURL: &old}, nil)
		store.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "portfolio/w1/3/") && strings.HasSuffix(key, ".pdf")
		}), pdfBytes, "application/pdf").Return("https://cdn.example.com/portfolio/w1/3/new.pdf", nil)
		portfolio.On("SetMedia", mock.Anything, int64(3), mock.Anything, mock.Anything).Return(nil)
		store.On("Delete", mock.Anything, "portfolio/w1/3/old.pdf").Return(nil)

		uploader := usecase.NewMediaUploader(store, nil, nil, 1<<20)
		uc := usecase.NewPortfolioUsecase(usecase.WorkerDeps{Portfolio: portfolio}, uploader)
		item, err := uc.UploadMedia(ctx, "w1", 3, domain.MediaUpload{Filename: "plan.pdf", Data: pdfBytes})

		require.NoError(t, err)
		require.NotNil(t, item.MediaURL)
		assert.Equal(t, "https://cdn.example.com/portfolio/w1/3/new.pdf", *item.MediaURL)
		assert.Nil(t, item.ThumbnailURL)
		store.AssertExpectations(t)
	})
}

func TestCreateCertificate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject an expiry before the issue date", func(t *testing.T) {
		portfolio := new(MockPortfolioRepo)

		uc := usecase.NewPortfolioUsecase(usecase.WorkerDeps{Portfolio: portfolio}, nil)
		_, err := uc.CreateCertificate(ctx, "w1", domain.CertificateRequest{
			Name: "Gas Safe", IssuedAt: "2024-06-01", ExpiresAt: "2024-05-31",
		})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
		portfolio.AssertNotCalled(t, "CreateCertificate", mock.Anything, mock.Anything)
	})

	t.Run("Should reject a malformed issue date", func(t *testing.T) {
		uc := usecase.NewPortfolioUsecase(usecase.WorkerDeps{Portfolio: new(MockPortfolioRepo)}, nil)
		_, err := uc.CreateCertificate(ctx, "w1", domain.CertificateRequest{Name: "Gas Safe", IssuedAt: "01/06/2024"})

		assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
	})

	t.Run("Should store a certificate without an expiry", func(t *testing.T) {
		portfolio := new(MockPortfolioRepo)
		portfolio.On("CreateCertificate", mock.Anything, mock.MatchedBy(func(c *domain.Certificate) bool {
			return c.WorkerID == "w1" && c.ExpiresAt == nil && c.IssuedAt.Year() == 2024
		})).Return(nil)

		uc := usecase.NewPortfolioUsecase(usecase.WorkerDeps{Portfolio: portfolio}, nil)
		cert, err := uc.CreateCertificate(ctx, "w1", domain.CertificateRequest{Name: " Gas Safe ", IssuedAt: "2024-06-01"})

		require.NoError(t, err)
		assert.Equal(t, "Gas Safe", cert.Name)
		portfolio.AssertExpectations(t)
	})
}

func TestDeletePortfolioItem(t *testing.T) {
	t.Run("Should return 403 for another worker's item", func(t *testing.T) {
		portfolio := new(MockPortfolioRepo)
		portfolio.On("GetByID", mock.Anything, int64(3)).Return(&domain.PortfolioItem{ID: 3, WorkerID: "w2"}, nil)

		uc := usecase.NewPortfolioUsecase(usecase.WorkerDeps{Portfolio: portfolio}, nil)
		err := uc.DeleteItem(context.Background(), "w1", 3)

		assert.Equal(t, http.StatusForbidden, apperror.StatusOf(err))
		portfolio.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
