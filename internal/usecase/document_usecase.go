package usecase

import (
	"context"
	"time"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"
	"go-marketplace-backend/pkg/security"

	"github.com/google/uuid"
)

type documentUsecase struct {
	docRepo    domain.DocumentRepository
	workerRepo domain.WorkerRepository
	uploader   *MediaUploader
	audit      *Auditor
	cache      SearchCache
}

func NewDocumentUsecase(docRepo domain.DocumentRepository, workerRepo domain.WorkerRepository, uploader *MediaUploader, audit *Auditor, cache SearchCache) domain.DocumentUsecase {
	return &documentUsecase{
		docRepo:    docRepo,
		workerRepo: workerRepo,
		uploader:   uploader,
		audit:      audit,
		cache:      cache,
	}
}

func validDocType(t string) bool {
	switch t {
	case domain.DocTypeIDCard, domain.DocTypePassport, domain.DocTypeCertificate, domain.DocTypeOther:
		return true
	}
	return false
}

// Upload stores a verification document for admin review
func (u *documentUsecase) Upload(ctx context.Context, userID, docType string, upload domain.MediaUpload) (*domain.Document, error) {
	if !validDocType(docType) {
		return nil, apperror.BadRequest("Document type must be one of: id_card, passport, certificate, other")
	}

	stored, err := u.uploader.save(ctx, userID, "documents/"+userID, security.PurposeDocument, upload, false)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ID:           uuid.NewString(),
		WorkerID:     userID,
		DocType:      docType,
		FileKey:      stored.Key,
		FileURL:      stored.URL,
		OriginalName: upload.Filename,
		MimeType:     stored.MIME,
		SizeBytes:    stored.Size,
		Status:       domain.DocumentStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	if err := u.docRepo.Create(ctx, doc); err != nil {
		u.uploader.remove(ctx, stored.Key)
		return nil, apperror.Internal(err)
	}
	return doc, nil
}

func (u *documentUsecase) ListMine(ctx context.Context, userID string) ([]domain.Document, error) {
	docs, err := u.docRepo.ListByWorker(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return nonNil(docs), nil
}

func (u *documentUsecase) ListForReview(ctx context.Context, status string, page, pageSize int) (*domain.PaginatedResult[domain.Document], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if status == "" {
		status = domain.DocumentStatusPending
	}
	switch status {
	case domain.DocumentStatusPending, domain.DocumentStatusApproved, domain.DocumentStatusRejected:
	default:
		return nil, apperror.BadRequest("Status must be one of: pending, approved, rejected")
	}

	page, pageSize = normalizePage(page, pageSize)
	docs, total, err := u.docRepo.ListByStatus(ctx, status, pageSize, offsetFor(page, pageSize))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return newPage(docs, total, page, pageSize), nil
}

// Review approves or rejects a pending document. Approving an identity
// document marks the worker as verified.
func (u *documentUsecase) Review(ctx context.Context, id string, req domain.DocumentReviewRequest) (*domain.Document, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	var status string
	switch req.Action {
	case "approve":
		status = domain.DocumentStatusApproved
	case "reject":
		status = domain.DocumentStatusRejected
	default:
		return nil, apperror.BadRequest("Action must be 'approve' or 'reject'")
	}

	doc, err := u.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Document not found")
	}
	if doc.Status != domain.DocumentStatusPending {
		return nil, apperror.BadRequest("Document has already been reviewed")
	}

	reviewer := contextValue(ctx, domain.KeyUserID)
	reason := emptyToNil(req.Reason)
	if err := u.docRepo.Review(ctx, id, status, reviewer, reason); err != nil {
		return nil, repoError(err, "Document not found")
	}

	now := time.Now().UTC()
	doc.Status = status
	doc.ReviewReason = reason
	doc.ReviewedBy = &reviewer
	doc.ReviewedAt = &now

	if status == domain.DocumentStatusApproved && (doc.DocType == domain.DocTypeIDCard || doc.DocType == domain.DocTypePassport) {
		if err := u.workerRepo.SetVerified(ctx, doc.WorkerID, true); err != nil {
			return nil, apperror.Internal(err)
		}
		invalidateSearchCache(ctx, u.cache)
	}

	u.audit.Record(ctx, "document."+req.Action, "document", id, map[string]interface{}{
		"worker_id": doc.WorkerID,
		"doc_type":  doc.DocType,
	})
	return doc, nil
}
