package v1

import (
	"net/http"

	"go-marketplace-backend/internal/delivery/http/response"
	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	documentUC     domain.DocumentUsecase
	maxUploadBytes int64
}

func NewDocumentHandler(worker, admin *gin.RouterGroup, documentUC domain.DocumentUsecase, maxUploadBytes int64) {
	handler := &DocumentHandler{documentUC: documentUC, maxUploadBytes: maxUploadBytes}

	worker.POST("/workers/me/documents", handler.Upload)
	worker.GET("/workers/me/documents", handler.ListMine)

	admin.GET("/documents", handler.ListForReview)
	admin.PATCH("/documents/:id/review", handler.Review)
}

// Upload godoc
// @Summary      Upload a verification document
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        type  formData  string  true  "id_card, passport, certificate or other"
// @Param        file  formData  file    true  "Document (pdf, jpg, png)"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /workers/me/documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	upload, err := readUpload(c, "file", h.maxUploadBytes)
	if err != nil {
		c.Error(err)
		return
	}
	docType := c.PostForm("type")
	if docType == "" {
		c.Error(apperror.BadRequest("Document type is required"))
		return
	}

	doc, err := h.documentUC.Upload(c, currentUserID(c), docType, upload)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Document uploaded", doc)
}

// ListMine godoc
// @Summary      List own documents
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /workers/me/documents [get]
func (h *DocumentHandler) ListMine(c *gin.Context) {
	docs, err := h.documentUC.ListMine(c, currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Documents retrieved", docs)
}

// ListForReview godoc
// @Summary      Document review queue
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "pending (default), approved or rejected"
// @Param        page      query     int     false  "Page number"
// @Param        pageSize  query     int     false  "Items per page"
// @Success      200       {object}  response.Response
// @Router       /admin/documents [get]
func (h *DocumentHandler) ListForReview(c *gin.Context) {
	page, pageSize := pageQuery(c)
	result, err := h.documentUC.ListForReview(c, c.Query("status"), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Documents retrieved", result)
}

// Review godoc
// @Summary      Approve or reject a document
// @Description  Approving an id_card or passport verifies the worker
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                        true  "Document ID"
// @Param        body  body      domain.DocumentReviewRequest  true  "Decision"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /admin/documents/{id}/review [patch]
func (h *DocumentHandler) Review(c *gin.Context) {
	var req domain.DocumentReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	doc, err := h.documentUC.Review(c, c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Document reviewed", doc)
}
