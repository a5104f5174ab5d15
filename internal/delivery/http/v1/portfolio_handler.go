package v1

import (
	"net/http"

	"go-marketplace-backend/internal/delivery/http/response"
	"go-marketplace-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	portfolioUC    domain.PortfolioUsecase
	maxUploadBytes int64
}

func NewPortfolioHandler(public, worker *gin.RouterGroup, portfolioUC domain.PortfolioUsecase, maxUploadBytes int64) {
	handler := &PortfolioHandler{portfolioUC: portfolioUC, maxUploadBytes: maxUploadBytes}

	public.GET("/workers/:id/portfolio", handler.ListItems)
	public.GET("/workers/:id/certificates", handler.ListCertificates)

	items := worker.Group("/workers/me/portfolio")
	{
		items.POST("", handler.CreateItem)
		items.PUT("/:itemId", handler.UpdateItem)
		items.DELETE("/:itemId", handler.DeleteItem)
		items.POST("/:itemId/media", handler.UploadMedia)
	}

	certs := worker.Group("/workers/me/certificates")
	{
		certs.GET("", handler.ListMyCertificates)
		certs.POST("", handler.CreateCertificate)
		certs.PUT("/:certId", handler.UpdateCertificate)
		certs.DELETE("/:certId", handler.DeleteCertificate)
	}
}

// ListItems godoc
// @Summary      List a worker's portfolio
// @Tags         portfolio
// @Produce      json
// @Param        id   path      string  true  "Worker user ID"
// @Success      200  {object}  response.Response
// @Router       /workers/{id}/portfolio [get]
func (h *PortfolioHandler) ListItems(c *gin.Context) {
	items, err := h.portfolioUC.ListItems(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Portfolio items", items)
}

// CreateItem godoc
// @Summary      Add a portfolio item
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.PortfolioItemRequest  true  "Item"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /workers/me/portfolio [post]
func (h *PortfolioHandler) CreateItem(c *gin.Context) {
	var req domain.PortfolioItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	item, err := h.portfolioUC.CreateItem(c, currentUserID(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Portfolio item created", item)
}

// UpdateItem godoc
// @Summary      Update a portfolio item
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        itemId  path      int                          true  "Item ID"
// @Param        body    body      domain.PortfolioItemRequest  true  "Item"
// @Success      200     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /workers/me/portfolio/{itemId} [put]
func (h *PortfolioHandler) UpdateItem(c *gin.Context) {
	id, err := paramID(c, "itemId")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.PortfolioItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	item, err := h.portfolioUC.UpdateItem(c, currentUserID(c), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Portfolio item updated", item)
}

// DeleteItem godoc
// @Summary      Delete a portfolio item
// @Tags         portfolio
// @Produce      json
// @Security     BearerAuth
// @Param        itemId  path      int  true  "Item ID"
// @Success      200     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /workers/me/portfolio/{itemId} [delete]
func (h *PortfolioHandler) DeleteItem(c *gin.Context) {
	id, err := paramID(c, "itemId")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.portfolioUC.DeleteItem(c, currentUserID(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Portfolio item deleted", nil)
}

// UploadMedia godoc
// @Summary      Upload portfolio media
// @Description  Validates the image, stores it and a 400px JPEG thumbnail
// @Tags         portfolio
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        itemId  path      int   true  "Item ID"
// @Param        file    formData  file  true  "Image file"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      429     {object}  response.Response
// @Router       /workers/me/portfolio/{itemId}/media [post]
func (h *PortfolioHandler) UploadMedia(c *gin.Context) {
	id, err := paramID(c, "itemId")
	if err != nil {
		c.Error(err)
		return
	}
	upload, err := readUpload(c, "file", h.maxUploadBytes)
	if err != nil {
		c.Error(err)
		return
	}
	item, err := h.portfolioUC.UploadMedia(c, currentUserID(c), id, upload)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Media uploaded", item)
}

// ListCertificates godoc
// @Summary      List a worker's certificates
// @Tags         portfolio
// @Produce      json
// @Param        id   path      string  true  "Worker user ID"
// @Success      200  {object}  response.Response
// @Router       /workers/{id}/certificates [get]
func (h *PortfolioHandler) ListCertificates(c *gin.Context) {
	certs, err := h.portfolioUC.ListCertificates(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Certificates", certs)
}

// ListMyCertificates godoc
// @Summary      List own certificates
// @Tags         portfolio
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /workers/me/certificates [get]
func (h *PortfolioHandler) ListMyCertificates(c *gin.Context) {
	certs, err := h.portfolioUC.ListCertificates(c, currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Certificates", certs)
}

// CreateCertificate godoc
// @Summary      Add a certificate
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.CertificateRequest  true  "Certificate"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /workers/me/certificates [post]
func (h *PortfolioHandler) CreateCertificate(c *gin.Context) {
	var req domain.CertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	cert, err := h.portfolioUC.CreateCertificate(c, currentUserID(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Certificate created", cert)
}

// UpdateCertificate godoc
// @Summary      Update a certificate
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        certId  path      int                        true  "Certificate ID"
// @Param        body    body      domain.CertificateRequest  true  "Certificate"
// @Success      200     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /workers/me/certificates/{certId} [put]
func (h *PortfolioHandler) UpdateCertificate(c *gin.Context) {
	id, err := paramID(c, "certId")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.CertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	cert, err := h.portfolioUC.UpdateCertificate(c, currentUserID(c), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Certificate updated", cert)
}

// DeleteCertificate godoc
// @Summary      Delete a certificate
// @Tags         portfolio
// @Produce      json
// @Security     BearerAuth
// @Param        certId  path      int  true  "Certificate ID"
// @Success      200     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /workers/me/certificates/{certId} [delete]
func (h *PortfolioHandler) DeleteCertificate(c *gin.Context) {
	id, err := paramID(c, "certId")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.portfolioUC.DeleteCertificate(c, currentUserID(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Certificate deleted", nil)
}
