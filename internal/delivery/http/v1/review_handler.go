package v1

import (
	"net/http"

	"go-marketplace-backend/internal/delivery/http/response"
	"go-marketplace-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewUC domain.ReviewUsecase
}

func NewReviewHandler(public, protected *gin.RouterGroup, reviewUC domain.ReviewUsecase) {
	handler := &ReviewHandler{reviewUC: reviewUC}

	public.GET("/workers/:id/reviews", handler.ListForWorker)

	reviews := protected.Group("/reviews")
	{
		reviews.POST("", handler.Create)
		reviews.PUT("/:id", handler.Update)
		reviews.DELETE("/:id", handler.Delete)
	}
}

// ListForWorker godoc
// @Summary      List a worker's reviews
// @Description  Hidden reviews are excluded
// @Tags         reviews
// @Produce      json
// @Param        id        path      string  true   "Worker user ID"
// @Param        page      query     int     false  "Page number"
// @Param        pageSize  query     int     false  "Items per page"
// @Success      200       {object}  response.Response
// @Router       /workers/{id}/reviews [get]
func (h *ReviewHandler) ListForWorker(c *gin.Context) {
	page, pageSize := pageQuery(c)
	result, err := h.reviewUC.ListForWorker(c, c.Param("id"), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Reviews retrieved", result)
}

// Create godoc
// @Summary      Review the other party of a completed job
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.CreateReviewRequest  true  "Review"
// @Success      201   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	var req domain.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	review, err := h.reviewUC.CreateReview(c, currentUserID(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Review created", review)
}

// Update godoc
// @Summary      Update own review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                         true  "Review ID"
// @Param        body  body      domain.UpdateReviewRequest  true  "Review"
// @Success      200   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /reviews/{id} [put]
func (h *ReviewHandler) Update(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	review, err := h.reviewUC.UpdateReview(c, currentUserID(c), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Review updated", review)
}

// Delete godoc
// @Summary      Delete own review
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Review ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.reviewUC.DeleteReview(c, currentUserID(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Review deleted", nil)
}
