package v1

import (
	"net/http"

	"go-marketplace-backend/internal/delivery/http/response"
	"go-marketplace-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availabilityUC domain.AvailabilityUsecase
}

func NewAvailabilityHandler(public, worker *gin.RouterGroup, availabilityUC domain.AvailabilityUsecase) {
	handler := &AvailabilityHandler{availabilityUC: availabilityUC}

	public.GET("/workers/:id/availability", handler.List)
	worker.PUT("/workers/me/availability", handler.Replace)
}

// List godoc
// @Summary      Weekly availability of a worker
// @Tags         availability
// @Produce      json
// @Param        id   path      string  true  "Worker user ID"
// @Success      200  {object}  response.Response
// @Router       /workers/{id}/availability [get]
func (h *AvailabilityHandler) List(c *gin.Context) {
	slots, err := h.availabilityUC.List(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Availability", slots)
}

// Replace godoc
// @Summary      Replace own weekly availability
// @Description  The whole set is swapped atomically; overlapping slots on the same day are rejected
// @Tags         availability
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.ReplaceAvailabilityRequest  true  "Slots"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /workers/me/availability [put]
func (h *AvailabilityHandler) Replace(c *gin.Context) {
	var req domain.ReplaceAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	slots, err := h.availabilityUC.Replace(c, currentUserID(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Availability updated", slots)
}
