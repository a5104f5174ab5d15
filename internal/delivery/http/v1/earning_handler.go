package v1

import (
	"net/http"

	"go-marketplace-backend/internal/delivery/http/response"
	"go-marketplace-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type EarningHandler struct {
	earningUC domain.EarningUsecase
}

func NewEarningHandler(worker, admin *gin.RouterGroup, earningUC domain.EarningUsecase) {
	handler := &EarningHandler{earningUC: earningUC}

	worker.GET("/workers/me/earnings", handler.List)
	worker.GET("/workers/me/earnings/summary", handler.Summary)
	admin.PATCH("/earnings/:id/paid", handler.MarkPaid)
}

// List godoc
// @Summary      List own earnings
// @Tags         earnings
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int  false  "Page number"
// @Param        pageSize  query     int  false  "Items per page"
// @Success      200       {object}  response.Response
// @Router       /workers/me/earnings [get]
func (h *EarningHandler) List(c *gin.Context) {
	page, pageSize := pageQuery(c)
	result, err := h.earningUC.List(c, currentUserID(c), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Earnings retrieved", result)
}

// Summary godoc
// @Summary      Earnings summary
// @Description  Total, paid, pending and last 30 days
// @Tags         earnings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /workers/me/earnings/summary [get]
func (h *EarningHandler) Summary(c *gin.Context) {
	summary, err := h.earningUC.Summary(c, currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Earnings summary", summary)
}

// MarkPaid godoc
// @Summary      Mark an earning paid
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Earning ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/earnings/{id}/paid [patch]
func (h *EarningHandler) MarkPaid(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	earning, err := h.earningUC.MarkPaid(c, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Earning marked paid", earning)
}
