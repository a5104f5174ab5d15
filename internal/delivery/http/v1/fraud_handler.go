package v1

import (
	"net/http"

	"go-marketplace-backend/internal/delivery/http/response"
	"go-marketplace-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type FraudHandler struct {
	fraudUC domain.FraudUsecase
}

func NewFraudHandler(admin *gin.RouterGroup, fraudUC domain.FraudUsecase) {
	handler := &FraudHandler{fraudUC: fraudUC}

	fraud := admin.Group("/fraud")
	{
		fraud.POST("/scan", handler.Scan)
		fraud.GET("/alerts", handler.ListAlerts)
		fraud.GET("/alerts/:id", handler.GetAlert)
		fraud.PATCH("/alerts/:id", handler.UpdateAlert)
		fraud.GET("/stats", handler.Stats)
	}
}

// Scan godoc
// @Summary      Run fraud detectors
// @Description  Raises alerts for new findings; subjects with an active alert of the same type are skipped
// @Tags         fraud
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /admin/fraud/scan [post]
func (h *FraudHandler) Scan(c *gin.Context) {
	result, err := h.fraudUC.Scan(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Fraud scan complete", result)
}

// ListAlerts godoc
// @Summary      List fraud alerts
// @Tags         fraud
// @Produce      json
// @Security     BearerAuth
// @Param        type      query     string  false  "Alert type"
// @Param        severity  query     string  false  "low, medium, high or critical"
// @Param        status    query     string  false  "open, investigating, resolved or dismissed"
// @Param        page      query     int     false  "Page number"
// @Param        pageSize  query     int     false  "Items per page"
// @Success      200       {object}  response.Response
// @Router       /admin/fraud/alerts [get]
func (h *FraudHandler) ListAlerts(c *gin.Context) {
	var filter domain.FraudAlertFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(bindError(err))
		return
	}

	result, err := h.fraudUC.ListAlerts(c, filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Fraud alerts", result)
}

// GetAlert godoc
// @Summary      Fraud alert details
// @Tags         fraud
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Alert ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/fraud/alerts/{id} [get]
func (h *FraudHandler) GetAlert(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	alert, err := h.fraudUC.GetAlert(c, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Fraud alert", alert)
}

// UpdateAlert godoc
// @Summary      Move a fraud alert through its workflow
// @Description  open to investigating, resolved or dismissed; investigating to resolved or dismissed
// @Tags         fraud
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                             true  "Alert ID"
// @Param        body  body      domain.UpdateFraudAlertRequest  true  "Status and note"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /admin/fraud/alerts/{id} [patch]
func (h *FraudHandler) UpdateAlert(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.UpdateFraudAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	alert, err := h.fraudUC.UpdateAlert(c, id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Fraud alert updated", alert)
}

// Stats godoc
// @Summary      Fraud alert statistics
// @Description  Counts by status, severity and type plus daily counts for the last 7 days
// @Tags         fraud
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /admin/fraud/stats [get]
func (h *FraudHandler) Stats(c *gin.Context) {
	stats, err := h.fraudUC.Stats(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Fraud statistics", stats)
}
