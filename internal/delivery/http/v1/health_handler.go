package v1

import (
	"context"
	"net/http"

	"go-marketplace-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports the state of each dependency and an overall status
type HealthChecker interface {
	Check(ctx context.Context) map[string]string
	Status(ctx context.Context) string
}

type HealthHandler struct {
	health HealthChecker
}

func NewHealthHandler(public *gin.RouterGroup, health HealthChecker) {
	handler := &HealthHandler{health: health}
	public.GET("/health", handler.Health)
}

// Health godoc
// @Summary      Service health
// @Description  Returns 503 when a required dependency is down
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	if h.health == nil {
		response.Success(c, http.StatusOK, "System operational", gin.H{"status": "healthy"})
		return
	}

	checks := h.health.Check(c)
	status := h.health.Status(c)
	data := gin.H{"status": status, "checks": checks}

	if status == "down" {
		response.Error(c, http.StatusServiceUnavailable, "System unavailable", data)
		return
	}
	response.Success(c, http.StatusOK, "System operational", data)
}
