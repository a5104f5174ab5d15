package v1

import (
	"net/http"

	"go-marketplace-backend/internal/delivery/http/response"
	"go-marketplace-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

func NewAdminHandler(admin *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	// Dashboard stats
	admin.GET("/stats", handler.GetStats)

	// User management
	admin.GET("/users", handler.ListUsers)
	admin.POST("/users", handler.CreateUser)
	admin.PATCH("/users/:id/role", handler.UpdateRole)
	admin.PATCH("/users/:id/disable", handler.DisableUser)
	admin.DELETE("/users/:id", handler.DeleteUser)

	// Moderation
	admin.GET("/reviews", handler.ListReviews)
	admin.PATCH("/reviews/:id/hide", handler.HideReview)
	admin.PATCH("/jobs/:id/cancel", handler.CancelJob)

	// Platform config
	admin.GET("/config", handler.ListConfig)
	admin.PUT("/config/:key", handler.SetConfig)

	// Audit log and exports
	admin.GET("/actions", handler.ListActions)
	admin.GET("/exports/users.xlsx", handler.ExportUsers)
	admin.GET("/exports/fraud-alerts.xlsx", handler.ExportFraudAlerts)

	// Two-factor authentication
	admin.POST("/2fa/setup", handler.SetupTOTP)
	admin.POST("/2fa/confirm", handler.ConfirmTOTP)
}

// GetStats godoc
// @Summary      Get admin dashboard statistics
// @Description  Counts for users, jobs, applications, reviews, documents and fraud alerts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminUC.GetStats(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Dashboard statistics", stats)
}

// ListUsers godoc
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role      query     string  false  "worker, hirer or admin"
// @Param        status    query     string  false  "active or disabled"
// @Param        q         query     string  false  "Email or name"
// @Param        page      query     int     false  "Page number"
// @Param        pageSize  query     int     false  "Items per page"
// @Success      200       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var filter domain.AdminUserFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(bindError(err))
		return
	}

	result, err := h.adminUC.ListUsers(c, filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users retrieved", result)
}

// CreateUser godoc
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.CreateUserRequest  true  "User"
// @Success      201   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /admin/users [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req domain.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	user, err := h.adminUC.CreateUser(c, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "User created", user)
}

// UpdateRole godoc
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "User ID"
// @Param        body  body      domain.UpdateRoleRequest  true  "Role"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /admin/users/{id}/role [patch]
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	var req domain.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	user, err := h.adminUC.UpdateRole(c, c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Role updated", user)
}

// DisableUser godoc
// @Summary      Disable or enable a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "User ID"
// @Param        body  body      domain.DisableUserRequest  true  "Disabled flag"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /admin/users/{id}/disable [patch]
func (h *AdminHandler) DisableUser(c *gin.Context) {
	var req domain.DisableUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	user, err := h.adminUC.DisableUser(c, c.Param("id"), *req.Disabled)
	if err != nil {
		c.Error(err)
		return
	}

	message := "User enabled"
	if *req.Disabled {
		message = "User disabled"
	}
	response.Success(c, http.StatusOK, message, user)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.adminUC.DeleteUser(c, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User deleted", nil)
}

// ListReviews godoc
// @Summary      List reviews for moderation
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        reviewee_id     query     string   false  "Reviewee user ID"
// @Param        include_hidden  query     boolean  false  "Include hidden reviews"
// @Param        max_rating      query     int      false  "Only ratings at or below"
// @Param        page            query     int      false  "Page number"
// @Param        pageSize        query     int      false  "Items per page"
// @Success      200             {object}  response.Response
// @Router       /admin/reviews [get]
func (h *AdminHandler) ListReviews(c *gin.Context) {
	var filter domain.ReviewFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(bindError(err))
		return
	}

	result, err := h.adminUC.ListReviews(c, filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Reviews retrieved", result)
}

// HideReview godoc
// @Summary      Hide a review
// @Description  Hidden reviews no longer count towards the worker's rating
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true  "Review ID"
// @Param        body  body      domain.HideReviewRequest  true  "Reason"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /admin/reviews/{id}/hide [patch]
func (h *AdminHandler) HideReview(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.HideReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	review, err := h.adminUC.HideReview(c, id, req.Reason)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Review hidden", review)
}

// CancelJob godoc
// @Summary      Cancel a job
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /admin/jobs/{id}/cancel [patch]
func (h *AdminHandler) CancelJob(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	job, err := h.adminUC.CancelJob(c, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job cancelled", job)
}

// ListConfig godoc
// @Summary      List platform settings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /admin/config [get]
func (h *AdminHandler) ListConfig(c *gin.Context) {
	entries, err := h.adminUC.ListConfig(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Platform config", entries)
}

// SetConfig godoc
// @Summary      Set a platform setting
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key   path      string                        true  "Setting key"
// @Param        body  body      domain.PlatformConfigRequest  true  "Value"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /admin/config/{key} [put]
func (h *AdminHandler) SetConfig(c *gin.Context) {
	var req domain.PlatformConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	entry, err := h.adminUC.SetConfig(c, c.Param("key"), req.Value)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Setting saved", entry)
}

// ListActions godoc
// @Summary      Admin action log
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        actor_id  query     string  false  "Acting admin ID"
// @Param        action    query     string  false  "Action name"
// @Param        page      query     int     false  "Page number"
// @Param        pageSize  query     int     false  "Items per page"
// @Success      200       {object}  response.Response
// @Router       /admin/actions [get]
func (h *AdminHandler) ListActions(c *gin.Context) {
	var filter domain.AdminActionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(bindError(err))
		return
	}

	result, err := h.adminUC.ListActions(c, filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Admin actions", result)
}

// ExportUsers godoc
// @Summary      Export users as XLSX
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      403  {object}  response.Response
// @Router       /admin/exports/users.xlsx [get]
func (h *AdminHandler) ExportUsers(c *gin.Context) {
	data, err := h.adminUC.ExportUsers(c)
	if err != nil {
		c.Error(err)
		return
	}
	sendXLSX(c, "users.xlsx", data)
}

// ExportFraudAlerts godoc
// @Summary      Export fraud alerts as XLSX
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      403  {object}  response.Response
// @Router       /admin/exports/fraud-alerts.xlsx [get]
func (h *AdminHandler) ExportFraudAlerts(c *gin.Context) {
	data, err := h.adminUC.ExportFraudAlerts(c)
	if err != nil {
		c.Error(err)
		return
	}
	sendXLSX(c, "fraud-alerts.xlsx", data)
}

// SetupTOTP godoc
// @Summary      Start 2FA enrollment
// @Description  Returns a secret and otpauth URL; 2FA stays off until confirmed
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /admin/2fa/setup [post]
func (h *AdminHandler) SetupTOTP(c *gin.Context) {
	setup, err := h.adminUC.SetupTOTP(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Scan the code with your authenticator app", setup)
}

// ConfirmTOTP godoc
// @Summary      Confirm 2FA enrollment
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.TOTPConfirmRequest  true  "Code"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /admin/2fa/confirm [post]
func (h *AdminHandler) ConfirmTOTP(c *gin.Context) {
	var req domain.TOTPConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	if err := h.adminUC.ConfirmTOTP(c, req.Code); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Two-factor authentication enabled", nil)
}
