package v1

import (
	"net/http"

	"go-marketplace-backend/internal/delivery/http/response"
	"go-marketplace-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type WorkerHandler struct {
	workerUC domain.WorkerUsecase
}

func NewWorkerHandler(public, worker *gin.RouterGroup, workerUC domain.WorkerUsecase) {
	handler := &WorkerHandler{workerUC: workerUC}

	publicWorkers := public.Group("/workers")
	{
		publicWorkers.GET("", handler.Search)
		publicWorkers.GET("/:id", handler.GetProfile)
	}

	me := worker.Group("/workers/me")
	{
		me.GET("/profile", handler.GetMyProfile)
		me.PUT("/profile", handler.UpdateMyProfile)
		me.POST("/work-history", handler.AddWorkHistory)
		me.PUT("/work-history/:itemId", handler.UpdateWorkHistory)
		me.DELETE("/work-history/:itemId", handler.DeleteWorkHistory)
	}
}

// Search godoc
// @Summary      Search workers
// @Description  Filterable, ranked worker search. Results are cached briefly.
// @Tags         workers
// @Produce      json
// @Param        q             query     string   false  "Text in headline, bio or name"
// @Param        skill         query     string   false  "Skill name"
// @Param        category      query     int      false  "Skill category ID"
// @Param        location      query     string   false  "Location"
// @Param        min_rate      query     number   false  "Minimum hourly rate"
// @Param        max_rate      query     number   false  "Maximum hourly rate"
// @Param        min_rating    query     number   false  "Minimum rating"
// @Param        availability  query     string   false  "available, busy or unavailable"
// @Param        verified      query     boolean  false  "Only verified workers"
// @Param        sort          query     string   false  "rank, rating, rate_asc, rate_desc or newest"
// @Param        page          query     int      false  "Page number"
// @Param        pageSize      query     int      false  "Items per page"
// @Success      200           {object}  response.Response
// @Failure      400           {object}  response.Response
// @Router       /workers [get]
func (h *WorkerHandler) Search(c *gin.Context) {
	var filter domain.WorkerFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(bindError(err))
		return
	}

	result, err := h.workerUC.Search(c, filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Workers retrieved", result)
}

// GetProfile godoc
// @Summary      Public worker profile
// @Description  Profile with skills, portfolio, certificates and recent reviews
// @Tags         workers
// @Produce      json
// @Param        id   path      string  true  "Worker user ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /workers/{id} [get]
func (h *WorkerHandler) GetProfile(c *gin.Context) {
	detail, err := h.workerUC.GetPublicProfile(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Worker profile", detail)
}

// GetMyProfile godoc
// @Summary      Own worker profile
// @Tags         workers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /workers/me/profile [get]
func (h *WorkerHandler) GetMyProfile(c *gin.Context) {
	profile, err := h.workerUC.GetMyProfile(c, currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Worker profile", profile)
}

// UpdateMyProfile godoc
// @Summary      Update own worker profile
// @Description  Partial update; profile completeness is recomputed
// @Tags         workers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.UpdateWorkerProfileRequest  true  "Fields to update"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /workers/me/profile [put]
func (h *WorkerHandler) UpdateMyProfile(c *gin.Context) {
	var req domain.UpdateWorkerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	profile, err := h.workerUC.UpdateMyProfile(c, currentUserID(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", profile)
}

// AddWorkHistory godoc
// @Summary      Add a work history entry
// @Tags         workers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.WorkHistoryRequest  true  "Entry"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /workers/me/work-history [post]
func (h *WorkerHandler) AddWorkHistory(c *gin.Context) {
	var req domain.WorkHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	item, err := h.workerUC.AddWorkHistory(c, currentUserID(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Work history added", item)
}

// UpdateWorkHistory godoc
// @Summary      Update a work history entry
// @Tags         workers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        itemId  path      int                        true  "Entry ID"
// @Param        body    body      domain.WorkHistoryRequest  true  "Entry"
// @Success      200     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /workers/me/work-history/{itemId} [put]
func (h *WorkerHandler) UpdateWorkHistory(c *gin.Context) {
	id, err := paramID(c, "itemId")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.WorkHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	item, err := h.workerUC.UpdateWorkHistory(c, currentUserID(c), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Work history updated", item)
}

// DeleteWorkHistory godoc
// @Summary      Delete a work history entry
// @Tags         workers
// @Produce      json
// @Security     BearerAuth
// @Param        itemId  path      int  true  "Entry ID"
// @Success      200     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /workers/me/work-history/{itemId} [delete]
func (h *WorkerHandler) DeleteWorkHistory(c *gin.Context) {
	id, err := paramID(c, "itemId")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.workerUC.DeleteWorkHistory(c, currentUserID(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Work history deleted", nil)
}
