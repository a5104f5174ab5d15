package v1

import (
	"net/http"

	"go-marketplace-backend/internal/delivery/http/response"
	"go-marketplace-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type SkillHandler struct {
	skillUC domain.SkillUsecase
}

func NewSkillHandler(public, worker, admin *gin.RouterGroup, skillUC domain.SkillUsecase) {
	handler := &SkillHandler{skillUC: skillUC}

	public.GET("/skills/categories", handler.ListCategories)
	public.GET("/workers/:id/skills", handler.ListWorkerSkills)

	me := worker.Group("/workers/me/skills")
	{
		me.POST("", handler.AddSkill)
		me.PUT("/:skillId", handler.UpdateSkill)
		me.DELETE("/:skillId", handler.DeleteSkill)
		me.POST("/:skillId/assessment", handler.SubmitAssessment)
	}

	categories := admin.Group("/skill-categories")
	{
		categories.POST("", handler.CreateCategory)
		categories.PUT("/:id", handler.UpdateCategory)
		categories.DELETE("/:id", handler.DeleteCategory)
	}
}

// ListCategories godoc
// @Summary      List skill categories
// @Tags         skills
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /skills/categories [get]
func (h *SkillHandler) ListCategories(c *gin.Context) {
	categories, err := h.skillUC.ListCategories(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill categories", categories)
}

// CreateCategory godoc
// @Summary      Create a skill category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.SkillCategoryRequest  true  "Category"
// @Success      201   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /admin/skill-categories [post]
func (h *SkillHandler) CreateCategory(c *gin.Context) {
	var req domain.SkillCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	category, err := h.skillUC.CreateCategory(c, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Category created", category)
}

// UpdateCategory godoc
// @Summary      Update a skill category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                          true  "Category ID"
// @Param        body  body      domain.SkillCategoryRequest  true  "Category"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /admin/skill-categories/{id} [put]
func (h *SkillHandler) UpdateCategory(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.SkillCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	category, err := h.skillUC.UpdateCategory(c, id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory godoc
// @Summary      Delete a skill category
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/skill-categories/{id} [delete]
func (h *SkillHandler) DeleteCategory(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.skillUC.DeleteCategory(c, id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Category deleted", nil)
}

// ListWorkerSkills godoc
// @Summary      List a worker's skills
// @Tags         skills
// @Produce      json
// @Param        id   path      string  true  "Worker user ID"
// @Success      200  {object}  response.Response
// @Router       /workers/{id}/skills [get]
func (h *SkillHandler) ListWorkerSkills(c *gin.Context) {
	skills, err := h.skillUC.ListWorkerSkills(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Worker skills", skills)
}

// AddSkill godoc
// @Summary      Add a skill
// @Tags         skills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.WorkerSkillRequest  true  "Skill"
// @Success      201   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /workers/me/skills [post]
func (h *SkillHandler) AddSkill(c *gin.Context) {
	var req domain.WorkerSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	skill, err := h.skillUC.AddSkill(c, currentUserID(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Skill added", skill)
}

// UpdateSkill godoc
// @Summary      Update a skill
// @Tags         skills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        skillId  path      int                        true  "Skill ID"
// @Param        body     body      domain.WorkerSkillRequest  true  "Skill"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /workers/me/skills/{skillId} [put]
func (h *SkillHandler) UpdateSkill(c *gin.Context) {
	id, err := paramID(c, "skillId")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.WorkerSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	skill, err := h.skillUC.UpdateSkill(c, currentUserID(c), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill updated", skill)
}

// DeleteSkill godoc
// @Summary      Delete a skill
// @Tags         skills
// @Produce      json
// @Security     BearerAuth
// @Param        skillId  path      int  true  "Skill ID"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /workers/me/skills/{skillId} [delete]
func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	id, err := paramID(c, "skillId")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.skillUC.DeleteSkill(c, currentUserID(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill deleted", nil)
}

// SubmitAssessment godoc
// @Summary      Record a skill assessment score
// @Description  A score of 70 or more marks the skill verified
// @Tags         skills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        skillId  path      int                       true  "Skill ID"
// @Param        body     body      domain.AssessmentRequest  true  "Score"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /workers/me/skills/{skillId}/assessment [post]
func (h *SkillHandler) SubmitAssessment(c *gin.Context) {
	id, err := paramID(c, "skillId")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	skill, err := h.skillUC.SubmitAssessment(c, currentUserID(c), id, *req.Score)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Assessment recorded", skill)
}
