package v1

import (
	"net/http"

	"go-marketplace-backend/internal/delivery/http/response"
	"go-marketplace-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type BookmarkHandler struct {
	bookmarkUC domain.BookmarkUsecase
}

func NewBookmarkHandler(hirer *gin.RouterGroup, bookmarkUC domain.BookmarkUsecase) {
	handler := &BookmarkHandler{bookmarkUC: bookmarkUC}

	bookmarks := hirer.Group("/bookmarks")
	{
		bookmarks.GET("", handler.List)
		bookmarks.POST("", handler.Add)
		bookmarks.DELETE("/:workerId", handler.Remove)
	}
}

// List godoc
// @Summary      List saved workers
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int  false  "Page number"
// @Param        pageSize  query     int  false  "Items per page"
// @Success      200       {object}  response.Response
// @Router       /bookmarks [get]
func (h *BookmarkHandler) List(c *gin.Context) {
	page, pageSize := pageQuery(c)
	result, err := h.bookmarkUC.List(c, currentUserID(c), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Bookmarks retrieved", result)
}

// Add godoc
// @Summary      Save a worker
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.BookmarkRequest  true  "Worker"
// @Success      201   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /bookmarks [post]
func (h *BookmarkHandler) Add(c *gin.Context) {
	var req domain.BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	bookmark, err := h.bookmarkUC.Add(c, currentUserID(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Worker bookmarked", bookmark)
}

// Remove godoc
// @Summary      Remove a saved worker
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Param        workerId  path      string  true  "Worker user ID"
// @Success      200       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /bookmarks/{workerId} [delete]
func (h *BookmarkHandler) Remove(c *gin.Context) {
	if err := h.bookmarkUC.Remove(c, currentUserID(c), c.Param("workerId")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Bookmark removed", nil)
}
