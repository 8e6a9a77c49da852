package handler

import (
	"net/http"
	"strings"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) categoryPosts(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if err := validate.Var(slug, "required,slug"); err != nil {
		// A malformed slug can never name a category.
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, service.ErrCategoryNotFound.Error()))
		return
	}

	page, err := h.services.Post.FindCategoryPosts(c.Request.Context(), slug, pageQuery(c))
	if err == service.ErrCategoryNotFound {
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, page)
}
