package handler

import (
	"net/http"
	"strings"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) profileGet(c *gin.Context) {
	user := h.getUserFromRequest(c)

	username := strings.TrimSpace(c.Param("username"))

	var viewerID *uuid.UUID
	if user != nil {
		viewerID = &user.ID
	}

	page, err := h.services.User.FindProfile(c.Request.Context(), username, viewerID, pageQuery(c))
	if err == service.ErrUserNotFound {
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) profileEdit(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	updatedUser, err := h.services.User.UpdateProfile(c.Request.Context(), user.ID, input)
	switch err {
	case nil:
		c.Redirect(http.StatusFound, profilePath(updatedUser.Username))
	case service.ErrUsernameOrEmailTaken:
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
	}
}
