package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) postsIndex(c *gin.Context) {
	page, err := h.services.Post.FindVisible(c.Request.Context(), pageQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) postsGetByID(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postIDString := strings.TrimSpace(c.Param("postID"))
	postID, err := strconv.ParseInt(postIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	var viewerID *uuid.UUID
	if user != nil {
		viewerID = &user.ID
	}

	detail, err := h.services.Post.FindByID(c.Request.Context(), postID, viewerID)
	if err == service.ErrPostNotFound {
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if _, err := h.services.Post.Create(c.Request.Context(), user.ID, input); err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.Redirect(http.StatusFound, profilePath(user.Username))
}

func (h *Handler) postsEdit(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postIDString := strings.TrimSpace(c.Param("postID"))
	postID, err := strconv.ParseInt(postIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	// Ownership is settled before the body is read, so a non-author is
	// redirected no matter what they posted.
	switch err := h.services.Post.CheckAuthor(c.Request.Context(), postID, user.ID); err {
	case nil:
	case service.ErrNotPostAuthor:
		c.Redirect(http.StatusFound, postDetailPath(postID))
		return
	case service.ErrPostNotFound:
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
		return
	default:
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	var input dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	_, err = h.services.Post.Update(c.Request.Context(), postID, user.ID, input)
	switch err {
	case nil, service.ErrNotPostAuthor:
		c.Redirect(http.StatusFound, postDetailPath(postID))
	case service.ErrPostNotFound:
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
	}
}

func (h *Handler) postsDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postIDString := strings.TrimSpace(c.Param("postID"))
	postID, err := strconv.ParseInt(postIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	err = h.services.Post.Delete(c.Request.Context(), postID, user.ID)
	switch err {
	case nil, service.ErrNotPostAuthor:
		// Denial and success redirect to the same place.
		c.Redirect(http.StatusFound, "/")
	case service.ErrPostNotFound:
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
	}
}
