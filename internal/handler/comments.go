package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) commentsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postIDString := strings.TrimSpace(c.Param("postID"))
	postID, err := strconv.ParseInt(postIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	var input dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	_, err = h.services.Comment.Create(c.Request.Context(), postID, user.ID, input)
	switch err {
	case nil:
		c.Redirect(http.StatusFound, postDetailPath(postID))
	case service.ErrPostNotFound:
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
	}
}

func (h *Handler) commentsEdit(c *gin.Context) {
	user := h.getUserFromRequest(c)

	commentIDString := strings.TrimSpace(c.Param("commentID"))
	commentID, err := strconv.ParseInt(commentIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidCommentID.Error()))
		return
	}

	// Ownership is settled before the body is read, so a non-author is
	// redirected no matter what they posted.
	parentID, err := h.services.Comment.CheckAuthor(c.Request.Context(), commentID, user.ID)
	switch err {
	case nil:
	case service.ErrNotCommentAuthor:
		c.Redirect(http.StatusFound, postDetailPath(parentID))
		return
	case service.ErrCommentNotFound:
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
		return
	default:
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	var input dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	postID, err := h.services.Comment.Update(c.Request.Context(), commentID, user.ID, input)
	switch err {
	case nil, service.ErrNotCommentAuthor:
		c.Redirect(http.StatusFound, postDetailPath(postID))
	case service.ErrCommentNotFound:
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
	}
}

func (h *Handler) commentsDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)

	commentIDString := strings.TrimSpace(c.Param("commentID"))
	commentID, err := strconv.ParseInt(commentIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidCommentID.Error()))
		return
	}

	postID, err := h.services.Comment.Delete(c.Request.Context(), commentID, user.ID)
	switch err {
	case nil, service.ErrNotCommentAuthor:
		c.Redirect(http.StatusFound, postDetailPath(postID))
	case service.ErrCommentNotFound:
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
	}
}
