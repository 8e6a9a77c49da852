package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) authSignUp(c *gin.Context) {
	var input dto.SignUpRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdUser, err := h.services.Auth.SignUp(c.Request.Context(), input)
	switch err {
	case nil:
		c.JSON(http.StatusCreated, *createdUser)
	case service.ErrUsernameOrEmailTaken:
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
	}
}

func (h *Handler) authSignIn(c *gin.Context) {
	var input dto.SignInRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	accessToken, err := h.services.Auth.SignIn(c.Request.Context(), input)
	switch err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
	case service.ErrInvalidCredentials:
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
	}
}

// authLoginEntry is where unauthenticated writers are redirected. Rendering a
// login page is the client's job; the endpoint only names the location.
func (h *Handler) authLoginEntry(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, "authorization required"))
}
