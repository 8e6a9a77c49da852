package handler

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// authMiddleware guards write-capable routes. An unauthenticated caller is
// redirected to the login entry point and the operation never runs.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		h.redirectToLogin(c)
		return
	}

	accessToken := strings.TrimPrefix(header, "Bearer ")
	if accessToken == "" {
		h.redirectToLogin(c)
		return
	}

	user, err := h.getUserFromAccessToken(c.Request.Context(), accessToken)
	if err != nil {
		h.redirectToLogin(c)
		return
	}

	c.Set("user", *user)

	c.Next()
}

func (h *Handler) redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, loginPath)
	c.Abort()
}

func (h *Handler) getUserFromAccessToken(ctx context.Context, accessToken string) (*model.User, error) {
	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		return nil, err
	}

	idString, ok := claims["id"].(string)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, err
	}

	return h.services.User.FindByID(ctx, id)
}
