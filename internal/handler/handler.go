package handler

import (
	"strconv"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

const loginPath = "/auth/login"

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{viper.GetString("client.origin")},
		AllowMethods: []string{"POST", "GET"},
		AllowCredentials: true,
	}))

	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.authSignUp)
		auth.POST("/signin", h.authSignIn)
		auth.GET("/login", h.authLoginEntry)
	}

	r.GET("/", h.notRequiredAuthMiddleware, h.postsIndex)

	posts := r.Group("/posts")
	{
		posts.POST("", h.authMiddleware, h.postsCreate)

		post := posts.Group("/:postID")
		{
			post.GET("", h.notRequiredAuthMiddleware, h.postsGetByID)
			post.POST("/edit", h.authMiddleware, h.postsEdit)
			post.POST("/delete", h.authMiddleware, h.postsDelete)
			post.POST("/comments", h.authMiddleware, h.commentsCreate)
		}
	}

	comments := r.Group("/comments")
	{
		comment := comments.Group("/:commentID")
		{
			comment.POST("/edit", h.authMiddleware, h.commentsEdit)
			comment.POST("/delete", h.authMiddleware, h.commentsDelete)
		}
	}

	r.GET("/category/:slug", h.notRequiredAuthMiddleware, h.categoryPosts)

	profile := r.Group("/profile")
	{
		profile.POST("/edit", h.authMiddleware, h.profileEdit)
		profile.GET("/:username", h.notRequiredAuthMiddleware, h.profileGet)
	}

	return r
}

func (h *Handler) getUserFromRequest(c *gin.Context) *model.User {
	userReq, _ := c.Get("user")

	user, ok := userReq.(model.User)
	if !ok {
		return nil
	}

	return &user
}

// pageQuery reads the ?page= query parameter; anything unparsable is page 1.
func pageQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func postDetailPath(postID int64) string {
	return "/posts/" + strconv.FormatInt(postID, 10)
}

func profilePath(username string) string {
	return "/profile/" + username
}
