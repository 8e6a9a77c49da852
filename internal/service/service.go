package service

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const PAGE_SIZE = 10

// pageBounds normalizes a 1-based page number into LIMIT/OFFSET values.
func pageBounds(page *int) (limit int, offset int) {
	if *page < 1 {
		*page = 1
	}
	return PAGE_SIZE, (*page - 1) * PAGE_SIZE
}

func totalPages(total int64) int64 {
	return (total + PAGE_SIZE - 1) / PAGE_SIZE
}

type Post interface {
	Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest) (*model.Post, error)
	FindByID(ctx context.Context, id int64, viewerID *uuid.UUID) (*dto.PostDetail, error)
	FindVisible(ctx context.Context, page int) (*dto.PostsPage, error)
	FindCategoryPosts(ctx context.Context, slug string, page int) (*dto.CategoryPage, error)
	CheckAuthor(ctx context.Context, id int64, userID uuid.UUID) error
	Update(ctx context.Context, id int64, editorID uuid.UUID, input dto.UpdatePostRequest) (*model.Post, error)
	Delete(ctx context.Context, id int64, requesterID uuid.UUID) error
}

type Comment interface {
	Create(ctx context.Context, postID int64, authorID uuid.UUID, input dto.CreateCommentRequest) (*model.Comment, error)
	CheckAuthor(ctx context.Context, commentID int64, userID uuid.UUID) (int64, error)
	Update(ctx context.Context, commentID int64, editorID uuid.UUID, input dto.UpdateCommentRequest) (int64, error)
	Delete(ctx context.Context, commentID int64, requesterID uuid.UUID) (int64, error)
}

type User interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindProfile(ctx context.Context, username string, viewerID *uuid.UUID, page int) (*dto.ProfilePage, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input dto.UpdateProfileRequest) (*model.User, error)
}

type Auth interface {
	SignUp(ctx context.Context, input dto.SignUpRequest) (*model.User, error)
	SignIn(ctx context.Context, input dto.SignInRequest) (string, error)
}

type Service struct {
	Post
	Comment
	User
	Auth
}

// New wires the services. now is the clock used for every visibility decision;
// pass nil for the wall clock.
func New(logger *zap.Logger, repo *repository.Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		Post: newPostService(logger, repo, now),
		Comment: newCommentService(logger, repo),
		User: newUserService(logger, repo, now),
		Auth: newAuthService(logger, repo),
	}
}
