package postgres

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
	FindVisibleByID(ctx context.Context, id int64, asOf time.Time) (*model.FullPost, error)
	FindVisible(ctx context.Context, asOf time.Time, limit int, offset int) ([]*model.FullPost, error)
	CountVisible(ctx context.Context, asOf time.Time) (int64, error)
	FindVisibleByCategory(ctx context.Context, categoryID int64, asOf time.Time, limit int, offset int) ([]*model.FullPost, error)
	CountVisibleByCategory(ctx context.Context, categoryID int64, asOf time.Time) (int64, error)
	FindAuthorPosts(ctx context.Context, authorID uuid.UUID, limit int, offset int) ([]*model.FullPost, error)
	CountAuthorPosts(ctx context.Context, authorID uuid.UUID) (int64, error)
	FindVisibleAuthorPosts(ctx context.Context, authorID uuid.UUID, asOf time.Time, limit int, offset int) ([]*model.FullPost, error)
	CountVisibleAuthorPosts(ctx context.Context, authorID uuid.UUID, asOf time.Time) (int64, error)
	Update(ctx context.Context, post model.Post) error
	Delete(ctx context.Context, id int64) error
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindByID(ctx context.Context, id int64) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID int64) ([]*model.FullComment, error)
	Update(ctx context.Context, id int64, text string) error
	Delete(ctx context.Context, id int64) error
}

type Category interface {
	FindPublishedBySlug(ctx context.Context, slug string) (*model.Category, error)
}

type User interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, user model.User) error
}

type PostgresRepository struct {
	Post
	Comment
	Category
	User
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Post: newPostRepo(db),
		Comment: newCommentRepo(db),
		Category: newCategoryRepo(db),
		User: newUserRepo(db),
	}
}
