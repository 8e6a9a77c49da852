package service

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const postCacheTTL = time.Hour

type postService struct {
	logger *zap.Logger
	repo *repository.Repository
	now func() time.Time
}

func newPostService(logger *zap.Logger, repo *repository.Repository, now func() time.Time) Post {
	return &postService{
		logger: logger,
		repo: repo,
		now: now,
	}
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest) (*model.Post, error) {
	post := model.Post{
		AuthorID: authorID,
		CategoryID: input.CategoryID,
		LocationID: input.LocationID,
		Title: input.Title,
		Text: input.Text,
		PubDate: input.PubDate,
		IsPublished: input.IsPublished,
	}

	createdPost, err := s.repo.Postgres.Post.Create(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	// A detail miss for this id may already sit in the cache as "null".
	s.invalidatePost(ctx, createdPost.ID)
	s.invalidateAuthorPages(ctx, authorID)

	return createdPost, nil
}

// CheckAuthor reports whether userID authored post id, without reading a body.
func (s *postService) CheckAuthor(ctx context.Context, id int64, userID uuid.UUID) error {
	existing, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err == pgx.ErrNoRows {
		return ErrPostNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", id, err.Error())
		return ErrInternal
	}

	if existing.Post.AuthorID != userID {
		return ErrNotPostAuthor
	}

	return nil
}

func (s *postService) FindByID(ctx context.Context, id int64, viewerID *uuid.UUID) (*dto.PostDetail, error) {
	post, err := s.findFullPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	// The author sees their own post regardless of publication state. Everyone
	// else gets a second resolution under the visibility predicate, so a hidden
	// post is indistinguishable from a missing one.
	if viewerID == nil || *viewerID != post.Post.AuthorID {
		visiblePost, err := s.repo.Postgres.Post.FindVisibleByID(ctx, id, s.now())
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		if err != nil {
			s.logger.Sugar().Errorf("failed to find visible post(%d) from postgres: %s", id, err.Error())
			return nil, ErrInternal
		}
		post = visiblePost
	}

	comments, err := s.repo.Postgres.Comment.FindPostComments(ctx, id)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find post(%d) comments from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	return &dto.PostDetail{
		Post: *post,
		Comments: comments,
	}, nil
}

// findFullPost resolves a post with no visibility restriction, through the
// redis cache. A cached "null" means the id is known to be absent.
func (s *postService) findFullPost(ctx context.Context, id int64) (*model.FullPost, error) {
	cachedPost, err := redisrepo.Get[model.FullPost](s.repo.Redis.Default, ctx, redisrepo.PostKey(id))
	if err == nil {
		return cachedPost, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get post(%d) from redis: %s", id, err.Error())
		return nil, ErrInternal
	}

	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PostKey(id), post, postCacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%d) in redis: %s", id, err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

func (s *postService) FindVisible(ctx context.Context, page int) (*dto.PostsPage, error) {
	limit, offset := pageBounds(&page)

	posts, err := s.repo.Postgres.Post.FindVisible(ctx, s.now(), limit, offset)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find visible posts from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	total, err := s.repo.Postgres.Post.CountVisible(ctx, s.now())
	if err != nil {
		s.logger.Sugar().Errorf("failed to count visible posts from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	return &dto.PostsPage{
		Posts: posts,
		Page: page,
		TotalPages: totalPages(total),
		Total: total,
	}, nil
}

func (s *postService) FindCategoryPosts(ctx context.Context, slug string, page int) (*dto.CategoryPage, error) {
	category, err := s.repo.Postgres.Category.FindPublishedBySlug(ctx, slug)
	if err == pgx.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find category(%s) from postgres: %s", slug, err.Error())
		return nil, ErrInternal
	}

	limit, offset := pageBounds(&page)

	posts, err := s.repo.Postgres.Post.FindVisibleByCategory(ctx, category.ID, s.now(), limit, offset)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find category(%s) posts from postgres: %s", slug, err.Error())
		return nil, ErrInternal
	}

	total, err := s.repo.Postgres.Post.CountVisibleByCategory(ctx, category.ID, s.now())
	if err != nil {
		s.logger.Sugar().Errorf("failed to count category(%s) posts from postgres: %s", slug, err.Error())
		return nil, ErrInternal
	}

	return &dto.CategoryPage{
		Category: *category,
		PostsPage: dto.PostsPage{
			Posts: posts,
			Page: page,
			TotalPages: totalPages(total),
			Total: total,
		},
	}, nil
}

func (s *postService) Update(ctx context.Context, id int64, editorID uuid.UUID, input dto.UpdatePostRequest) (*model.Post, error) {
	existing, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, ErrPostNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	if existing.Post.AuthorID != editorID {
		return nil, ErrNotPostAuthor
	}

	post := existing.Post
	post.CategoryID = input.CategoryID
	post.LocationID = input.LocationID
	post.Title = input.Title
	post.Text = input.Text
	post.PubDate = input.PubDate
	post.IsPublished = input.IsPublished

	if err := s.repo.Postgres.Post.Update(ctx, post); err != nil {
		s.logger.Sugar().Errorf("failed to update post(%d): %s", id, err.Error())
		return nil, ErrInternal
	}

	s.invalidatePost(ctx, id)
	s.invalidateAuthorPages(ctx, editorID)

	return &post, nil
}

func (s *postService) Delete(ctx context.Context, id int64, requesterID uuid.UUID) error {
	existing, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err == pgx.ErrNoRows {
		return ErrPostNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", id, err.Error())
		return ErrInternal
	}

	if existing.Post.AuthorID != requesterID {
		return ErrNotPostAuthor
	}

	if err := s.repo.Postgres.Post.Delete(ctx, id); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d): %s", id, err.Error())
		return ErrInternal
	}

	s.invalidatePost(ctx, id)
	s.invalidateAuthorPages(ctx, requesterID)

	return nil
}

func (s *postService) invalidatePost(ctx context.Context, id int64) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.PostKey(id)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d) from redis: %s", id, err.Error())
	}
}

// invalidateAuthorPages drops the cached public profile pages of the post's
// author. Cache staleness here is tolerable but not across the author's own
// writes.
func (s *postService) invalidateAuthorPages(ctx context.Context, authorID uuid.UUID) {
	author, err := s.repo.Postgres.User.FindByID(ctx, authorID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s) for cache invalidation: %s", authorID.String(), err.Error())
		return
	}

	keys, err := s.repo.Redis.Default.Keys(ctx, redisrepo.ProfilePostsPattern(author.Username)).Result()
	if err != nil {
		s.logger.Sugar().Errorf("failed to list profile(%s) cache keys: %s", author.Username, err.Error())
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := s.repo.Redis.Default.Del(ctx, keys...).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete profile(%s) cache keys: %s", author.Username, err.Error())
	}
}
