package service

import (
	"context"
	"errors"
	"time"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const profileCacheTTL = time.Hour

// uniqueViolation is the postgres error code for a unique constraint violation.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type userService struct {
	logger *zap.Logger
	repo *repository.Repository
	now func() time.Time
}

func newUserService(logger *zap.Logger, repo *repository.Repository, now func() time.Time) User {
	return &userService{
		logger: logger,
		repo: repo,
		now: now,
	}
}

func (s *userService) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.Postgres.User.FindByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s) from postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	return user, nil
}

func (s *userService) FindProfile(ctx context.Context, username string, viewerID *uuid.UUID, page int) (*dto.ProfilePage, error) {
	profile, err := s.repo.Postgres.User.FindByUsername(ctx, username)
	if err == pgx.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s) from postgres: %s", username, err.Error())
		return nil, ErrInternal
	}

	if viewerID != nil && *viewerID == profile.ID {
		return s.ownProfilePage(ctx, profile, page)
	}
	return s.publicProfilePage(ctx, profile, page)
}

// ownProfilePage lists everything the user has written, unpublished and
// future-dated posts included. Never cached.
func (s *userService) ownProfilePage(ctx context.Context, profile *model.User, page int) (*dto.ProfilePage, error) {
	limit, offset := pageBounds(&page)

	posts, err := s.repo.Postgres.Post.FindAuthorPosts(ctx, profile.ID, limit, offset)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find author(%s) posts from postgres: %s", profile.Username, err.Error())
		return nil, ErrInternal
	}

	total, err := s.repo.Postgres.Post.CountAuthorPosts(ctx, profile.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count author(%s) posts from postgres: %s", profile.Username, err.Error())
		return nil, ErrInternal
	}

	return profilePage(profile, posts, page, total), nil
}

// publicProfilePage lists the publicly visible subset and is the only profile
// variant that goes through the redis cache.
func (s *userService) publicProfilePage(ctx context.Context, profile *model.User, page int) (*dto.ProfilePage, error) {
	limit, offset := pageBounds(&page)

	cachedPage, err := redisrepo.Get[dto.ProfilePage](s.repo.Redis.Default, ctx, redisrepo.ProfilePostsKey(profile.Username, page))
	if err == nil && cachedPage != nil {
		return cachedPage, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get profile(%s) page from redis: %s", profile.Username, err.Error())
		return nil, ErrInternal
	}

	posts, err := s.repo.Postgres.Post.FindVisibleAuthorPosts(ctx, profile.ID, s.now(), limit, offset)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find visible author(%s) posts from postgres: %s", profile.Username, err.Error())
		return nil, ErrInternal
	}

	total, err := s.repo.Postgres.Post.CountVisibleAuthorPosts(ctx, profile.ID, s.now())
	if err != nil {
		s.logger.Sugar().Errorf("failed to count visible author(%s) posts from postgres: %s", profile.Username, err.Error())
		return nil, ErrInternal
	}

	result := profilePage(profile, posts, page, total)

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.ProfilePostsKey(profile.Username, page), result, profileCacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set profile(%s) page in redis: %s", profile.Username, err.Error())
		return nil, ErrInternal
	}

	return result, nil
}

func profilePage(profile *model.User, posts []*model.FullPost, page int, total int64) *dto.ProfilePage {
	return &dto.ProfilePage{
		Profile: model.UserAuthor{
			ID: profile.ID,
			Username: profile.Username,
			FirstName: profile.FirstName,
			LastName: profile.LastName,
		},
		PostsPage: dto.PostsPage{
			Posts: posts,
			Page: page,
			TotalPages: totalPages(total),
			Total: total,
		},
	}
}

// UpdateProfile always targets the requester's own row; there is no way to
// address another account through it.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, input dto.UpdateProfileRequest) (*model.User, error) {
	user, err := s.repo.Postgres.User.FindByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s) from postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	oldUsername := user.Username
	user.Username = input.Username
	user.Email = input.Email
	user.FirstName = input.FirstName
	user.LastName = input.LastName

	if err := s.repo.Postgres.User.Update(ctx, *user); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameOrEmailTaken
		}
		s.logger.Sugar().Errorf("failed to update user(%s): %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	s.invalidateProfilePages(ctx, oldUsername)
	if user.Username != oldUsername {
		s.invalidateProfilePages(ctx, user.Username)
	}

	return user, nil
}

func (s *userService) invalidateProfilePages(ctx context.Context, username string) {
	keys, err := s.repo.Redis.Default.Keys(ctx, redisrepo.ProfilePostsPattern(username)).Result()
	if err != nil {
		s.logger.Sugar().Errorf("failed to list profile(%s) cache keys: %s", username, err.Error())
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := s.repo.Redis.Default.Del(ctx, keys...).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete profile(%s) cache keys: %s", username, err.Error())
	}
}
