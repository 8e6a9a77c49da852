package service

import (
	"context"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type commentService struct {
	logger *zap.Logger
	repo *repository.Repository
}

func newCommentService(logger *zap.Logger, repo *repository.Repository) Comment {
	return &commentService{
		logger: logger,
		repo: repo,
	}
}

func (s *commentService) Create(ctx context.Context, postID int64, authorID uuid.UUID, input dto.CreateCommentRequest) (*model.Comment, error) {
	// Any existing post accepts comments; visibility is not checked here.
	if _, err := s.repo.Postgres.Post.FindByID(ctx, postID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", postID, err.Error())
		return nil, ErrInternal
	}

	comment := model.Comment{
		PostID: postID,
		AuthorID: authorID,
		Text: input.Text,
	}

	createdComment, err := s.repo.Postgres.Comment.Create(ctx, comment)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) comment on post(%d): %s", authorID.String(), postID, err.Error())
		return nil, ErrInternal
	}

	return createdComment, nil
}

// CheckAuthor reports whether userID authored the comment. The parent post id
// is returned whenever the comment exists, so callers can redirect on denial.
func (s *commentService) CheckAuthor(ctx context.Context, commentID int64, userID uuid.UUID) (int64, error) {
	comment, err := s.repo.Postgres.Comment.FindByID(ctx, commentID)
	if err == pgx.ErrNoRows {
		return 0, ErrCommentNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find comment(%d) from postgres: %s", commentID, err.Error())
		return 0, ErrInternal
	}

	if comment.AuthorID != userID {
		return comment.PostID, ErrNotCommentAuthor
	}

	return comment.PostID, nil
}

// Update edits a comment's text. The parent post id is returned whenever the
// comment exists, so callers can redirect to the post even on denial.
func (s *commentService) Update(ctx context.Context, commentID int64, editorID uuid.UUID, input dto.UpdateCommentRequest) (int64, error) {
	comment, err := s.repo.Postgres.Comment.FindByID(ctx, commentID)
	if err == pgx.ErrNoRows {
		return 0, ErrCommentNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find comment(%d) from postgres: %s", commentID, err.Error())
		return 0, ErrInternal
	}

	if comment.AuthorID != editorID {
		return comment.PostID, ErrNotCommentAuthor
	}

	if err := s.repo.Postgres.Comment.Update(ctx, commentID, input.Text); err != nil {
		s.logger.Sugar().Errorf("failed to update comment(%d): %s", commentID, err.Error())
		return comment.PostID, ErrInternal
	}

	return comment.PostID, nil
}

func (s *commentService) Delete(ctx context.Context, commentID int64, requesterID uuid.UUID) (int64, error) {
	comment, err := s.repo.Postgres.Comment.FindByID(ctx, commentID)
	if err == pgx.ErrNoRows {
		return 0, ErrCommentNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find comment(%d) from postgres: %s", commentID, err.Error())
		return 0, ErrInternal
	}

	if comment.AuthorID != requesterID {
		return comment.PostID, ErrNotCommentAuthor
	}

	if err := s.repo.Postgres.Comment.Delete(ctx, commentID); err != nil {
		s.logger.Sugar().Errorf("failed to delete comment(%d): %s", commentID, err.Error())
		return comment.PostID, ErrInternal
	}

	return comment.PostID, nil
}
