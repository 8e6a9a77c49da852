package service

import (
	"context"
	"os"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/pkg/utils"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	logger *zap.Logger
	repo *repository.Repository
}

func newAuthService(logger *zap.Logger, repo *repository.Repository) Auth {
	return &authService{
		logger: logger,
		repo: repo,
	}
}

func (s *authService) SignUp(ctx context.Context, input dto.SignUpRequest) (*model.User, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Sugar().Errorf("failed to hash password: %s", err.Error())
		return nil, ErrInternal
	}

	user := model.User{
		Username: input.Username,
		FirstName: input.FirstName,
		LastName: input.LastName,
		Email: input.Email,
		PasswordHash: string(passwordHash),
	}

	createdUser, err := s.repo.Postgres.User.Create(ctx, user)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameOrEmailTaken
		}
		s.logger.Sugar().Errorf("failed to create user(%s): %s", input.Username, err.Error())
		return nil, ErrInternal
	}

	return createdUser, nil
}

func (s *authService) SignIn(ctx context.Context, input dto.SignInRequest) (string, error) {
	user, err := s.repo.Postgres.User.FindByUsername(ctx, input.Username)
	if err == pgx.ErrNoRows {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s) from postgres: %s", input.Username, err.Error())
		return "", ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	accessToken, err := utils.GenerateJWT(user.ID, viper.GetDuration("jwt.access_ttl"), []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate access token for user(%s): %s", user.ID.String(), err.Error())
		return "", ErrInternal
	}

	return accessToken, nil
}
