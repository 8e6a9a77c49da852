package postgres

import (
	"context"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = "id, username, first_name, last_name, email, password_hash, created_at"

type userRepo struct {
	db *pgxpool.Pool
}

func newUserRepo(db *pgxpool.Pool) User {
	return &userRepo{
		db: db,
	}
}

func scanUser(ctx context.Context, db *pgxpool.Pool, query string, args ...interface{}) (*model.User, error) {
	var user model.User
	if err := db.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user model.User) (*model.User, error) {
	user.ID = uuid.New()
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO users(id, username, first_name, last_name, email, password_hash) VALUES($1, $2, $3, $4, $5, $6) RETURNING created_at",
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
	).Scan(&user.CreatedAt); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return scanUser(ctx, r.db, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(ctx, r.db, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
}

func (r *userRepo) Update(ctx context.Context, user model.User) error {
	_, err := r.db.Exec(
		ctx,
		"UPDATE users SET username = $1, first_name = $2, last_name = $3, email = $4 WHERE id = $5",
		user.Username,
		user.FirstName,
		user.LastName,
		user.Email,
		user.ID,
	)
	return err
}
