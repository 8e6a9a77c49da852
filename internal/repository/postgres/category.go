package postgres

import (
	"context"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type categoryRepo struct {
	db *pgxpool.Pool
}

func newCategoryRepo(db *pgxpool.Pool) Category {
	return &categoryRepo{
		db: db,
	}
}

func (r *categoryRepo) FindPublishedBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.QueryRow(
		ctx,
		"SELECT id, title, description, slug, is_published, created_at FROM categories WHERE slug = $1 AND is_published",
		slug,
	).Scan(
		&category.ID,
		&category.Title,
		&category.Description,
		&category.Slug,
		&category.IsPublished,
		&category.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &category, nil
}
