package postgres

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const fullPostColumns = `p.id, p.author_id, p.category_id, p.location_id, p.title, p.text, p.pub_date, p.is_published, p.created_at,
	u.id, u.username, u.first_name, u.last_name,
	c.id, c.title, c.description, c.slug, c.is_published, c.created_at,
	l.id, l.name, l.is_published, l.created_at`

const fullPostJoins = `FROM posts p
	JOIN users u ON p.author_id = u.id
	LEFT JOIN categories c ON p.category_id = c.id
	LEFT JOIN locations l ON p.location_id = l.id`

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func scanFullPost(row pgx.Row) (*model.FullPost, error) {
	var post model.FullPost
	var (
		catID *int64
		catTitle *string
		catDescription *string
		catSlug *string
		catPublished *bool
		catCreatedAt *time.Time
		locID *int64
		locName *string
		locPublished *bool
		locCreatedAt *time.Time
	)
	if err := row.Scan(
		&post.Post.ID,
		&post.Post.AuthorID,
		&post.Post.CategoryID,
		&post.Post.LocationID,
		&post.Post.Title,
		&post.Post.Text,
		&post.Post.PubDate,
		&post.Post.IsPublished,
		&post.Post.CreatedAt,
		&post.Author.ID,
		&post.Author.Username,
		&post.Author.FirstName,
		&post.Author.LastName,
		&catID,
		&catTitle,
		&catDescription,
		&catSlug,
		&catPublished,
		&catCreatedAt,
		&locID,
		&locName,
		&locPublished,
		&locCreatedAt,
	); err != nil {
		return nil, err
	}

	if catID != nil {
		post.Category = &model.Category{
			ID: *catID,
			Title: *catTitle,
			Description: *catDescription,
			Slug: *catSlug,
			IsPublished: *catPublished,
			CreatedAt: *catCreatedAt,
		}
	}
	if locID != nil {
		post.Location = &model.Location{
			ID: *locID,
			Name: *locName,
			IsPublished: *locPublished,
			CreatedAt: *locCreatedAt,
		}
	}

	return &post, nil
}

func (r *postRepo) collectFullPosts(rows pgx.Rows) ([]*model.FullPost, error) {
	defer rows.Close()

	var posts []*model.FullPost
	for rows.Next() {
		post, err := scanFullPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO posts(author_id, category_id, location_id, title, text, pub_date, is_published) VALUES($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at",
		post.AuthorID,
		post.CategoryID,
		post.LocationID,
		post.Title,
		post.Text,
		post.PubDate,
		post.IsPublished,
	).Scan(&post.ID, &post.CreatedAt); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+fullPostColumns+`
		`+fullPostJoins+`
		WHERE p.id = $1`,
		id,
	)
	return scanFullPost(row)
}

func (r *postRepo) FindVisibleByID(ctx context.Context, id int64, asOf time.Time) (*model.FullPost, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+fullPostColumns+`
		`+fullPostJoins+`
		WHERE p.id = $1 AND `+visibleCond(2),
		id,
		asOf,
	)
	return scanFullPost(row)
}

func (r *postRepo) FindVisible(ctx context.Context, asOf time.Time, limit int, offset int) ([]*model.FullPost, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+fullPostColumns+`
		`+fullPostJoins+`
		WHERE `+visibleCond(1)+`
		ORDER BY p.pub_date DESC
		LIMIT $2
		OFFSET $3`,
		asOf,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	return r.collectFullPosts(rows)
}

func (r *postRepo) CountVisible(ctx context.Context, asOf time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*)
		FROM posts p
		JOIN categories c ON p.category_id = c.id
		WHERE `+visibleCond(1),
		asOf,
	).Scan(&count)
	return count, err
}

func (r *postRepo) FindVisibleByCategory(ctx context.Context, categoryID int64, asOf time.Time, limit int, offset int) ([]*model.FullPost, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+fullPostColumns+`
		`+fullPostJoins+`
		WHERE p.category_id = $1 AND `+visibleCond(2)+`
		ORDER BY p.pub_date DESC
		LIMIT $3
		OFFSET $4`,
		categoryID,
		asOf,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	return r.collectFullPosts(rows)
}

func (r *postRepo) CountVisibleByCategory(ctx context.Context, categoryID int64, asOf time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*)
		FROM posts p
		JOIN categories c ON p.category_id = c.id
		WHERE p.category_id = $1 AND `+visibleCond(2),
		categoryID,
		asOf,
	).Scan(&count)
	return count, err
}

func (r *postRepo) FindAuthorPosts(ctx context.Context, authorID uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+fullPostColumns+`
		`+fullPostJoins+`
		WHERE p.author_id = $1
		ORDER BY p.pub_date DESC
		LIMIT $2
		OFFSET $3`,
		authorID,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	return r.collectFullPosts(rows)
}

func (r *postRepo) CountAuthorPosts(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(
		ctx,
		"SELECT COUNT(*) FROM posts p WHERE p.author_id = $1",
		authorID,
	).Scan(&count)
	return count, err
}

func (r *postRepo) FindVisibleAuthorPosts(ctx context.Context, authorID uuid.UUID, asOf time.Time, limit int, offset int) ([]*model.FullPost, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+fullPostColumns+`
		`+fullPostJoins+`
		WHERE p.author_id = $1 AND `+visibleCond(2)+`
		ORDER BY p.pub_date DESC
		LIMIT $3
		OFFSET $4`,
		authorID,
		asOf,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	return r.collectFullPosts(rows)
}

func (r *postRepo) CountVisibleAuthorPosts(ctx context.Context, authorID uuid.UUID, asOf time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*)
		FROM posts p
		JOIN categories c ON p.category_id = c.id
		WHERE p.author_id = $1 AND `+visibleCond(2),
		authorID,
		asOf,
	).Scan(&count)
	return count, err
}

func (r *postRepo) Update(ctx context.Context, post model.Post) error {
	_, err := r.db.Exec(
		ctx,
		"UPDATE posts SET category_id = $1, location_id = $2, title = $3, text = $4, pub_date = $5, is_published = $6 WHERE id = $7",
		post.CategoryID,
		post.LocationID,
		post.Title,
		post.Text,
		post.PubDate,
		post.IsPublished,
		post.ID,
	)
	return err
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	return err
}
