package service

import (
	"context"
	"encoding/json"
	"path"
	"sort"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/postgres"
	"github.com/BloggingApp/blog-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// fakeStore is an in-memory stand-in for postgres shared by the fake repos.
type fakeStore struct {
	posts          map[int64]*model.FullPost
	comments       map[int64]*model.Comment
	users          map[uuid.UUID]*model.User
	categories     map[string]*model.Category
	nextPostID     int64
	nextCommentID  int64
	postFindByID   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		posts:      make(map[int64]*model.FullPost),
		comments:   make(map[int64]*model.Comment),
		users:      make(map[uuid.UUID]*model.User),
		categories: make(map[string]*model.Category),
	}
}

func (st *fakeStore) addUser(username string) *model.User {
	user := &model.User{
		ID:        uuid.New(),
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Email:     username + "@example.com",
		CreatedAt: testNow,
	}
	st.users[user.ID] = user
	return user
}

func (st *fakeStore) addCategory(slug string, published bool) *model.Category {
	category := &model.Category{
		ID:          int64(len(st.categories) + 1),
		Title:       slug,
		Slug:        slug,
		IsPublished: published,
		CreatedAt:   testNow,
	}
	st.categories[slug] = category
	return category
}

func (st *fakeStore) addPost(author *model.User, category *model.Category, published bool, pubDate time.Time) *model.FullPost {
	st.nextPostID++
	post := &model.FullPost{
		Post: model.Post{
			ID:          st.nextPostID,
			AuthorID:    author.ID,
			Title:       "post",
			Text:        "text",
			PubDate:     pubDate,
			IsPublished: published,
			CreatedAt:   testNow,
		},
		Author: model.UserAuthor{
			ID:        author.ID,
			Username:  author.Username,
			FirstName: author.FirstName,
			LastName:  author.LastName,
		},
	}
	if category != nil {
		id := category.ID
		post.Post.CategoryID = &id
		post.Category = category
	}
	st.posts[post.Post.ID] = post
	return post
}

func (st *fakeStore) addComment(author *model.User, postID int64, text string, createdAt time.Time) *model.Comment {
	st.nextCommentID++
	comment := &model.Comment{
		ID:        st.nextCommentID,
		PostID:    postID,
		AuthorID:  author.ID,
		Text:      text,
		CreatedAt: createdAt,
	}
	st.comments[comment.ID] = comment
	return comment
}

func (st *fakeStore) categoryByID(id int64) *model.Category {
	for _, category := range st.categories {
		if category.ID == id {
			return category
		}
	}
	return nil
}

func visibleAt(post *model.FullPost, asOf time.Time) bool {
	return post.Post.IsPublished &&
		post.Category != nil && post.Category.IsPublished &&
		!post.Post.PubDate.After(asOf)
}

func sortByPubDateDesc(posts []*model.FullPost) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Post.PubDate.After(posts[j].Post.PubDate)
	})
}

func pageSlice(posts []*model.FullPost, limit, offset int) []*model.FullPost {
	if offset >= len(posts) {
		return nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end]
}

type fakePostRepo struct {
	st *fakeStore
}

func (r *fakePostRepo) Create(_ context.Context, post model.Post) (*model.Post, error) {
	author := r.st.users[post.AuthorID]
	var category *model.Category
	if post.CategoryID != nil {
		category = r.st.categoryByID(*post.CategoryID)
	}
	full := r.st.addPost(author, category, post.IsPublished, post.PubDate)
	full.Post.Title = post.Title
	full.Post.Text = post.Text
	created := full.Post
	return &created, nil
}

func (r *fakePostRepo) FindByID(_ context.Context, id int64) (*model.FullPost, error) {
	r.st.postFindByID++
	post, ok := r.st.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *post
	return &copied, nil
}

func (r *fakePostRepo) FindVisibleByID(_ context.Context, id int64, asOf time.Time) (*model.FullPost, error) {
	post, ok := r.st.posts[id]
	if !ok || !visibleAt(post, asOf) {
		return nil, pgx.ErrNoRows
	}
	copied := *post
	return &copied, nil
}

func (r *fakePostRepo) visible(asOf time.Time, match func(*model.FullPost) bool) []*model.FullPost {
	var posts []*model.FullPost
	for _, post := range r.st.posts {
		if visibleAt(post, asOf) && (match == nil || match(post)) {
			posts = append(posts, post)
		}
	}
	sortByPubDateDesc(posts)
	return posts
}

func (r *fakePostRepo) FindVisible(_ context.Context, asOf time.Time, limit, offset int) ([]*model.FullPost, error) {
	return pageSlice(r.visible(asOf, nil), limit, offset), nil
}

func (r *fakePostRepo) CountVisible(_ context.Context, asOf time.Time) (int64, error) {
	return int64(len(r.visible(asOf, nil))), nil
}

func (r *fakePostRepo) FindVisibleByCategory(_ context.Context, categoryID int64, asOf time.Time, limit, offset int) ([]*model.FullPost, error) {
	posts := r.visible(asOf, func(p *model.FullPost) bool {
		return p.Post.CategoryID != nil && *p.Post.CategoryID == categoryID
	})
	return pageSlice(posts, limit, offset), nil
}

func (r *fakePostRepo) CountVisibleByCategory(_ context.Context, categoryID int64, asOf time.Time) (int64, error) {
	posts := r.visible(asOf, func(p *model.FullPost) bool {
		return p.Post.CategoryID != nil && *p.Post.CategoryID == categoryID
	})
	return int64(len(posts)), nil
}

func (r *fakePostRepo) authorPosts(authorID uuid.UUID) []*model.FullPost {
	var posts []*model.FullPost
	for _, post := range r.st.posts {
		if post.Post.AuthorID == authorID {
			posts = append(posts, post)
		}
	}
	sortByPubDateDesc(posts)
	return posts
}

func (r *fakePostRepo) FindAuthorPosts(_ context.Context, authorID uuid.UUID, limit, offset int) ([]*model.FullPost, error) {
	return pageSlice(r.authorPosts(authorID), limit, offset), nil
}

func (r *fakePostRepo) CountAuthorPosts(_ context.Context, authorID uuid.UUID) (int64, error) {
	return int64(len(r.authorPosts(authorID))), nil
}

func (r *fakePostRepo) FindVisibleAuthorPosts(_ context.Context, authorID uuid.UUID, asOf time.Time, limit, offset int) ([]*model.FullPost, error) {
	posts := r.visible(asOf, func(p *model.FullPost) bool { return p.Post.AuthorID == authorID })
	return pageSlice(posts, limit, offset), nil
}

func (r *fakePostRepo) CountVisibleAuthorPosts(_ context.Context, authorID uuid.UUID, asOf time.Time) (int64, error) {
	posts := r.visible(asOf, func(p *model.FullPost) bool { return p.Post.AuthorID == authorID })
	return int64(len(posts)), nil
}

func (r *fakePostRepo) Update(_ context.Context, post model.Post) error {
	existing, ok := r.st.posts[post.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	existing.Post = post
	if post.CategoryID != nil {
		existing.Category = r.st.categoryByID(*post.CategoryID)
	} else {
		existing.Category = nil
	}
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id int64) error {
	delete(r.st.posts, id)
	return nil
}

type fakeCommentRepo struct {
	st *fakeStore
}

func (r *fakeCommentRepo) Create(_ context.Context, comment model.Comment) (*model.Comment, error) {
	author := r.st.users[comment.AuthorID]
	created := r.st.addComment(author, comment.PostID, comment.Text, testNow)
	copied := *created
	return &copied, nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id int64) (*model.Comment, error) {
	comment, ok := r.st.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *comment
	return &copied, nil
}

func (r *fakeCommentRepo) FindPostComments(_ context.Context, postID int64) ([]*model.FullComment, error) {
	var comments []*model.FullComment
	for _, comment := range r.st.comments {
		if comment.PostID != postID {
			continue
		}
		author := r.st.users[comment.AuthorID]
		comments = append(comments, &model.FullComment{
			Comment: *comment,
			Author: model.UserAuthor{
				ID:        author.ID,
				Username:  author.Username,
				FirstName: author.FirstName,
				LastName:  author.LastName,
			},
		})
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].Comment.CreatedAt.Before(comments[j].Comment.CreatedAt)
	})
	return comments, nil
}

func (r *fakeCommentRepo) Update(_ context.Context, id int64, text string) error {
	comment, ok := r.st.comments[id]
	if !ok {
		return pgx.ErrNoRows
	}
	comment.Text = text
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id int64) error {
	delete(r.st.comments, id)
	return nil
}

type fakeCategoryRepo struct {
	st *fakeStore
}

func (r *fakeCategoryRepo) FindPublishedBySlug(_ context.Context, slug string) (*model.Category, error) {
	category, ok := r.st.categories[slug]
	if !ok || !category.IsPublished {
		return nil, pgx.ErrNoRows
	}
	copied := *category
	return &copied, nil
}

type fakeUserRepo struct {
	st *fakeStore
}

func (r *fakeUserRepo) Create(_ context.Context, user model.User) (*model.User, error) {
	for _, existing := range r.st.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return nil, &pgconn.PgError{Code: uniqueViolation}
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = testNow
	r.st.users[user.ID] = &user
	copied := user
	return &copied, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := r.st.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range r.st.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) Update(_ context.Context, user model.User) error {
	for _, existing := range r.st.users {
		if existing.ID != user.ID && (existing.Username == user.Username || existing.Email == user.Email) {
			return &pgconn.PgError{Code: uniqueViolation}
		}
	}
	existing, ok := r.st.users[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	existing.Username = user.Username
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.Email = user.Email
	return nil
}

// fakeRedis keeps the cache in a map, answering with the real go-redis result
// types so the generic helpers work unchanged.
type fakeRedis struct {
	values map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: make(map[string]string)}
}

func (r *fakeRedis) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.values[key] = string(valueJSON)
	return nil
}

func (r *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	value, ok := r.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (r *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var deleted int64
	for _, key := range keys {
		if _, ok := r.values[key]; ok {
			delete(r.values, key)
			deleted++
		}
	}
	return redis.NewIntResult(deleted, nil)
}

func (r *fakeRedis) Keys(_ context.Context, pattern string) *redis.StringSliceCmd {
	var keys []string
	for key := range r.values {
		if matched, _ := path.Match(pattern, key); matched {
			keys = append(keys, key)
		}
	}
	return redis.NewStringSliceResult(keys, nil)
}

type testEnv struct {
	st       *fakeStore
	redis    *fakeRedis
	services *Service
}

func newTestEnv() *testEnv {
	st := newFakeStore()
	rds := newFakeRedis()
	repo := &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			Post:     &fakePostRepo{st: st},
			Comment:  &fakeCommentRepo{st: st},
			Category: &fakeCategoryRepo{st: st},
			User:     &fakeUserRepo{st: st},
		},
		Redis: &redisrepo.RedisRepository{Default: rds},
	}
	return &testEnv{
		st:       st,
		redis:    rds,
		services: New(zap.NewNop(), repo, fixedClock),
	}
}
