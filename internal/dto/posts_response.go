package dto

import "github.com/BloggingApp/blog-service/internal/model"

type PostsPage struct {
	Posts      []*model.FullPost `json:"posts"`
	Page       int               `json:"page"`
	TotalPages int64             `json:"total_pages"`
	Total      int64             `json:"total"`
}

type PostDetail struct {
	Post     model.FullPost       `json:"post"`
	Comments []*model.FullComment `json:"comments"`
}

type CategoryPage struct {
	Category model.Category `json:"category"`
	PostsPage
}

type ProfilePage struct {
	Profile model.UserAuthor `json:"profile"`
	PostsPage
}
