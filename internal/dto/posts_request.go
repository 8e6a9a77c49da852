package dto

import "time"

type CreatePostRequest struct {
	Title       string    `json:"title" binding:"required,min=2,max=256"`
	Text        string    `json:"text" binding:"required"`
	PubDate     time.Time `json:"pub_date" binding:"required"`
	CategoryID  *int64    `json:"category_id"`
	LocationID  *int64    `json:"location_id"`
	IsPublished bool      `json:"is_published"`
}

type UpdatePostRequest struct {
	Title       string    `json:"title" binding:"required,min=2,max=256"`
	Text        string    `json:"text" binding:"required"`
	PubDate     time.Time `json:"pub_date" binding:"required"`
	CategoryID  *int64    `json:"category_id"`
	LocationID  *int64    `json:"location_id"`
	IsPublished bool      `json:"is_published"`
}
