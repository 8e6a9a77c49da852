package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID          int64     `json:"id"`
	AuthorID    uuid.UUID `json:"author_id"`
	CategoryID  *int64    `json:"category_id"`
	LocationID  *int64    `json:"location_id"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	PubDate     time.Time `json:"pub_date"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

type FullPost struct {
	Post     Post       `json:"post"`
	Author   UserAuthor `json:"author"`
	Category *Category  `json:"category"`
	Location *Location  `json:"location"`
}
