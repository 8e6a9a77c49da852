package dto

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,min=1"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required,min=1"`
}
