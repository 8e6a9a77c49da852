package service

import "errors"

var (
	ErrInternal = errors.New("internal server error")
	ErrPostNotFound = errors.New("post not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrUserNotFound = errors.New("user not found")
	ErrNotPostAuthor = errors.New("user is not the post author")
	ErrNotCommentAuthor = errors.New("user is not the comment author")
	ErrUsernameOrEmailTaken = errors.New("username or email is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
