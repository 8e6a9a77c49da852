package redisrepo

import "fmt"

const (
	POST_KEY = "post:%d" // <postID>
	PROFILE_POSTS_KEY = "profile:%s-posts:%d" // <username>:<page>
	PROFILE_POSTS_PATTERN = "profile:%s-posts:*" // <username>
)

func PostKey(postID int64) string {
	return fmt.Sprintf(POST_KEY, postID)
}

func ProfilePostsKey(username string, page int) string {
	return fmt.Sprintf(PROFILE_POSTS_KEY, username, page)
}

func ProfilePostsPattern(username string) string {
	return fmt.Sprintf(PROFILE_POSTS_PATTERN, username)
}
