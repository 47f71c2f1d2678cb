package handlers

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/authz"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const previewLength = 100

// bindJSON reads a JSON object body. Anything else is a 400.
func bindJSON(c *gin.Context, v any) error {
	if c.ContentType() != binding.MIMEJSON {
		return authz.InvalidInput("Request body must be JSON. Set the Content-Type header to application/json.")
	}
	if err := c.ShouldBindJSON(v); err != nil {
		return authz.InvalidInput("Request body is not a valid JSON object.")
	}
	return nil
}

type userResponse struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Occupation string          `json:"occupation"`
	Type       models.Provider `json:"type"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Occupation: u.Occupation,
		Type:       u.Provider,
	}
}

type postResponse struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Created    time.Time `json:"created"`
	AuthorID   uint      `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Likes      string    `json:"likes"`
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// likesSummary renders likers (most recent first) as one sentence.
func likesSummary(likers []models.User) string {
	switch len(likers) {
	case 0:
		return "No one has liked this post yet."
	case 1:
		return likers[0].Name + " liked this post."
	case 2:
		return likers[0].Name + " and " + likers[1].Name + " liked this post."
	default:
		return fmt.Sprintf("%s, %s and %d other people liked this post.", likers[0].Name, likers[1].Name, len(likers)-2)
	}
}
