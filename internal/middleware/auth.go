package middleware

import (
	"github.com/anhbui5302/AnhBlogWebAPI/internal/authz"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	userKey = "user"
	postKey = "post"
)

// Gate runs the authorization pipeline for one route. Every protected route
// is mounted behind exactly one Gate so the stage order lives in a single
// place (authz.Pipeline.Authorize).
func Gate(pipeline *authz.Pipeline, policy authz.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := pipeline.Authorize(c.Request.Context(), policy, authz.Request{
			Authorization: c.GetHeader("Authorization"),
			AuthorID:      c.Param("author_id"),
			PostID:        c.Param("post_id"),
		})
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(userKey, result.User)
		if result.Post != nil {
			c.Set(postKey, result.Post)
		}
		c.Next()
	}
}

// CurrentUser returns the account admitted by Gate.
func CurrentUser(c *gin.Context) *models.User {
	u, _ := c.Get(userKey)
	user, _ := u.(*models.User)
	return user
}

// CurrentPost returns the post checked by Gate, or nil on routes without an
// ownership stage.
func CurrentPost(c *gin.Context) *models.Post {
	p, _ := c.Get(postKey)
	post, _ := p.(*models.Post)
	return post
}
