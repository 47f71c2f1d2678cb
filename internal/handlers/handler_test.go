package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLikesSummary(t *testing.T) {
	users := func(names ...string) []models.User {
		out := make([]models.User, len(names))
		for i, n := range names {
			out[i] = models.User{Name: n}
		}
		return out
	}

	assert.Equal(t, "No one has liked this post yet.", likesSummary(nil))
	assert.Equal(t, "A liked this post.", likesSummary(users("A")))
	assert.Equal(t, "A and B liked this post.", likesSummary(users("A", "B")))
	assert.Equal(t, "A, B and 1 other people liked this post.", likesSummary(users("A", "B", "C")))
	assert.Equal(t, "A, B and 3 other people liked this post.", likesSummary(users("A", "B", "C", "D", "E")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", previewLength))
	assert.Equal(t, strings.Repeat("x", 100), truncate(strings.Repeat("x", 150), previewLength))
	assert.Equal(t, "héllo", truncate("héllo wörld", 5))
}

func TestQueryInt(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[string]int{
		"":                           5,
		"?n=":                        5,
		"?n=7":                       7,
		"?n=0":                       5,
		"?n=-2":                      5,
		"?n=%2B3":                    5,
		"?n=text":                    5,
		"?n=3.5":                     5,
		"?n=012":                     12,
		"?n=1000000":                 1000000,
		"?n=1000001":                 5,
		"?n=9223372036854775807":     5,
		"?n=99999999999999999999999": 5,
	}
	for query, want := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/"+query, nil)
		assert.Equal(t, want, queryInt(c, "n", 5), query)
	}
}
