package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/authz"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), AccessLog())
	r.GET("/", handler)
	return r
}

func serve(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	var seen string
	r := newRouter(func(c *gin.Context) {
		seen = RequestIDFrom(c)
		c.Status(http.StatusNoContent)
	})

	w := serve(r, "abc-123")
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", seen)

	w = serve(r, "")
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	assert.Equal(t, w.Header().Get(RequestIDHeader), seen)
}

func TestAbortWithError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorBody
	}{
		{
			name: "rejection",
			err:  authz.ErrIncompleteProfile,
			want: ErrorBody{Code: 403, Name: "Forbidden", Description: authz.IncompleteProfileMessage},
		},
		{
			name: "invalid input",
			err:  authz.InvalidInput("bad"),
			want: ErrorBody{Code: 400, Name: "Bad Request", Description: "bad"},
		},
		{
			name: "unexpected",
			err:  errors.New("disk on fire"),
			want: ErrorBody{
				Code:        500,
				Name:        "Internal Server Error",
				Description: "The server encountered an internal error and was unable to complete your request.",
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			r := newRouter(func(c *gin.Context) {
				AbortWithError(c, tc.err)
				called = c.IsAborted()
			})

			w := serve(r, "")
			require.Equal(t, tc.want.Code, w.Code)
			assert.True(t, called)

			var got ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tc.want, got)
			assert.NotContains(t, w.Body.String(), "disk on fire")
		})
	}
}
