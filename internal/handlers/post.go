package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/authz"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/middleware"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/models"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/store"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage    = 1
	defaultPerPage = 5
	maxQueryInt    = 1_000_000
)

type PostHandler struct {
	accounts *store.AccountStore
	posts    *store.PostStore
}

func NewPostHandler(accounts *store.AccountStore, posts *store.PostStore) *PostHandler {
	return &PostHandler{
		accounts: accounts,
		posts:    posts,
	}
}

// GetPosts is the home page: every author's posts, newest first.
func (h *PostHandler) GetPosts(c *gin.Context) {
	page := queryInt(c, "page", defaultPage)
	perPage := queryInt(c, "perpage", defaultPerPage)

	posts, err := h.posts.ListPosts(c.Request.Context(), (page-1)*perPage, perPage)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	out, err := h.previews(c, posts)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":     out,
		"next_page": fmt.Sprintf("/?page=%d&perpage=%d", page+1, perPage),
	})
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req authz.PostInput
	if err := bindJSON(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	if err := authz.ValidatePost(req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	post, err := h.posts.InsertPost(c.Request.Context(), user.ID, req.Title, req.Body)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "New post created!",
		"post_id": post.ID,
	})
}

// GetAuthorPosts lists one author's posts. An author id that is not a number
// or names no account is a 404.
func (h *PostHandler) GetAuthorPosts(c *gin.Context) {
	ctx := c.Request.Context()

	authorID, ok := authz.ParseID(c.Param("author_id"))
	if !ok {
		middleware.AbortWithError(c, authz.ErrAuthorNotFound)
		return
	}
	if _, err := h.accounts.FindByID(ctx, authorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = authz.ErrAuthorNotFound
		}
		middleware.AbortWithError(c, err)
		return
	}

	posts, err := h.posts.ListPostsByAuthor(ctx, authorID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	out, err := h.previews(c, posts)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": out})
}

func (h *PostHandler) GetPost(c *gin.Context) {
	post := middleware.CurrentPost(c)

	likers, err := h.posts.ListLikers(c.Request.Context(), post.ID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, postResponse{
		ID:         post.ID,
		Title:      post.Title,
		Body:       post.Body,
		Created:    post.CreatedAt,
		AuthorID:   post.AuthorID,
		AuthorName: post.Author.Name,
		Likes:      likesSummary(likers),
	})
}

func (h *PostHandler) LikePost(c *gin.Context) {
	user := middleware.CurrentUser(c)
	post := middleware.CurrentPost(c)

	err := h.posts.InsertLike(c.Request.Context(), post.ID, user.ID)
	if errors.Is(err, store.ErrAlreadyLiked) {
		err = authz.ErrAlreadyLiked
	}
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Liked the post!"})
}

func (h *PostHandler) UnlikePost(c *gin.Context) {
	user := middleware.CurrentUser(c)
	post := middleware.CurrentPost(c)

	err := h.posts.DeleteLike(c.Request.Context(), post.ID, user.ID)
	if errors.Is(err, store.ErrNotLiked) {
		err = authz.ErrNotLiked
	}
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed like from post!"})
}

func (h *PostHandler) GetLikes(c *gin.Context) {
	post := middleware.CurrentPost(c)

	likers, err := h.posts.ListLikers(c.Request.Context(), post.ID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	users := make([]userResponse, len(likers))
	for i := range likers {
		users[i] = newUserResponse(&likers[i])
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// previews shortens each body and attaches its likes summary.
func (h *PostHandler) previews(c *gin.Context, posts []models.Post) ([]postResponse, error) {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		likers, err := h.posts.ListLikers(c.Request.Context(), p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, postResponse{
			ID:         p.ID,
			Title:      p.Title,
			Body:       truncate(p.Body, previewLength),
			Created:    p.CreatedAt,
			AuthorID:   p.AuthorID,
			AuthorName: p.Author.Name,
			Likes:      likesSummary(likers),
		})
	}
	return out, nil
}

// queryInt reads a positive decimal query value up to maxQueryInt. Missing,
// empty, malformed or larger values fall back to def, which keeps the offset
// and next page arithmetic from overflowing.
func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	for _, r := range raw {
		if r < '0' || r > '9' {
			return def
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxQueryInt {
		return def
	}
	return n
}
