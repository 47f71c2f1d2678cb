package handlers

import (
	"errors"
	"net/http"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/authz"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/middleware"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/store"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	accounts *store.AccountStore
}

func NewUserHandler(accounts *store.AccountStore) *UserHandler {
	return &UserHandler{accounts: accounts}
}

func (h *UserHandler) GetInfo(c *gin.Context) {
	c.JSON(http.StatusOK, newUserResponse(middleware.CurrentUser(c)))
}

// UpdateInfo overwrites the caller's name, phone and occupation. It is mounted
// without the profile stage, since this is how a profile gets completed.
func (h *UserHandler) UpdateInfo(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req authz.ProfileInput
	if err := bindJSON(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	if err := authz.ValidateProfile(user.Provider, req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	err := h.accounts.UpdateProfile(c.Request.Context(), user.ID, store.Profile{
		Name:       req.Name,
		Phone:      req.Phone,
		Occupation: req.Occupation,
	})
	if errors.Is(err, store.ErrNotFound) {
		err = authz.ErrUnknownIdentity
	}
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User info successfully updated!"})
}
