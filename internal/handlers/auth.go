package handlers

import (
	"errors"
	"net/http"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/authz"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/logger"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/middleware"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/models"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/oauth"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/services"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/store"

	"github.com/gin-gonic/gin"
)

var emailUnavailableMessages = map[models.Provider]string{
	models.ProviderGoogle:   "User email not available or not verified by Google.",
	models.ProviderFacebook: "User email not available. Login using another account with a valid email address.",
}

type AuthHandler struct {
	login        *oauth.Login
	accounts     *store.AccountStore
	tokenService *services.TokenService
}

func NewAuthHandler(login *oauth.Login, accounts *store.AccountStore, tokenService *services.TokenService) *AuthHandler {
	return &AuthHandler{
		login:        login,
		accounts:     accounts,
		tokenService: tokenService,
	}
}

// Login returns the provider URL the user has to open in a browser.
func (h *AuthHandler) Login(slug string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uri, err := h.login.Begin(c.Request.Context(), slug)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"URI":     uri,
			"message": "Access the URI below through a browser to login.",
		})
	}
}

// Callback finishes a login: it redeems the state, exchanges the code, finds
// or creates the account and issues a credential for it.
func (h *AuthHandler) Callback(slug string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		p, ok := h.login.Provider(slug)
		if !ok {
			middleware.NotFound(c)
			return
		}
		kind := p.Kind()

		if _, canceled := c.GetQuery("error"); canceled {
			middleware.AbortWithError(c, &authz.Error{
				Status:      http.StatusUnauthorized,
				Description: "User canceled " + string(kind) + " login. Try again at /" + slug + ".",
			})
			return
		}

		identity, err := h.login.Complete(ctx, slug, c.Query("state"), c.Query("code"))
		switch {
		case errors.Is(err, oauth.ErrUnknownFlow):
			middleware.AbortWithError(c, &authz.Error{
				Status:      http.StatusUnauthorized,
				Description: "Login session is invalid or has expired. Start again at /" + slug + ".",
			})
			return
		case errors.Is(err, oauth.ErrEmailUnavailable):
			middleware.AbortWithError(c, authz.InvalidInput(emailUnavailableMessages[kind]))
			return
		case err != nil:
			logger.Warn("oauth exchange failed", map[string]any{
				"request_id": middleware.RequestIDFrom(c),
				"provider":   slug,
				"error":      err.Error(),
			})
			middleware.AbortWithError(c, &authz.Error{
				Status:      http.StatusUnauthorized,
				Description: "Could not verify " + string(kind) + " login. Try again at /" + slug + ".",
			})
			return
		}

		user, created, err := h.accounts.FindOrCreate(ctx, identity.Email, identity.Provider)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		if created {
			logger.Info("account created", map[string]any{
				"user_id":  user.ID,
				"provider": string(user.Provider),
			})
		}

		token, _, err := h.tokenService.GenerateToken(user.ID)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful. Send the provided token as a bearer token in the header of your " +
				"HTTP request to the API to authenticate yourself.",
			"token": token,
		})
	}
}
