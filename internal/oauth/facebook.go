package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

const facebookGraphMe = "https://graph.facebook.com/me"

type Facebook struct {
	config   *oauth2.Config
	graphURL string
}

func NewFacebook(clientID, clientSecret, redirectURL string) (*Facebook, error) {
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("facebook oauth config missing required fields")
	}
	return &Facebook{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     facebook.Endpoint,
			Scopes:       []string{"email"},
		},
		graphURL: facebookGraphMe,
	}, nil
}

func (f *Facebook) Slug() string { return "facebook" }

func (f *Facebook) Kind() models.Provider { return models.ProviderFacebook }

func (f *Facebook) AuthCodeURL(state, verifier string) string {
	return f.config.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
}

// Exchange trades the code for an access token and asks the Graph API for the
// account's email. Facebook accounts registered by phone have none.
func (f *Facebook) Exchange(ctx context.Context, code, verifier string) (*Identity, error) {
	token, err := f.config.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("facebook token exchange: %w", err)
	}

	u, err := url.Parse(f.graphURL)
	if err != nil {
		return nil, fmt.Errorf("facebook graph url: %w", err)
	}
	q := u.Query()
	q.Set("fields", "email")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("facebook userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("facebook userinfo: unexpected status %d", resp.StatusCode)
	}

	var me struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return nil, fmt.Errorf("facebook userinfo decode: %w", err)
	}
	if me.Email == "" {
		return nil, ErrEmailUnavailable
	}
	return &Identity{Provider: models.ProviderFacebook, Email: me.Email}, nil
}
