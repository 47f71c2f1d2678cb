package oauth

import (
	"context"
	"errors"
	"sort"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/models"
)

// ErrEmailUnavailable is returned by Exchange when the provider did not
// vouch for an email address.
var ErrEmailUnavailable = errors.New("oauth: email not available")

// Identity is what a provider tells us about the person who logged in.
type Identity struct {
	Provider models.Provider
	Email    string
}

// Provider is one third-party login. Implementations only talk to the
// provider; they never create accounts or issue credentials.
type Provider interface {
	// Slug is the path segment the provider is mounted on, e.g. "google".
	Slug() string
	Kind() models.Provider
	AuthCodeURL(state, verifier string) string
	Exchange(ctx context.Context, code, verifier string) (*Identity, error)
}

// Registry holds the configured providers by slug.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(list ...Provider) *Registry {
	m := make(map[string]Provider, len(list))
	for _, p := range list {
		m[p.Slug()] = p
	}
	return &Registry{providers: m}
}

func (r *Registry) Get(slug string) (Provider, bool) {
	p, ok := r.providers[slug]
	return p, ok
}

// Slugs lists registered providers in name order.
func (r *Registry) Slugs() []string {
	out := make([]string, 0, len(r.providers))
	for s := range r.providers {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
