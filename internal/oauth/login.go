package oauth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

var ErrUnknownProvider = errors.New("oauth: provider not configured")

var (
	_ Provider  = (*Google)(nil)
	_ Provider  = (*Facebook)(nil)
	_ FlowStore = (*MemoryFlowStore)(nil)
	_ FlowStore = (*RedisFlowStore)(nil)
)

// Login drives the authorization code flow. Each Begin creates its own state
// and PKCE verifier; nothing about a login in progress is held in process
// globals.
type Login struct {
	registry *Registry
	flows    FlowStore
	now      func() time.Time
}

func NewLogin(registry *Registry, flows FlowStore) *Login {
	return &Login{
		registry: registry,
		flows:    flows,
		now:      time.Now,
	}
}

func (l *Login) Provider(slug string) (Provider, bool) {
	return l.registry.Get(slug)
}

// Begin records a new flow and returns the provider URL to send the user to.
func (l *Login) Begin(ctx context.Context, slug string) (string, error) {
	p, ok := l.registry.Get(slug)
	if !ok {
		return "", ErrUnknownProvider
	}

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	if err := l.flows.Save(ctx, state, Flow{
		Provider: slug,
		Verifier: verifier,
		Expires:  l.now().Add(FlowTTL),
	}); err != nil {
		return "", err
	}
	return p.AuthCodeURL(state, verifier), nil
}

// Complete redeems state and exchanges code. A state issued for another
// provider is rejected like an unknown one.
func (l *Login) Complete(ctx context.Context, slug, state, code string) (*Identity, error) {
	p, ok := l.registry.Get(slug)
	if !ok {
		return nil, ErrUnknownProvider
	}
	if state == "" {
		return nil, ErrUnknownFlow
	}

	flow, err := l.flows.Take(ctx, state)
	if err != nil {
		return nil, err
	}
	if flow.Provider != slug {
		return nil, ErrUnknownFlow
	}
	return p.Exchange(ctx, code, flow.Verifier)
}

// Slugs lists the providers logins can be started for.
func (l *Login) Slugs() []string {
	return l.registry.Slugs()
}
