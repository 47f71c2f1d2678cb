package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/models"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/store"
)

type AccountFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

type PostFinder interface {
	FindPostByID(ctx context.Context, id uint) (*models.Post, error)
}

var (
	_ AccountFinder = (*store.AccountStore)(nil)
	_ PostFinder    = (*store.PostStore)(nil)
)

// Policy selects the optional stages a route needs. Identity and existence
// checks always run.
type Policy struct {
	CompleteProfile bool
	PostOwnership   bool
}

var (
	// PolicyAccount admits any existing account, complete or not.
	PolicyAccount = Policy{}
	// PolicyMember additionally requires a complete profile.
	PolicyMember = Policy{CompleteProfile: true}
	// PolicyPost additionally requires the path post to belong to the path author.
	PolicyPost = Policy{CompleteProfile: true, PostOwnership: true}
)

// Request is the part of an HTTP request the pipeline looks at.
type Request struct {
	Authorization string
	AuthorID      string
	PostID        string
}

// Result is what a passing request carries on to its handler.
type Result struct {
	User *models.User
	Post *models.Post
}

type Pipeline struct {
	identity *IdentityResolver
	accounts AccountFinder
	posts    PostFinder
}

func NewPipeline(identity *IdentityResolver, accounts AccountFinder, posts PostFinder) *Pipeline {
	return &Pipeline{
		identity: identity,
		accounts: accounts,
		posts:    posts,
	}
}

// Authorize runs the gates in their fixed order and stops at the first one
// that fails:
//
//  1. credential         -> 401 ErrUnauthenticated
//  2. account exists     -> 403 ErrUnknownIdentity
//  3. profile complete   -> 403 ErrIncompleteProfile   (policy.CompleteProfile)
//  4. post owned by path -> 404 ErrNotFound            (policy.PostOwnership)
//
// Request body validation (400) is left to the handler and therefore always
// happens after every gate here. Store failures are returned unwrapped from
// *Error so callers can tell them apart.
func (p *Pipeline) Authorize(ctx context.Context, policy Policy, req Request) (*Result, error) {
	userID, err := p.identity.Resolve(req.Authorization)
	if err != nil {
		return nil, err
	}

	user, err := p.accounts.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnknownIdentity
	}
	if err != nil {
		return nil, fmt.Errorf("load account %d: %w", userID, err)
	}
	result := &Result{User: user}

	if policy.CompleteProfile && !IsComplete(user) {
		return nil, ErrIncompleteProfile
	}

	if policy.PostOwnership {
		post, err := p.findPost(ctx, req.PostID)
		if err != nil {
			return nil, err
		}
		if err := CheckOwnership(req.AuthorID, post); err != nil {
			return nil, err
		}
		result.Post = post
	}

	return result, nil
}

// findPost returns nil without error when the id is malformed or unknown.
func (p *Pipeline) findPost(ctx context.Context, rawID string) (*models.Post, error) {
	postID, ok := ParseID(rawID)
	if !ok {
		return nil, nil
	}
	post, err := p.posts.FindPostByID(ctx, postID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load post %d: %w", postID, err)
	}
	return post, nil
}
