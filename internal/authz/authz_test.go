package authz

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/models"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/services"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens map[string]uint

func (f fakeTokens) ValidateToken(token string) (*services.Claims, error) {
	id, ok := f[token]
	if !ok {
		return nil, services.ErrInvalidToken
	}
	return &services.Claims{UserID: id}, nil
}

type fakeAccounts map[uint]*models.User

func (f fakeAccounts) FindByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

type fakePosts map[uint]*models.Post

func (f fakePosts) FindPostByID(_ context.Context, id uint) (*models.Post, error) {
	p, ok := f[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return p, nil
}

type brokenAccounts struct{}

func (brokenAccounts) FindByID(context.Context, uint) (*models.User, error) {
	return nil, errors.New("connection reset")
}

func TestIsComplete(t *testing.T) {
	cases := []struct {
		name string
		user *models.User
		want bool
	}{
		{"nil", nil, false},
		{"google complete", &models.User{Provider: models.ProviderGoogle, Name: "A", Occupation: "Dev"}, true},
		{"google without occupation", &models.User{Provider: models.ProviderGoogle, Name: "A", Phone: "123"}, false},
		{"google without name", &models.User{Provider: models.ProviderGoogle, Occupation: "Dev"}, false},
		{"facebook complete", &models.User{Provider: models.ProviderFacebook, Name: "B", Phone: "0123"}, true},
		{"facebook without phone", &models.User{Provider: models.ProviderFacebook, Name: "B", Occupation: "Dev"}, false},
		{"unknown provider", &models.User{Provider: "Github", Name: "C", Phone: "1", Occupation: "Dev"}, false},
		{"whitespace counts as present", &models.User{Provider: models.ProviderGoogle, Name: " ", Occupation: " "}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsComplete(tc.user))
		})
	}
}

func TestRequiredFieldNames(t *testing.T) {
	assert.Equal(t, []string{"name", "occupation"}, requiredFieldNames(models.ProviderGoogle))
	assert.Equal(t, []string{"name", "phone"}, requiredFieldNames(models.ProviderFacebook))
	assert.Nil(t, requiredFieldNames("Twitter"))
}

func TestCheckOwnership(t *testing.T) {
	post := &models.Post{ID: 3, AuthorID: 5}

	assert.NoError(t, CheckOwnership("5", post))
	for _, claim := range []string{"6", "abc", "", "-5", "0", "5.0"} {
		assert.Same(t, ErrNotFound, CheckOwnership(claim, post), claim)
	}
	assert.Same(t, ErrNotFound, CheckOwnership("5", nil))
}

func TestResolve(t *testing.T) {
	r := NewIdentityResolver(fakeTokens{"good": 7})

	id, err := r.Resolve("Bearer good")
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	id, err = r.Resolve("bearer   good ")
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	for _, header := range []string{"", "good", "Bearer", "Bearer ", "Basic good", "Bearer bad"} {
		_, err := r.Resolve(header)
		assert.Same(t, ErrUnauthenticated, err, header)
	}
}

func newPipeline() *Pipeline {
	tokens := fakeTokens{
		"google":     1,
		"facebook":   2,
		"incomplete": 3,
		"ghost":      99,
	}
	accounts := fakeAccounts{
		1: {ID: 1, Provider: models.ProviderGoogle, Name: "G", Occupation: "Dev"},
		2: {ID: 2, Provider: models.ProviderFacebook, Name: "F", Phone: "123"},
		3: {ID: 3, Provider: models.ProviderGoogle, Name: "I"},
	}
	posts := fakePosts{
		10: {ID: 10, AuthorID: 1, Title: "t", Body: "b", CreatedAt: time.Now()},
	}
	return NewPipeline(NewIdentityResolver(tokens), accounts, posts)
}

func TestAuthorizeOrder(t *testing.T) {
	p := newPipeline()
	ctx := context.Background()

	cases := []struct {
		name   string
		policy Policy
		req    Request
		want   *Error
	}{
		{"no credential beats everything", PolicyPost, Request{AuthorID: "x", PostID: "y"}, ErrUnauthenticated},
		{"unknown identity", PolicyPost, Request{Authorization: "Bearer ghost", AuthorID: "1", PostID: "10"}, ErrUnknownIdentity},
		{"incomplete before missing post", PolicyPost, Request{Authorization: "Bearer incomplete", AuthorID: "1", PostID: "404"}, ErrIncompleteProfile},
		{"missing post", PolicyPost, Request{Authorization: "Bearer facebook", AuthorID: "1", PostID: "404"}, ErrNotFound},
		{"non-numeric post", PolicyPost, Request{Authorization: "Bearer facebook", AuthorID: "1", PostID: "abc"}, ErrNotFound},
		{"wrong author", PolicyPost, Request{Authorization: "Bearer facebook", AuthorID: "2", PostID: "10"}, ErrNotFound},
		{"non-numeric author", PolicyPost, Request{Authorization: "Bearer facebook", AuthorID: "me", PostID: "10"}, ErrNotFound},
		{"member gate rejects incomplete", PolicyMember, Request{Authorization: "Bearer incomplete"}, ErrIncompleteProfile},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := p.Authorize(ctx, tc.policy, tc.req)
			assert.Nil(t, res)
			assert.Same(t, tc.want, err)
		})
	}
}

func TestAuthorizePasses(t *testing.T) {
	p := newPipeline()
	ctx := context.Background()

	res, err := p.Authorize(ctx, PolicyAccount, Request{Authorization: "Bearer incomplete"})
	require.NoError(t, err)
	assert.Equal(t, uint(3), res.User.ID)
	assert.Nil(t, res.Post)

	res, err = p.Authorize(ctx, PolicyPost, Request{Authorization: "Bearer facebook", AuthorID: "1", PostID: "10"})
	require.NoError(t, err)
	assert.Equal(t, uint(2), res.User.ID)
	require.NotNil(t, res.Post)
	assert.Equal(t, uint(10), res.Post.ID)
}

func TestAuthorizeStoreFailure(t *testing.T) {
	p := NewPipeline(NewIdentityResolver(fakeTokens{"t": 1}), brokenAccounts{}, fakePosts{})

	_, err := p.Authorize(context.Background(), PolicyMember, Request{Authorization: "Bearer t"})
	require.Error(t, err)
	_, ok := AsError(err)
	assert.False(t, ok)
}

func TestErrorNames(t *testing.T) {
	assert.Equal(t, "Unauthorized", ErrUnauthenticated.Name())
	assert.Equal(t, "Forbidden", ErrIncompleteProfile.Name())
	assert.Equal(t, "Not Found", ErrNotFound.Name())
	assert.Equal(t, http.StatusBadRequest, ErrAlreadyLiked.Status)

	e, ok := AsError(ErrNotLiked)
	require.True(t, ok)
	assert.Equal(t, "You have not liked the post!", e.Description)
}

func TestValidatePost(t *testing.T) {
	assert.NoError(t, ValidatePost(PostInput{Title: "t", Body: "b"}))

	err := ValidatePost(PostInput{Body: "b"})
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, e.Status)
	assert.Contains(t, e.Description, "title")

	e, ok = AsError(ValidatePost(PostInput{Title: "t"}))
	require.True(t, ok)
	assert.Contains(t, e.Description, "body")
}

func TestValidateProfile(t *testing.T) {
	cases := []struct {
		name     string
		provider models.Provider
		in       ProfileInput
		wantErr  string
	}{
		{"google ok", models.ProviderGoogle, ProfileInput{Name: "A", Occupation: "Dev"}, ""},
		{"google ok with phone", models.ProviderGoogle, ProfileInput{Name: "A", Occupation: "Dev", Phone: "0987"}, ""},
		{"facebook ok", models.ProviderFacebook, ProfileInput{Name: "B", Phone: "0123"}, ""},
		{"missing name", models.ProviderFacebook, ProfileInput{Phone: "1"}, "Username"},
		{"google missing occupation", models.ProviderGoogle, ProfileInput{Name: "A"}, "occupation"},
		{"facebook missing phone", models.ProviderFacebook, ProfileInput{Name: "B", Occupation: "Dev"}, "phone"},
		{"phone with letters", models.ProviderFacebook, ProfileInput{Name: "B", Phone: "12a"}, "numbers"},
		{"google phone is free-form", models.ProviderGoogle, ProfileInput{Name: "A", Occupation: "Dev", Phone: "+84 123"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateProfile(tc.provider, tc.in)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			e, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, e.Status)
			assert.Contains(t, e.Description, tc.wantErr)
		})
	}
}
