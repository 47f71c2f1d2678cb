package authz

import (
	"unicode"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/models"
)

type PostInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type ProfileInput struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Occupation string `json:"occupation"`
}

func ValidatePost(in PostInput) error {
	if in.Title == "" {
		return InvalidInput("Post title cannot be empty. Include a `title` field in the request body and make sure it is not empty.")
	}
	if in.Body == "" {
		return InvalidInput("Post body cannot be empty. Include a `body` field in the request body and make sure it is not empty.")
	}
	return nil
}

// ValidateProfile checks an update against the rules of the user's provider:
// name always, occupation for Google, a digits-only phone for Facebook. Google
// phones are optional and free-form.
func ValidateProfile(provider models.Provider, in ProfileInput) error {
	if in.Name == "" {
		return InvalidInput("Username cannot be empty. Include a `name` field in the request body and make sure it is not empty.")
	}
	if provider == models.ProviderGoogle && in.Occupation == "" {
		return InvalidInput("User occupation cannot be empty. Include a `occupation` field in the request body and make sure it is not empty.")
	}
	if provider == models.ProviderFacebook {
		if in.Phone == "" {
			return InvalidInput("User phone cannot be empty. Include a `phone` field in the request body and make sure it is not empty.")
		}
		if !isDigits(in.Phone) {
			return InvalidInput("User phone can only contain numbers.")
		}
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
