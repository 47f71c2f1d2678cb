package authz

import "github.com/anhbui5302/AnhBlogWebAPI/internal/models"

const IncompleteProfileMessage = "This account does not have the necessary info to access this page. " +
	"Update your info by sending a PATCH request to /updateinfo. In the request body provide your name as 'name', " +
	"phone number as 'phone' and occupation as 'occupation' in JSON format. Google users do not need to provide " +
	"a phone number. Facebook users do not need to provide an occupation."

type profileField struct {
	name  string
	value func(*models.User) string
}

var (
	fieldName       = profileField{"name", func(u *models.User) string { return u.Name }}
	fieldPhone      = profileField{"phone", func(u *models.User) string { return u.Phone }}
	fieldOccupation = profileField{"occupation", func(u *models.User) string { return u.Occupation }}
)

// requiredFields lists, per provider, the fields that must be non-empty.
// Providers missing from the table never have a complete profile.
var requiredFields = map[models.Provider][]profileField{
	models.ProviderGoogle:   {fieldName, fieldOccupation},
	models.ProviderFacebook: {fieldName, fieldPhone},
}

// IsComplete reports whether the stored profile satisfies the provider's rules.
// Values are compared as stored: no trimming.
func IsComplete(u *models.User) bool {
	if u == nil {
		return false
	}
	fields, ok := requiredFields[u.Provider]
	if !ok {
		return false
	}
	for _, f := range fields {
		if f.value(u) == "" {
			return false
		}
	}
	return true
}

// requiredFieldNames returns the names of the fields a provider requires, or
// nil for an unknown provider.
func requiredFieldNames(p models.Provider) []string {
	fields := requiredFields[p]
	if fields == nil {
		return nil
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}
