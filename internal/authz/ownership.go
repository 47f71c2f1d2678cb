package authz

import (
	"strconv"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/models"
)

// CheckOwnership confirms that post exists and was written by claimedOwner.
// A missing post, a non-numeric claim and a mismatch all yield the same
// ErrNotFound.
func CheckOwnership(claimedOwner string, post *models.Post) error {
	if post == nil {
		return ErrNotFound
	}
	ownerID, ok := ParseID(claimedOwner)
	if !ok || ownerID != post.AuthorID {
		return ErrNotFound
	}
	return nil
}

// ParseID parses a positive decimal path id.
func ParseID(s string) (uint, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 || n != uint64(uint(n)) {
		return 0, false
	}
	return uint(n), true
}
