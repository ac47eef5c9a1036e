package services

import (
	"errors"
	"slices"
)

// ErrUnauthorized reports that the acting user is not among the owners
// allowed to mutate a resource.
var ErrUnauthorized = errors.New("not authorized")

// IsAuthorized reports whether the acting username appears in the owner
// candidate set. Post operations pass the single post owner; comment
// operations pass both the parent post's owner and the comment's author, so
// either party may act.
func IsAuthorized(username string, owners []string) bool {
	return slices.Contains(owners, username)
}
