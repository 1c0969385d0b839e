package domain

import (
	"strings"
	"time"
)

// Share permissions.
const (
	PermissionView = "view"
	PermissionEdit = "edit"
)

// Share records one grant of access to a list.
type Share struct {
	Username   string    `json:"username"`
	Permission string    `json:"permission"`
	SharedAt   time.Time `json:"sharedAt"`
}

// List groups tasks under a display name and color. The ID is derived from
// the name, so two lists with names differing only in case collide.
type List struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Owner  string  `json:"owner,omitempty"`
	Shares []Share `json:"shares,omitempty"`
}

// ListID derives the identifier for a list name: lowercase, runs of
// whitespace collapsed to single hyphens.
func ListID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// SharedWith reports whether the list has a share record for username.
func (l *List) SharedWith(username string) bool {
	if l == nil {
		return false
	}
	for _, s := range l.Shares {
		if s.Username == username {
			return true
		}
	}
	return false
}

// ValidPermission reports whether p is one of the supported share permissions.
func ValidPermission(p string) bool {
	return p == PermissionView || p == PermissionEdit
}
