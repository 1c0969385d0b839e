package domain

import "strings"

// Tag labels tasks across lists. Names are unique and stored lowercase.
type Tag struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// TagName normalizes a user-provided tag name.
func TagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
