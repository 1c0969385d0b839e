package domain

import "time"

// User represents an account in the user directory. PasswordHash holds the
// hex-encoded SHA-256 digest of password+pepper+salt; Salt is fixed at
// account creation and opaque to everything but the verifier.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	Role         string    `json:"role"`
	Email        string    `json:"email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the credential-free shape embedded in sessions and responses.
type PublicUser struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
}

// Sanitize strips the digest and salt, leaving only what a client may see.
func (u *User) Sanitize() PublicUser {
	if u == nil {
		return PublicUser{}
	}
	return PublicUser{
		Username: u.Username,
		Role:     u.Role,
		Email:    u.Email,
	}
}
