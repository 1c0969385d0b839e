package domain

import "time"

// Session is the record carried inside the session cookie. Timestamps are
// epoch milliseconds to match the cookie wire format. ExpiresAt is always
// LoginTime plus the fixed session duration; the RememberMe flag only
// controls the lifetime of the cookie itself.
type Session struct {
	User       PublicUser `json:"user"`
	LoginTime  int64      `json:"loginTime"`
	ExpiresAt  int64      `json:"expiresAt"`
	RememberMe bool       `json:"rememberMe"`
}

// NewSession builds a session record for the given user.
func NewSession(user PublicUser, now time.Time, duration time.Duration, rememberMe bool) Session {
	return Session{
		User:       user,
		LoginTime:  now.UnixMilli(),
		ExpiresAt:  now.Add(duration).UnixMilli(),
		RememberMe: rememberMe,
	}
}

// IsExpired reports whether the reference time is strictly past ExpiresAt.
func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return reference.UnixMilli() > s.ExpiresAt
}
