package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/todoflow/backend/domain"
)

func liveSession(now time.Time) *domain.Session {
	return &domain.Session{
		User:      domain.PublicUser{Username: "alice"},
		LoginTime: now.UnixMilli(),
		ExpiresAt: now.Add(time.Hour).UnixMilli(),
	}
}

func TestDecideNavigation_NoSessionRedirects(t *testing.T) {
	t.Parallel()

	now := time.Now()
	d := DecideNavigation(nil, now, "/", "/login")
	assert.True(t, d.Redirect)
	assert.Equal(t, "/login", d.Target)
}

func TestDecideNavigation_ExpiredSessionRedirects(t *testing.T) {
	t.Parallel()

	now := time.Now()
	session := liveSession(now)
	session.ExpiresAt = now.Add(-time.Minute).UnixMilli()

	d := DecideNavigation(session, now, "/", "/login")
	assert.True(t, d.Redirect)
}

func TestDecideNavigation_LiveSessionStays(t *testing.T) {
	t.Parallel()

	now := time.Now()
	d := DecideNavigation(liveSession(now), now, "/", "/login")
	assert.True(t, d.Stay())
}

func TestDecideNavigation_LoginPageNeverRedirects(t *testing.T) {
	t.Parallel()

	now := time.Now()

	// Without a session the login page must not bounce to itself.
	d := DecideNavigation(nil, now, "/login", "/login")
	assert.True(t, d.Stay())

	// With a session it still stays: leaving is the visitor's choice.
	d = DecideNavigation(liveSession(now), now, "/login", "/login")
	assert.True(t, d.Stay())
}

func TestDecideNavigation_ExactExpiryStillLive(t *testing.T) {
	t.Parallel()

	now := time.Now()
	session := liveSession(now)
	session.ExpiresAt = now.UnixMilli()

	d := DecideNavigation(session, now, "/", "/login")
	assert.True(t, d.Stay())
}
