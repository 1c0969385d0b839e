package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_Timestamps(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	session := NewSession(PublicUser{Username: "alice"}, now, 24*time.Hour, true)

	assert.Equal(t, now.UnixMilli(), session.LoginTime)
	assert.Equal(t, now.Add(24*time.Hour).UnixMilli(), session.ExpiresAt)
	assert.True(t, session.RememberMe)
}

func TestIsExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	session := NewSession(PublicUser{}, now, time.Hour, false)

	assert.False(t, session.IsExpired(now))
	assert.False(t, session.IsExpired(now.Add(time.Hour)))
	assert.True(t, session.IsExpired(now.Add(time.Hour+time.Millisecond)))

	var nilSession *Session
	assert.True(t, nilSession.IsExpired(now))
}

func TestSession_CookieWireFormat(t *testing.T) {
	t.Parallel()

	session := Session{
		User:       PublicUser{Username: "admin", Role: "admin", Email: "admin@todolist.com"},
		LoginTime:  1700000000000,
		ExpiresAt:  1700086400000,
		RememberMe: true,
	}

	payload, err := json.Marshal(session)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"user": {"username":"admin","role":"admin","email":"admin@todolist.com"},
		"loginTime": 1700000000000,
		"expiresAt": 1700086400000,
		"rememberMe": true
	}`, string(payload))
}
