package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/internal/cookie"
	"github.com/todoflow/backend/repository"
)

// Config carries the knobs of the authentication flow.
type Config struct {
	Pepper          string
	SessionDuration time.Duration // lifetime of the session record
	CookieName      string
	CookieDays      int           // cookie lifetime when remember-me is set
	LoginDelay      time.Duration // artificial delay before verification
	LoginPath       string
}

func (c *Config) withDefaults() {
	if c.SessionDuration <= 0 {
		c.SessionDuration = 24 * time.Hour
	}
	if c.CookieName == "" {
		c.CookieName = "todolist_session"
	}
	if c.CookieDays <= 0 {
		c.CookieDays = 1
	}
	if c.LoginPath == "" {
		c.LoginPath = "/login"
	}
}

type UseCase struct {
	users  repository.UserDirectory
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

func New(users repository.UserDirectory, cfg Config, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.withDefaults()
	return &UseCase{
		users:  users,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Digest hashes the concatenation of password, pepper and salt, in that
// exact order, with SHA-256 and returns the lowercase hex string.
func Digest(password, pepper, salt string) string {
	sum := sha256.Sum256([]byte(password + pepper + salt))
	return hex.EncodeToString(sum[:])
}

// Verify checks the credentials against the user directory and returns the
// matching user with digest and salt stripped.
func (uc *UseCase) Verify(ctx context.Context, username, password string) (domain.PublicUser, error) {
	user, err := uc.users.FindByUsername(ctx, username)
	if err != nil {
		return domain.PublicUser{}, err
	}

	if Digest(password, uc.cfg.Pepper, user.Salt) != user.PasswordHash {
		return domain.PublicUser{}, domain.ErrInvalidPassword
	}

	return user.Sanitize(), nil
}

// Login runs the full flow: validation, the artificial delay, credential
// verification, and session creation. No cookie is written on failure.
func (uc *UseCase) Login(ctx context.Context, jar *cookie.Jar, username, password string, rememberMe bool) (domain.Session, error) {
	if username == "" {
		return domain.Session{}, domain.NewValidationError("username", "must not be empty")
	}
	if password == "" {
		return domain.Session{}, domain.NewValidationError("password", "must not be empty")
	}

	if err := uc.sleep(ctx); err != nil {
		return domain.Session{}, err
	}

	user, err := uc.Verify(ctx, username, password)
	if err != nil {
		uc.logger.Info("login rejected", zap.String("username", username), zap.Error(err))
		return domain.Session{}, err
	}

	session := uc.CreateSession(jar, user, rememberMe)
	uc.logger.Info("login accepted",
		zap.String("username", user.Username),
		zap.Bool("remember_me", rememberMe),
	)
	return session, nil
}

// CreateSession writes a fresh session record through the cookie store. The
// record expires SessionDuration after login regardless of rememberMe; only
// the cookie's own lifetime depends on the flag.
func (uc *UseCase) CreateSession(jar *cookie.Jar, user domain.PublicUser, rememberMe bool) domain.Session {
	session := domain.NewSession(user, uc.now(), uc.cfg.SessionDuration, rememberMe)

	payload, _ := json.Marshal(session)
	days := 0
	if rememberMe {
		days = uc.cfg.CookieDays
	}
	jar.Set(uc.cfg.CookieName, string(payload), days, cookie.Options{
		SameSite: cookie.SameSiteStrict,
	})
	return session
}

// GetSession reads and parses the session cookie. A missing cookie returns
// nil; a corrupt one is cleared and also reported as absent.
func (uc *UseCase) GetSession(jar *cookie.Jar) *domain.Session {
	raw, ok := jar.Get(uc.cfg.CookieName)
	if !ok {
		return nil
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		uc.logger.Warn("clearing malformed session cookie", zap.Error(err))
		uc.ClearSession(jar)
		return nil
	}
	return &session
}

// ClearSession deletes the session cookie.
func (uc *UseCase) ClearSession(jar *cookie.Jar) {
	jar.Delete(uc.cfg.CookieName, "")
}

// IsLoggedIn reports whether a live session exists. An expired session is
// cleared as a side effect before reporting false.
func (uc *UseCase) IsLoggedIn(jar *cookie.Jar) bool {
	session := uc.GetSession(jar)
	if session == nil {
		return false
	}
	if session.IsExpired(uc.now()) {
		uc.ClearSession(jar)
		return false
	}
	return true
}

// LoginPath exposes the configured login page path for navigation decisions.
func (uc *UseCase) LoginPath() string {
	return uc.cfg.LoginPath
}

func (uc *UseCase) sleep(ctx context.Context) error {
	if uc.cfg.LoginDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(uc.cfg.LoginDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
