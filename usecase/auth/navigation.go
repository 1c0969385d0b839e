package auth

import (
	"time"

	"github.com/todoflow/backend/domain"
)

// Decision is the outcome of the page-load guard: stay on the current page
// or redirect elsewhere.
type Decision struct {
	Redirect bool
	Target   string
}

// Stay reports whether the visitor may remain on the current page.
func (d Decision) Stay() bool {
	return !d.Redirect
}

// DecideNavigation is the guard's pure core, safe to invoke any number of
// times with the same outcome. An absent or expired session on a protected
// path redirects to the login page; the login page itself never redirects,
// which breaks the redirect loop.
func DecideNavigation(session *domain.Session, now time.Time, currentPath, loginPath string) Decision {
	if currentPath == loginPath {
		return Decision{}
	}
	if session == nil || session.IsExpired(now) {
		return Decision{Redirect: true, Target: loginPath}
	}
	return Decision{}
}
