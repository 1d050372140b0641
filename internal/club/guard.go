package club

import (
	"github.com/readingclub/readingclub/internal/session"
)

// Route names a front-end screen.
type Route string

const (
	RouteLogin    Route = "login"
	RouteBook     Route = "book"
	RouteSettings Route = "settings"
)

// Sessions reports the live session, if any.
type Sessions interface {
	Current() (session.Session, bool)
}

// Guard decides which screen a navigation request actually lands on.
type Guard struct {
	Sessions Sessions
}

// Resolve maps a requested route to the one to show. Protected routes need a
// live session; the login screen is skipped when one exists; anything
// unknown goes home.
func (g Guard) Resolve(route Route) Route {
	_, signedIn := g.Sessions.Current()

	switch route {
	case RouteLogin:
		if signedIn {
			return RouteBook
		}
		return RouteLogin
	case RouteBook, RouteSettings:
		if !signedIn {
			return RouteLogin
		}
		return route
	default:
		return g.Resolve(RouteBook)
	}
}
