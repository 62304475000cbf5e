package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/shule/core/session"
)

const sessionContextKey = "console_session"

// requireSession loads the persisted session and stashes it in the request
// context; unauthenticated requests are sent back to the login page.
func (s *server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		sess, err := s.deps.Store.Load(ctx.Request())
		if err != nil || !sess.Authenticated() {
			return ctx.Redirect(http.StatusSeeOther, "/")
		}
		ctx.Set(sessionContextKey, sess)
		return next(ctx)
	}
}

// requireRole bounces users onto their own dashboard when they hit a page
// belonging to another role.
func (s *server) requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			sess, ok := contextSession(ctx)
			if !ok {
				return ctx.Redirect(http.StatusSeeOther, "/")
			}
			if sess.User.Role != role {
				return ctx.Redirect(http.StatusSeeOther, session.DashboardPath(sess.User.Role))
			}
			return next(ctx)
		}
	}
}

func contextSession(ctx echo.Context) (session.Session, bool) {
	sess, ok := ctx.Get(sessionContextKey).(session.Session)
	return sess, ok
}
