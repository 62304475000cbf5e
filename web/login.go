package web

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/session"
)

type loginInput struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (li *loginInput) Validate() error {
	li.Username = core.CleanString(li.Username, true /* lower */)
	return core.Validate.Struct(li)
}

func (s *server) loginPage(ctx echo.Context) error {
	// already signed in: straight to the dashboard
	if sess, err := s.deps.Store.Load(ctx.Request()); err == nil && sess.Authenticated() {
		return ctx.Redirect(http.StatusSeeOther, session.DashboardPath(sess.User.Role))
	}
	return ctx.Render(http.StatusOK, "login.html", loginView{AppName: s.deps.Conf.AppName})
}

// login validates the submitted credentials locally before any API call goes
// out, then authenticates against the school API and persists the session.
func (s *server) login(ctx echo.Context) error {
	in := new(loginInput)
	if err := ctx.Bind(in); err != nil {
		return err
	}

	if err := in.Validate(); err != nil {
		flds := fieldErrors(err)
		if flds == nil {
			return err
		}
		view := loginView{AppName: s.deps.Conf.AppName, Username: in.Username, FieldErrors: flds}
		return ctx.Render(http.StatusBadRequest, "login.html", view)
	}

	sess, err := s.deps.Auth.Login(ctx.Request().Context(), in.Username, in.Password)
	if err != nil {
		view := loginView{AppName: s.deps.Conf.AppName, Username: in.Username, Error: err.Error()}
		return ctx.Render(http.StatusUnauthorized, "login.html", view)
	}

	if err = s.deps.Store.Save(ctx.Response(), ctx.Request(), sess); err != nil {
		// a store that cannot persist sessions fails every sign-in the
		// same way; stop the server instead of limping on
		return core.NewShutdownError(fmt.Sprintf("session store unusable: %v", err))
	}
	return ctx.Redirect(http.StatusSeeOther, session.DashboardPath(sess.User.Role))
}

func (s *server) logout(ctx echo.Context) error {
	if sess, err := s.deps.Store.Load(ctx.Request()); err == nil {
		s.state.drop(sess)
	}
	if err := s.deps.Store.Clear(ctx.Response(), ctx.Request()); err != nil {
		return errors.Wrap(err, "clearing session")
	}
	return ctx.Redirect(http.StatusSeeOther, "/")
}
