package web

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/core/session"
)

type (
	ServerDeps struct {
		Conf   *core.Config
		Logger core.Logger
		Store  session.Store
		Auth   session.Authenticator

		// Directory returns an API directory bound to the session token.
		Directory func(token string) school.Directory
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
		Shutdown(context.Context) error
		Close() error
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		state    *consoleState
		errCh    chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		state:    newConsoleState(deps.Directory),
		errCh:    make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.Renderer = newRenderer()

	s.app.GET("/", s.loginPage)
	s.app.POST("/login", s.login)
	s.app.POST("/logout", s.logout)

	authed := s.app.Group("", s.requireSession)
	authed.GET("/dashboard", s.portal(""))
	for _, role := range []string{
		session.RoleTeacher,
		session.RoleStudent,
		session.RoleParent,
		session.RoleStaff,
		session.RoleInvestor,
	} {
		authed.GET("/"+role+"/dashboard", s.portal(role), s.requireRole(role))
	}

	admin := s.app.Group("/admin", s.requireSession, s.requireRole(session.RoleAdmin))
	admin.GET("/dashboard", s.adminDashboard)
	registerStudentRoutes(admin, s)
	registerTeacherRoutes(admin, s)
	registerCourseRoutes(admin, s)
}

// Start runs the listener; it blocks until the listener stops and reports the
// outcome on Errors().
func (s *server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.errCh <- s.app.Start(s.deps.Conf.Address())
}

func (s *server) Errors() <-chan error { return s.errCh }

func (s *server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
