package main

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/core/session"
	dummyapi "github.com/trezcool/shule/services/schoolapi/dummy"
)

const tokenLifetime = 24 * time.Hour

var (
	errInvalidCredentials = echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	errAdminRequired      = echo.NewHTTPError(http.StatusForbidden, "Admin access required")
	errMissingToken       = echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed jwt")
	errInvalidToken       = echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired jwt")
)

// claims represents the authorization claims transmitted via a JWT.
type claims struct {
	jwt.StandardClaims
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

type account struct {
	hash []byte
	user session.User
}

type api struct {
	conf     *core.Config
	svc      *dummyapi.Service
	accounts map[string]account
	nextUID  int
}

func newAPI(conf *core.Config, svc *dummyapi.Service) *api {
	return &api{
		conf:     conf,
		svc:      svc,
		accounts: make(map[string]account),
	}
}

func (a *api) addAccount(username, password string, usr session.User) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.nextUID++
	usr.ID = a.nextUID
	a.accounts[core.CleanString(username, true /* lower */)] = account{hash: hash, user: usr}
	return nil
}

func (a *api) server() *echo.Echo {
	app := echo.New()
	app.Pre(middleware.RemoveTrailingSlash())
	if !a.conf.TestMode {
		app.Use(middleware.Logger())
	}
	app.Debug = a.conf.Debug

	app.POST("/api/auth/login", a.login)

	g := app.Group("/api", a.jwtAuth, a.adminRequired)

	g.GET("/students", a.listStudents)
	g.POST("/students", a.createStudent)
	g.PUT("/students/:id", a.updateStudent)
	g.DELETE("/students/:id", a.deleteStudent)

	g.GET("/teachers", a.listTeachers)
	g.POST("/teachers", a.createTeacher)
	g.PUT("/teachers/:id", a.updateTeacher)
	g.DELETE("/teachers/:id", a.deleteTeacher)

	g.GET("/courses", a.listCourses)
	g.POST("/courses", a.createCourse)
	g.PUT("/courses/:id", a.updateCourse)
	g.DELETE("/courses/:id", a.deleteCourse)

	return app
}

func (a *api) login(ctx echo.Context) error {
	in := new(struct {
		Username string `json:"username"`
		Password string `json:"password"`
	})
	if err := ctx.Bind(in); err != nil {
		return err
	}

	acc, ok := a.accounts[core.CleanString(in.Username, true /* lower */)]
	if !ok {
		return errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(in.Password)); err != nil {
		return errInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    a.conf.AppName,
			Subject:   strconv.Itoa(acc.user.ID),
			ExpiresAt: now.Add(tokenLifetime).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username: acc.user.Username,
		Email:    acc.user.Email,
		Role:     acc.user.Role,
	})
	signed, err := token.SignedString([]byte(a.conf.SecretKey))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"token": signed, "user": acc.user})
}

// jwtAuth verifies the bearer token and stashes it in the context under
// "userToken".
func (a *api) jwtAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return errMissingToken
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.ParseWithClaims(raw, new(claims), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(a.conf.SecretKey), nil
		})
		if err != nil || !token.Valid {
			return errInvalidToken
		}
		ctx.Set("userToken", token)
		return next(ctx)
	}
}

func (a *api) adminRequired(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		token, ok := ctx.Get("userToken").(*jwt.Token)
		if !ok {
			return errAdminRequired
		}
		cl, ok := token.Claims.(*claims)
		if !ok || cl.Role != session.RoleAdmin {
			return errAdminRequired
		}
		return next(ctx)
	}
}

func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return id, nil
}

func notFound(err error) error {
	return echo.NewHTTPError(http.StatusNotFound, err.Error())
}

// badRequestOr maps service validation failures to 400s and passes anything
// else through.
func badRequestOr(err error) error {
	if vErr, ok := errors.Cause(err).(*core.ValidationError); ok {
		return echo.NewHTTPError(http.StatusBadRequest, vErr.Error())
	}
	return err
}

func (a *api) listStudents(ctx echo.Context) error {
	students, err := a.svc.Students(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, students)
}

func (a *api) createStudent(ctx echo.Context) error {
	st := new(school.Student)
	if err := ctx.Bind(st); err != nil {
		return err
	}
	created, err := a.svc.CreateStudent(ctx.Request().Context(), *st)
	if err != nil {
		return badRequestOr(err)
	}
	return ctx.JSON(http.StatusCreated, created)
}

func (a *api) updateStudent(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	st := new(school.Student)
	if err = ctx.Bind(st); err != nil {
		return err
	}
	st.ID = id
	updated, err := a.svc.UpdateStudent(ctx.Request().Context(), *st)
	if err != nil {
		return notFound(err)
	}
	return ctx.JSON(http.StatusOK, updated)
}

func (a *api) deleteStudent(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = a.svc.DeleteStudent(ctx.Request().Context(), id); err != nil {
		return notFound(err)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Student deleted successfully"})
}

func (a *api) listTeachers(ctx echo.Context) error {
	teachers, err := a.svc.Teachers(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (a *api) createTeacher(ctx echo.Context) error {
	tc := new(school.Teacher)
	if err := ctx.Bind(tc); err != nil {
		return err
	}
	created, err := a.svc.CreateTeacher(ctx.Request().Context(), *tc)
	if err != nil {
		return badRequestOr(err)
	}
	return ctx.JSON(http.StatusCreated, created)
}

func (a *api) updateTeacher(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	tc := new(school.Teacher)
	if err = ctx.Bind(tc); err != nil {
		return err
	}
	tc.ID = id
	updated, err := a.svc.UpdateTeacher(ctx.Request().Context(), *tc)
	if err != nil {
		return notFound(err)
	}
	return ctx.JSON(http.StatusOK, updated)
}

func (a *api) deleteTeacher(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = a.svc.DeleteTeacher(ctx.Request().Context(), id); err != nil {
		return notFound(err)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Teacher deleted successfully"})
}

func (a *api) listCourses(ctx echo.Context) error {
	courses, err := a.svc.Courses(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (a *api) createCourse(ctx echo.Context) error {
	crs := new(school.Course)
	if err := ctx.Bind(crs); err != nil {
		return err
	}
	created, err := a.svc.CreateCourse(ctx.Request().Context(), *crs)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, created)
}

func (a *api) updateCourse(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	crs := new(school.Course)
	if err = ctx.Bind(crs); err != nil {
		return err
	}
	crs.ID = id
	updated, err := a.svc.UpdateCourse(ctx.Request().Context(), *crs)
	if err != nil {
		return notFound(err)
	}
	return ctx.JSON(http.StatusOK, updated)
}

func (a *api) deleteCourse(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = a.svc.DeleteCourse(ctx.Request().Context(), id); err != nil {
		return notFound(err)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Course deleted successfully"})
}
