package web_test

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"syscall"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/session"
	logsvc "github.com/trezcool/shule/services/logger"
	dummyapi "github.com/trezcool/shule/services/schoolapi/dummy"
	inmemstore "github.com/trezcool/shule/storage/session/inmem"
	testutil "github.com/trezcool/shule/tests"
	"github.com/trezcool/shule/web"
)

type countingAuth struct {
	svc   *dummyapi.Service
	calls int
}

func (ca *countingAuth) Login(ctx context.Context, username, password string) (session.Session, error) {
	ca.calls++
	return ca.svc.Login(ctx, username, password)
}

type fixture struct {
	app   web.Server
	store *inmemstore.Store
	api   *dummyapi.Service
	auth  *countingAuth
}

func setup(t *testing.T) *fixture {
	t.Helper()

	api := testutil.NewSchoolAPI()
	auth := &countingAuth{svc: api}
	store := inmemstore.NewStore("shule_session")

	logger := logsvc.NewConsoleLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags))
	logger.Enable(false)

	conf := &core.Config{AppName: "Shule", Debug: true, TestMode: true}
	app := web.NewServer(web.ServerDeps{
		Conf:      conf,
		Logger:    logger,
		Store:     store,
		Auth:      auth,
		Directory: api.Directory,
	})
	return &fixture{app: app, store: store, api: api, auth: auth}
}

func (f *fixture) do(method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.app.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	rec := f.do(http.MethodPost, "/login", url.Values{"username": {username}, "password": {password}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login: got status %d; want %d", rec.Code, http.StatusSeeOther)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login: no session cookie set")
	}
	return cookies[0]
}

func TestLoginPage(t *testing.T) {
	f := setup(t)

	rec := f.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign in")
}

func TestLoginEmptyFieldsSkipAPI(t *testing.T) {
	f := setup(t)

	rec := f.do(http.MethodPost, "/login", url.Values{"username": {""}, "password": {""}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "this field is required")
	assert.Equal(t, 0, f.auth.calls, "no API call should go out on empty credentials")
	assert.Empty(t, f.store.Sessions())
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := setup(t)

	rec := f.do(http.MethodPost, "/login", url.Values{
		"username": {testutil.AdminUsername},
		"password": {"nope"},
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
	assert.Contains(t, rec.Body.String(), testutil.AdminUsername, "submitted username is preserved")
	assert.Equal(t, 1, f.auth.calls)
	assert.Empty(t, f.store.Sessions(), "no session persists on failed login")
}

func TestLoginOK(t *testing.T) {
	f := setup(t)

	rec := f.do(http.MethodPost, "/login", url.Values{
		"username": {testutil.AdminUsername},
		"password": {testutil.AdminPassword},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get(echo.HeaderLocation))

	sessions := f.store.Sessions()
	if assert.Len(t, sessions, 1) {
		assert.NotEmpty(t, sessions[0].Token)
		assert.Equal(t, testutil.AdminUsername, sessions[0].User.Username)
		assert.Equal(t, session.RoleAdmin, sessions[0].User.Role)
	}
}

func TestDashboardRequiresLogin(t *testing.T) {
	f := setup(t)

	rec := f.do(http.MethodGet, "/admin/dashboard", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestDashboardRoleGate(t *testing.T) {
	f := setup(t)
	f.api.AddAccount("mwalimu", "Pa$$word1", session.User{
		Username: "mwalimu",
		Role:     session.RoleTeacher,
		Email:    "mwalimu@school.cd",
	})
	cookie := f.login(t, "mwalimu", "Pa$$word1")

	rec := f.do(http.MethodGet, "/admin/dashboard", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/teacher/dashboard", rec.Header().Get(echo.HeaderLocation))

	rec = f.do(http.MethodGet, "/teacher/dashboard", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Teacher Dashboard")
}

func TestAdminDashboardStats(t *testing.T) {
	f := setup(t)
	cookie := f.login(t, testutil.AdminUsername, testutil.AdminPassword)

	rec := f.do(http.MethodGet, "/admin/dashboard", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<h3>Total Students</h3><p>3</p>")
	assert.Contains(t, body, "<h3>Total Teachers</h3><p>2</p>")
	assert.Contains(t, body, "<h3>Total Courses</h3><p>2</p>")
	assert.Contains(t, body, "Attendance Rate")
}

func TestStudentsSectionAndSearch(t *testing.T) {
	f := setup(t)
	cookie := f.login(t, testutil.AdminUsername, testutil.AdminPassword)

	rec := f.do(http.MethodGet, "/admin/dashboard?section=students", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Asha")
	assert.Contains(t, rec.Body.String(), "Clara")

	rec = f.do(http.MethodGet, "/admin/dashboard?section=students&q=benoit", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Benoit")
	assert.NotContains(t, rec.Body.String(), "Clara")
}

func TestCreateCourse(t *testing.T) {
	f := setup(t)
	cookie := f.login(t, testutil.AdminUsername, testutil.AdminPassword)

	rec := f.do(http.MethodPost, "/admin/courses", url.Values{
		"courseName":        {"Chemistry"},
		"courseDescription": {"Atoms and reactions"},
		"credits":           {"3"},
	}, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/dashboard?section=courses", rec.Header().Get(echo.HeaderLocation))

	courses, err := f.api.Courses(context.Background())
	assert.NoError(t, err)
	assert.Len(t, courses, 3)

	rec = f.do(http.MethodGet, "/admin/dashboard?section=courses", nil, cookie)
	assert.Contains(t, rec.Body.String(), "Chemistry")
}

func TestCreateCourseValidation(t *testing.T) {
	f := setup(t)
	cookie := f.login(t, testutil.AdminUsername, testutil.AdminPassword)

	rec := f.do(http.MethodPost, "/admin/courses", url.Values{
		"courseName":        {"Chemistry"},
		"courseDescription": {""},
		"credits":           {"0"},
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "this field is required")
	assert.Contains(t, rec.Body.String(), "Chemistry", "submitted values are preserved")

	courses, err := f.api.Courses(context.Background())
	assert.NoError(t, err)
	assert.Len(t, courses, 2, "nothing is created on validation failure")
}

func TestUpdateTeacher(t *testing.T) {
	f := setup(t)
	cookie := f.login(t, testutil.AdminUsername, testutil.AdminPassword)

	teachers, err := f.api.Teachers(context.Background())
	assert.NoError(t, err)
	tc := teachers[0]

	rec := f.do(http.MethodPost, "/admin/teachers/"+strconv.Itoa(tc.ID), url.Values{
		"firstName":   {tc.FirstName},
		"lastName":    {tc.LastName},
		"email":       {tc.Email},
		"phoneNumber": {tc.PhoneNumber},
		"department":  {"History"},
	}, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	teachers, err = f.api.Teachers(context.Background())
	assert.NoError(t, err)
	for _, got := range teachers {
		if got.ID == tc.ID {
			assert.Equal(t, "History", got.Department)
		}
	}
}

func TestDeleteCourseDeclined(t *testing.T) {
	f := setup(t)
	cookie := f.login(t, testutil.AdminUsername, testutil.AdminPassword)

	// warm the dashboard so the course collection is loaded
	f.do(http.MethodGet, "/admin/dashboard?section=courses", nil, cookie)

	courses, err := f.api.Courses(context.Background())
	assert.NoError(t, err)
	crs := courses[0]

	rec := f.do(http.MethodGet, "/admin/courses/"+strconv.Itoa(crs.ID)+"/delete", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Are you sure")
	assert.Contains(t, rec.Body.String(), crs.CourseName)

	// user walked away from the confirmation page: nothing is deleted
	courses, err = f.api.Courses(context.Background())
	assert.NoError(t, err)
	assert.Len(t, courses, 2)
}

func TestDeleteCourse(t *testing.T) {
	f := setup(t)
	cookie := f.login(t, testutil.AdminUsername, testutil.AdminPassword)
	f.do(http.MethodGet, "/admin/dashboard?section=courses", nil, cookie)

	courses, err := f.api.Courses(context.Background())
	assert.NoError(t, err)
	crs := courses[0]

	rec := f.do(http.MethodPost, "/admin/courses/"+strconv.Itoa(crs.ID)+"/delete", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	courses, err = f.api.Courses(context.Background())
	assert.NoError(t, err)
	assert.Len(t, courses, 1)
	for _, got := range courses {
		assert.NotEqual(t, crs.ID, got.ID)
	}
}

type failingStore struct {
	session.Store
}

func (fs *failingStore) Save(http.ResponseWriter, *http.Request, session.Session) error {
	return errSaveBroken
}

var errSaveBroken = errors.New("securecookie: the value is not valid")

// A store that cannot persist sessions fails every sign-in; the server must
// report a 500 and raise its shutdown signal.
func TestLoginStoreFailureSignalsShutdown(t *testing.T) {
	api := testutil.NewSchoolAPI()
	logger := logsvc.NewConsoleLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags))
	logger.Enable(false)

	app := web.NewServer(web.ServerDeps{
		Conf:      &core.Config{AppName: "Shule", TestMode: true},
		Logger:    logger,
		Store:     &failingStore{Store: inmemstore.NewStore("shule_session")},
		Auth:      &countingAuth{svc: api},
		Directory: api.Directory,
	})

	form := url.Values{"username": {testutil.AdminUsername}, "password": {testutil.AdminPassword}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	select {
	case sig := <-app.ShutdownSignal():
		assert.Equal(t, syscall.SIGTERM, sig)
	default:
		t.Fatal("no shutdown signal raised")
	}
}

func TestLogout(t *testing.T) {
	f := setup(t)
	cookie := f.login(t, testutil.AdminUsername, testutil.AdminPassword)

	rec := f.do(http.MethodPost, "/logout", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	assert.Empty(t, f.store.Sessions())

	rec = f.do(http.MethodGet, "/admin/dashboard", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}
