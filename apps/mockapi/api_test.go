package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/core/session"
	dummyapi "github.com/trezcool/shule/services/schoolapi/dummy"
)

func setupAPI(t *testing.T) *echo.Echo {
	t.Helper()

	conf := &core.Config{AppName: "Shule", SecretKey: "test-secret", TestMode: true}
	svc := dummyapi.NewService()
	svc.SeedStudents(school.Student{FirstName: "Asha", LastName: "Kalonji", Email: "asha.kalonji@school.cd", DateOfBirth: "2008-03-14"})
	svc.SeedCourses(school.Course{CourseName: "Algebra I", CourseDescription: "Linear equations", Credits: 3})

	a := newAPI(conf, svc)
	for _, acc := range []struct {
		username, password string
		user               session.User
	}{
		{"admin", "admin123", session.User{Username: "admin", Role: session.RoleAdmin, Email: "admin@school.cd"}},
		{"mwalimu", "mwalimu123", session.User{Username: "mwalimu", Role: session.RoleTeacher, Email: "mwalimu@school.cd"}},
	} {
		if err := a.addAccount(acc.username, acc.password, acc.user); err != nil {
			t.Fatalf("addAccount(%q): %v", acc.username, err)
		}
	}
	return a.server()
}

func request(app *echo.Echo, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func loginToken(t *testing.T, app *echo.Echo, username, password string) string {
	t.Helper()
	rec := request(app, http.MethodPost, "/api/auth/login", "", echo.Map{"username": username, "password": password})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: got status %d, body %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Token string       `json:"token"`
		User  session.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("login: decoding body: %v", err)
	}
	if out.Token == "" {
		t.Fatal("login: empty token")
	}
	return out.Token
}

func TestLogin(t *testing.T) {
	app := setupAPI(t)

	rec := request(app, http.MethodPost, "/api/auth/login", "", echo.Map{"username": "admin", "password": "admin123"})
	assert.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Token string       `json:"token"`
		User  session.User `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "admin", out.User.Username)
	assert.Equal(t, session.RoleAdmin, out.User.Role)

	rec = request(app, http.MethodPost, "/api/auth/login", "", echo.Map{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

// An issued token must get its bearer through the protected routes.
func TestAuthenticatedRoundTrip(t *testing.T) {
	app := setupAPI(t)
	token := loginToken(t, app, "admin", "admin123")

	rec := request(app, http.MethodGet, "/api/students", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var students []school.Student
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
	if assert.Len(t, students, 1) {
		assert.Equal(t, "Asha", students[0].FirstName)
	}
}

func TestAuthRejections(t *testing.T) {
	app := setupAPI(t)

	rec := request(app, http.MethodGet, "/api/students", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = request(app, http.MethodGet, "/api/students", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	teacherToken := loginToken(t, app, "mwalimu", "mwalimu123")
	rec = request(app, http.MethodGet, "/api/students", teacherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admin access required")
}

func TestCourseCRUD(t *testing.T) {
	app := setupAPI(t)
	token := loginToken(t, app, "admin", "admin123")

	rec := request(app, http.MethodPost, "/api/courses", token, school.Course{
		CourseName: "Chemistry", CourseDescription: "Atoms and reactions", Credits: 3,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	var created school.Course
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)

	created.Credits = 4
	rec = request(app, http.MethodPut, "/api/courses/"+strconv.Itoa(created.ID), token, created)
	assert.Equal(t, http.StatusOK, rec.Code)
	var updated school.Course
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, 4, updated.Credits)

	rec = request(app, http.MethodDelete, "/api/courses/"+strconv.Itoa(created.ID), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Course deleted successfully")

	rec = request(app, http.MethodDelete, "/api/courses/"+strconv.Itoa(created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateStudentDuplicateEmail(t *testing.T) {
	app := setupAPI(t)
	token := loginToken(t, app, "admin", "admin123")

	rec := request(app, http.MethodPost, "/api/students", token, school.Student{
		FirstName: "Imposter", LastName: "Kalonji", Email: "asha.kalonji@school.cd",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "this email is already registered")
}
