package session

import (
	"context"
	"errors"
)

// Roles as issued by the school API.
const (
	RoleAdmin    = "admin"
	RoleTeacher  = "teacher"
	RoleStudent  = "student"
	RoleParent   = "parent"
	RoleStaff    = "staff"
	RoleInvestor = "investor"
)

var (
	ErrNotAuthenticated = errors.New("user not authenticated")

	dashboardPaths = map[string]string{
		RoleAdmin:    "/admin/dashboard",
		RoleTeacher:  "/teacher/dashboard",
		RoleStudent:  "/student/dashboard",
		RoleParent:   "/parent/dashboard",
		RoleStaff:    "/staff/dashboard",
		RoleInvestor: "/investor/dashboard",
	}
)

// DashboardPath returns the landing path for a role; unknown roles land on
// the generic dashboard.
func DashboardPath(role string) string {
	if path, ok := dashboardPaths[role]; ok {
		return path
	}
	return "/dashboard"
}

// User is the account record returned by the school API at login.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Session is the authenticated state of one signed-in user: the opaque API
// token and the user record it was issued for. SID identifies this console
// session locally; it is assigned by the Store on first save and never sent
// to the API.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
	SID   string `json:"-"`
}

func (s Session) Authenticated() bool { return s.Token != "" }

// Authenticator exchanges credentials for a Session.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (Session, error)
}
