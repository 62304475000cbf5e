package session

import "testing"

func TestDashboardPath(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{role: RoleAdmin, want: "/admin/dashboard"},
		{role: RoleTeacher, want: "/teacher/dashboard"},
		{role: RoleStudent, want: "/student/dashboard"},
		{role: RoleParent, want: "/parent/dashboard"},
		{role: RoleStaff, want: "/staff/dashboard"},
		{role: RoleInvestor, want: "/investor/dashboard"},
		{role: "janitor", want: "/dashboard"},
		{role: "", want: "/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			if got := DashboardPath(tt.role); got != tt.want {
				t.Errorf("DashboardPath(%q) = %q, want %q", tt.role, got, tt.want)
			}
		})
	}
}
