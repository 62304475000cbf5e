package web

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/shule/core/school"
)

var teacherDef = panelDef[school.Teacher]{
	resource: "teachers",
	title:    "Teachers",
	singular: "teacher",
	columns:  []string{"Name", "Email", "Phone", "Department"},
	cells: func(tc school.Teacher) []string {
		return []string{
			tc.FirstName + " " + tc.LastName,
			tc.Email,
			tc.PhoneNumber,
			tc.Department,
		}
	},
	fields: teacherFields,
	label: func(tc school.Teacher) string {
		return tc.FirstName + " " + tc.LastName
	},
}

func teacherFields(tc school.Teacher) []fieldView {
	return []fieldView{
		{Name: "firstName", Label: "First name", Type: "text", Value: tc.FirstName},
		{Name: "lastName", Label: "Last name", Type: "text", Value: tc.LastName},
		{Name: "email", Label: "Email", Type: "email", Value: tc.Email},
		{Name: "phoneNumber", Label: "Phone number", Type: "tel", Value: tc.PhoneNumber},
		{Name: "department", Label: "Department", Value: tc.Department, Options: school.Departments},
	}
}

func registerTeacherRoutes(g *echo.Group, s *server) {
	g.POST("/teachers", s.teacherCreate)
	g.POST("/teachers/:id", s.teacherUpdate)
	g.GET("/teachers/:id/delete", s.teacherDeleteConfirm)
	g.POST("/teachers/:id/delete", s.teacherDelete)
}

func (s *server) teacherCreate(ctx echo.Context) error {
	sess, _ := contextSession(ctx)
	dash := s.state.dashboard(sess)
	return createRecord(s, ctx, dash.Teachers, new(school.NewTeacher), teacherDef)
}

func (s *server) teacherUpdate(ctx echo.Context) error {
	sess, _ := contextSession(ctx)
	dash := s.state.dashboard(sess)
	return updateRecord(s, ctx, dash.Teachers, new(school.NewTeacher), teacherDef)
}

func (s *server) teacherDeleteConfirm(ctx echo.Context) error {
	sess, _ := contextSession(ctx)
	dash := s.state.dashboard(sess)
	return confirmDelete(s, ctx, dash.Teachers, teacherDef)
}

func (s *server) teacherDelete(ctx echo.Context) error {
	sess, _ := contextSession(ctx)
	dash := s.state.dashboard(sess)
	return deleteRecord(ctx, dash.Teachers, teacherDef.resource)
}
