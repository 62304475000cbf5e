package web

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/shule/core/school"
)

var studentDef = panelDef[school.Student]{
	resource: "students",
	title:    "Students",
	singular: "student",
	columns:  []string{"Name", "Email", "Date of birth", "Address", "Phone"},
	cells: func(st school.Student) []string {
		return []string{
			st.FirstName + " " + st.LastName,
			st.Email,
			st.DateOfBirth,
			st.Address,
			st.PhoneNumber,
		}
	},
	fields: studentFields,
	label: func(st school.Student) string {
		return st.FirstName + " " + st.LastName
	},
}

func studentFields(st school.Student) []fieldView {
	return []fieldView{
		{Name: "firstName", Label: "First name", Type: "text", Value: st.FirstName},
		{Name: "lastName", Label: "Last name", Type: "text", Value: st.LastName},
		{Name: "email", Label: "Email", Type: "email", Value: st.Email},
		{Name: "dateOfBirth", Label: "Date of birth", Type: "date", Value: st.DateOfBirth},
		{Name: "address", Label: "Address", Type: "text", Value: st.Address},
		{Name: "phoneNumber", Label: "Phone number", Type: "tel", Value: st.PhoneNumber},
	}
}

func registerStudentRoutes(g *echo.Group, s *server) {
	g.POST("/students", s.studentCreate)
	g.POST("/students/:id", s.studentUpdate)
	g.GET("/students/:id/delete", s.studentDeleteConfirm)
	g.POST("/students/:id/delete", s.studentDelete)
}

func (s *server) studentCreate(ctx echo.Context) error {
	sess, _ := contextSession(ctx)
	dash := s.state.dashboard(sess)
	return createRecord(s, ctx, dash.Students, new(school.NewStudent), studentDef)
}

func (s *server) studentUpdate(ctx echo.Context) error {
	sess, _ := contextSession(ctx)
	dash := s.state.dashboard(sess)
	return updateRecord(s, ctx, dash.Students, new(school.NewStudent), studentDef)
}

func (s *server) studentDeleteConfirm(ctx echo.Context) error {
	sess, _ := contextSession(ctx)
	dash := s.state.dashboard(sess)
	return confirmDelete(s, ctx, dash.Students, studentDef)
}

func (s *server) studentDelete(ctx echo.Context) error {
	sess, _ := contextSession(ctx)
	dash := s.state.dashboard(sess)
	return deleteRecord(ctx, dash.Students, studentDef.resource)
}
