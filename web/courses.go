package web

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/shule/core/school"
)

var courseDef = panelDef[school.Course]{
	resource: "courses",
	title:    "Courses",
	singular: "course",
	columns:  []string{"Name", "Description", "Credits", "Enrollments"},
	cells: func(crs school.Course) []string {
		return []string{
			crs.CourseName,
			crs.CourseDescription,
			strconv.Itoa(crs.Credits),
			strconv.Itoa(crs.Enrollments),
		}
	},
	fields: courseFields,
	label: func(crs school.Course) string {
		return crs.CourseName
	},
}

func courseFields(crs school.Course) []fieldView {
	credits := ""
	if crs.Credits > 0 {
		credits = strconv.Itoa(crs.Credits)
	}
	return []fieldView{
		{Name: "courseName", Label: "Course name", Type: "text", Value: crs.CourseName},
		{Name: "courseDescription", Label: "Description", Type: "text", Value: crs.CourseDescription},
		{Name: "credits", Label: "Credits", Type: "number", Value: credits},
	}
}

func registerCourseRoutes(g *echo.Group, s *server) {
	g.POST("/courses", s.courseCreate)
	g.POST("/courses/:id", s.courseUpdate)
	g.GET("/courses/:id/delete", s.courseDeleteConfirm)
	g.POST("/courses/:id/delete", s.courseDelete)
}

func (s *server) courseCreate(ctx echo.Context) error {
	sess, _ := contextSession(ctx)
	dash := s.state.dashboard(sess)
	return createRecord(s, ctx, dash.Courses, new(school.NewCourse), courseDef)
}

func (s *server) courseUpdate(ctx echo.Context) error {
	sess, _ := contextSession(ctx)
	dash := s.state.dashboard(sess)
	return updateRecord(s, ctx, dash.Courses, new(school.NewCourse), courseDef)
}

func (s *server) courseDeleteConfirm(ctx echo.Context) error {
	sess, _ := contextSession(ctx)
	dash := s.state.dashboard(sess)
	return confirmDelete(s, ctx, dash.Courses, courseDef)
}

func (s *server) courseDelete(ctx echo.Context) error {
	sess, _ := contextSession(ctx)
	dash := s.state.dashboard(sess)
	return deleteRecord(ctx, dash.Courses, courseDef.resource)
}
