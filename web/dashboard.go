package web

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/shule/core/school"
)

// portal renders the placeholder dashboard of non-admin roles. An empty role
// serves the generic landing page of roles without a dedicated dashboard.
func (s *server) portal(role string) echo.HandlerFunc {
	title := "Dashboard"
	if role != "" {
		title = strings.ToUpper(role[:1]) + role[1:] + " Dashboard"
	}
	return func(ctx echo.Context) error {
		sess, _ := contextSession(ctx)
		view := portalView{AppName: s.deps.Conf.AppName, Title: title, User: sess.User}
		return ctx.Render(http.StatusOK, "portal.html", view)
	}
}

func (s *server) adminDashboard(ctx echo.Context) error {
	return s.renderAdminDashboard(ctx, http.StatusOK, formState{})
}

// renderAdminDashboard applies the request's section/search/page parameters
// to the session's dashboard and renders it. formState carries submitted form
// values and their validation errors when a mutation handler re-renders.
func (s *server) renderAdminDashboard(ctx echo.Context, code int, fs formState) error {
	sess, _ := contextSession(ctx)
	dash := s.state.dashboard(sess)

	if fs.section != "" {
		dash.SetSection(fs.section)
	} else if sec := ctx.QueryParam("section"); school.ValidSection(sec) {
		dash.SetSection(sec)
	}
	if !dash.Refreshed() || ctx.QueryParam("refresh") != "" {
		_ = dash.Refresh(ctx.Request().Context()) // failures surface as the banner
	}

	view := dashboardView{
		AppName:  s.deps.Conf.AppName,
		User:     sess.User,
		Stats:    dash.Stats(),
		Banner:   dash.Banner(),
		Section:  dash.Section(),
		Sections: sectionLinks(dash.Section()),
	}
	switch dash.Section() {
	case school.SectionStudents:
		view.Panel = buildPanelView(ctx, dash.Students, studentDef, fs)
	case school.SectionTeachers:
		view.Panel = buildPanelView(ctx, dash.Teachers, teacherDef, fs)
	case school.SectionCourses:
		view.Panel = buildPanelView(ctx, dash.Courses, courseDef, fs)
	}
	return ctx.Render(code, "dashboard.html", view)
}
