package web

import (
	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/core/session"
)

type loginView struct {
	AppName     string
	Username    string
	Error       string
	FieldErrors map[string]string
}

type portalView struct {
	AppName string
	Title   string
	User    session.User
}

type errorView struct {
	Code    int
	Message string
}

type sectionLink struct {
	ID     string
	Label  string
	Active bool
}

type dashboardView struct {
	AppName  string
	User     session.User
	Stats    school.Stats
	Banner   string
	Section  string
	Sections []sectionLink
	Panel    *panelView
}

// fieldView describes one form input. A non-nil Options renders a select.
type fieldView struct {
	Name    string
	Label   string
	Type    string
	Value   string
	Options []string
}

type rowView struct {
	ID     int
	Cells  []string
	Fields []fieldView // set when this row is in edit mode
	Errors map[string]string
}

type panelView struct {
	Resource   string
	Title      string
	Singular   string
	Columns    []string
	Rows       []rowView
	Form       []fieldView
	FormErrors map[string]string
	Query      string
	Page       int
	PageNums   []int
	Total      int
	Banner     string
	Busy       bool
}

type confirmView struct {
	AppName  string
	Singular string
	Detail   string
	Action   string
	Cancel   string
}

func sectionLinks(active string) []sectionLink {
	links := []sectionLink{
		{ID: school.SectionOverview, Label: "Overview"},
		{ID: school.SectionStudents, Label: "Students"},
		{ID: school.SectionTeachers, Label: "Teachers"},
		{ID: school.SectionCourses, Label: "Courses"},
	}
	for i := range links {
		links[i].Active = links[i].ID == active
	}
	return links
}
