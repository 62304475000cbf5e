package school

import (
	"strings"

	"github.com/trezcool/shule/core"
)

// Departments a Teacher may belong to. The API stores the department as free
// text; this list is the console's source for select inputs and validation.
var Departments = []string{
	"Mathematics",
	"Science",
	"English",
	"History",
	"Computer Science",
	"Physical Education",
}

// Record is any entity managed by a Panel. IDs are always assigned by the
// API; the console never invents them.
type Record interface {
	RecordID() int
}

type Student struct {
	ID          int    `json:"id,omitempty"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

func (s Student) RecordID() int { return s.ID }

func (s Student) matches(term string) bool {
	return containsFold(term, s.FirstName, s.LastName, s.Email)
}

type Teacher struct {
	ID          int    `json:"id,omitempty"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Department  string `json:"department"`
}

func (t Teacher) RecordID() int { return t.ID }

func (t Teacher) matches(term string) bool {
	return containsFold(term, t.FirstName, t.LastName, t.Department)
}

type Course struct {
	ID                int    `json:"id,omitempty"`
	CourseName        string `json:"courseName"`
	CourseDescription string `json:"courseDescription"`
	Credits           int    `json:"credits"`
	Enrollments       int    `json:"enrollments,omitempty"`
}

func (c Course) RecordID() int { return c.ID }

func (c Course) matches(term string) bool {
	return containsFold(term, c.CourseName, c.CourseDescription)
}

// containsFold reports whether any of the fields contains term,
// case-insensitively.
func containsFold(term string, fields ...string) bool {
	term = strings.ToLower(term)
	for _, fld := range fields {
		if strings.Contains(strings.ToLower(fld), term) {
			return true
		}
	}
	return false
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	FirstName   string `json:"firstName" form:"firstName" validate:"required"`
	LastName    string `json:"lastName" form:"lastName" validate:"required"`
	Email       string `json:"email" form:"email" validate:"required,email"`
	DateOfBirth string `json:"dateOfBirth" form:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Address     string `json:"address" form:"address" validate:"required"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" validate:"required"`
}

func (ns *NewStudent) Validate() error {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.DateOfBirth = core.CleanString(ns.DateOfBirth)
	ns.Address = core.CleanString(ns.Address)
	ns.PhoneNumber = core.CleanString(ns.PhoneNumber)
	return core.Validate.Struct(ns)
}

func (ns *NewStudent) Record(id int) Student {
	return Student{
		ID:          id,
		FirstName:   ns.FirstName,
		LastName:    ns.LastName,
		Email:       ns.Email,
		DateOfBirth: ns.DateOfBirth,
		Address:     ns.Address,
		PhoneNumber: ns.PhoneNumber,
	}
}

// NewTeacher contains information needed to register a new Teacher.
type NewTeacher struct {
	FirstName   string `json:"firstName" form:"firstName" validate:"required"`
	LastName    string `json:"lastName" form:"lastName" validate:"required"`
	Email       string `json:"email" form:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" validate:"required"`
	Department  string `json:"department" form:"department" validate:"required,department"`
}

func (nt *NewTeacher) Validate() error {
	nt.FirstName = core.CleanString(nt.FirstName)
	nt.LastName = core.CleanString(nt.LastName)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.PhoneNumber = core.CleanString(nt.PhoneNumber)
	nt.Department = core.CleanString(nt.Department)
	return core.Validate.Struct(nt)
}

func (nt *NewTeacher) Record(id int) Teacher {
	return Teacher{
		ID:          id,
		FirstName:   nt.FirstName,
		LastName:    nt.LastName,
		Email:       nt.Email,
		PhoneNumber: nt.PhoneNumber,
		Department:  nt.Department,
	}
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	CourseName        string `json:"courseName" form:"courseName" validate:"required"`
	CourseDescription string `json:"courseDescription" form:"courseDescription" validate:"required"`
	Credits           int    `json:"credits" form:"credits" validate:"required,gt=0"`
}

func (nc *NewCourse) Validate() error {
	nc.CourseName = core.CleanString(nc.CourseName)
	nc.CourseDescription = core.CleanString(nc.CourseDescription)
	return core.Validate.Struct(nc)
}

func (nc *NewCourse) Record(id int) Course {
	return Course{
		ID:                id,
		CourseName:        nc.CourseName,
		CourseDescription: nc.CourseDescription,
		Credits:           nc.Credits,
	}
}
