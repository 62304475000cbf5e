package school

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Dashboard sections mounting an entity panel (or the static overview).
const (
	SectionOverview = "overview"
	SectionStudents = "students"
	SectionTeachers = "teachers"
	SectionCourses  = "courses"
)

func ValidSection(s string) bool {
	switch s {
	case SectionOverview, SectionStudents, SectionTeachers, SectionCourses:
		return true
	}
	return false
}

// Dashboard aggregates the three entity panels for one admin session: it
// fetches their collections concurrently, derives the stat counters and keeps
// the active-section state.
type Dashboard struct {
	Students *Panel[Student]
	Teachers *Panel[Teacher]
	Courses  *Panel[Course]

	att AttendanceComputer

	mu        sync.Mutex
	stats     Stats
	refreshed bool
	banner    string
	section   string
}

func NewDashboard(dir Directory, att AttendanceComputer) *Dashboard {
	return &Dashboard{
		Students: NewStudentPanel(dir),
		Teachers: NewTeacherPanel(dir),
		Courses:  NewCoursePanel(dir),
		att:      att,
		section:  SectionOverview,
	}
}

// Refresh fetches students, teachers and courses concurrently. All or
// nothing: if any fetch fails, all three results are discarded, a single
// banner is set and the stats keep their previous values.
func (d *Dashboard) Refresh(ctx context.Context) error {
	var (
		students []Student
		teachers []Teacher
		courses  []Course
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { students, err = d.Students.Load(gctx); return })
	g.Go(func() (err error) { teachers, err = d.Teachers.Load(gctx); return })
	g.Go(func() (err error) { courses, err = d.Courses.Load(gctx); return })
	if err := g.Wait(); err != nil {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.banner = "Failed to load dashboard data"
		return err
	}

	d.Students.Replace(students)
	d.Teachers.Replace(teachers)
	d.Courses.Replace(courses)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats = Stats{
		Students:   len(students),
		Teachers:   len(teachers),
		Courses:    len(courses),
		Attendance: d.att.Compute(students),
	}
	d.refreshed = true
	d.banner = ""
	return nil
}

func (d *Dashboard) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// Refreshed reports whether at least one refresh succeeded.
func (d *Dashboard) Refreshed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.refreshed
}

func (d *Dashboard) Banner() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.banner
}

func (d *Dashboard) Section() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.section
}

// SetSection switches the mounted panel; unknown sections are ignored.
func (d *Dashboard) SetSection(s string) {
	if !ValidSection(s) {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.section = s
}
