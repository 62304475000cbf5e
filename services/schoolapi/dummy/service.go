package dummyapi

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/core/session"
)

var (
	errInvalidCredentials = errors.New("Invalid credentials")
	errStudentNotFound    = errors.New("Student not found")
	errTeacherNotFound    = errors.New("Teacher not found")
	errCourseNotFound     = errors.New("Course not found")

	errEmailTaken = errors.New("this email is already registered")
)

func errEmailExists() error {
	return core.NewValidationError(errEmailTaken, core.FieldError{Field: "email", Error: errEmailTaken.Error()})
}

// Service is an in-memory stand-in for the school API, used by tests and by
// the console's demo mode when no API.BaseURL is configured. It hands out
// opaque random tokens and keeps its tables behind one mutex.
type Service struct {
	mu       sync.RWMutex
	pk       int
	accounts map[string]account
	students []school.Student
	teachers []school.Teacher
	courses  []school.Course
}

type account struct {
	password string
	user     session.User
}

var (
	_ session.Authenticator = (*Service)(nil)
	_ school.Directory      = (*Service)(nil)
)

func NewService() *Service {
	return &Service{accounts: make(map[string]account)}
}

// AddAccount registers a user that can sign in; the id is assigned here.
func (s *Service) AddAccount(username, password string, usr session.User) session.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pk++
	usr.ID = s.pk
	usr.Username = username
	s.accounts[username] = account{password: password, user: usr}
	return usr
}

func (s *Service) SeedStudents(students ...school.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range students {
		s.pk++
		st.ID = s.pk
		s.students = append(s.students, st)
	}
}

func (s *Service) SeedTeachers(teachers ...school.Teacher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tc := range teachers {
		s.pk++
		tc.ID = s.pk
		s.teachers = append(s.teachers, tc)
	}
}

func (s *Service) SeedCourses(courses ...school.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, crs := range courses {
		s.pk++
		crs.ID = s.pk
		s.courses = append(s.courses, crs)
	}
}

func (s *Service) Login(_ context.Context, username, password string) (session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[username]
	if !ok || acct.password != password {
		return session.Session{}, errInvalidCredentials
	}
	return session.Session{Token: uuid.NewString(), User: acct.user}, nil
}

// Directory returns the API surface; the dummy does not check the token.
func (s *Service) Directory(string) school.Directory { return s }

func (s *Service) Students(context.Context) ([]school.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]school.Student(nil), s.students...), nil
}

func (s *Service) CreateStudent(_ context.Context, st school.Student) (school.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cur := range s.students {
		if cur.Email == st.Email {
			return school.Student{}, errEmailExists()
		}
	}
	s.pk++
	st.ID = s.pk
	s.students = append(s.students, st)
	return st, nil
}

func (s *Service) UpdateStudent(_ context.Context, st school.Student) (school.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.students {
		if cur.ID == st.ID {
			s.students[i] = st
			return st, nil
		}
	}
	return school.Student{}, errStudentNotFound
}

func (s *Service) DeleteStudent(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.students {
		if cur.ID == id {
			s.students = append(s.students[:i], s.students[i+1:]...)
			return nil
		}
	}
	return errStudentNotFound
}

func (s *Service) Teachers(context.Context) ([]school.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]school.Teacher(nil), s.teachers...), nil
}

func (s *Service) CreateTeacher(_ context.Context, tc school.Teacher) (school.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cur := range s.teachers {
		if cur.Email == tc.Email {
			return school.Teacher{}, errEmailExists()
		}
	}
	s.pk++
	tc.ID = s.pk
	s.teachers = append(s.teachers, tc)
	return tc, nil
}

func (s *Service) UpdateTeacher(_ context.Context, tc school.Teacher) (school.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.teachers {
		if cur.ID == tc.ID {
			s.teachers[i] = tc
			return tc, nil
		}
	}
	return school.Teacher{}, errTeacherNotFound
}

func (s *Service) DeleteTeacher(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.teachers {
		if cur.ID == id {
			s.teachers = append(s.teachers[:i], s.teachers[i+1:]...)
			return nil
		}
	}
	return errTeacherNotFound
}

func (s *Service) Courses(context.Context) ([]school.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]school.Course(nil), s.courses...), nil
}

func (s *Service) CreateCourse(_ context.Context, crs school.Course) (school.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pk++
	crs.ID = s.pk
	s.courses = append(s.courses, crs)
	return crs, nil
}

func (s *Service) UpdateCourse(_ context.Context, crs school.Course) (school.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.courses {
		if cur.ID == crs.ID {
			s.courses[i] = crs
			return crs, nil
		}
	}
	return school.Course{}, errCourseNotFound
}

func (s *Service) DeleteCourse(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.courses {
		if cur.ID == id {
			s.courses = append(s.courses[:i], s.courses[i+1:]...)
			return nil
		}
	}
	return errCourseNotFound
}
