package school

import "context"

// Directory is the school API surface the console consumes, bound to one
// authenticated session. The HTTP implementation lives in
// services/schoolapi; an in-memory one in services/schoolapi/dummy.
type Directory interface {
	Students(ctx context.Context) ([]Student, error)
	CreateStudent(ctx context.Context, st Student) (Student, error)
	UpdateStudent(ctx context.Context, st Student) (Student, error)
	DeleteStudent(ctx context.Context, id int) error

	Teachers(ctx context.Context) ([]Teacher, error)
	CreateTeacher(ctx context.Context, tc Teacher) (Teacher, error)
	UpdateTeacher(ctx context.Context, tc Teacher) (Teacher, error)
	DeleteTeacher(ctx context.Context, id int) error

	Courses(ctx context.Context) ([]Course, error)
	CreateCourse(ctx context.Context, crs Course) (Course, error)
	UpdateCourse(ctx context.Context, crs Course) (Course, error)
	DeleteCourse(ctx context.Context, id int) error
}
