package schoolapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trezcool/shule/core/school"
)

// directory is the token-bound school.Directory over HTTP. Creates omit the
// zero id on the wire (the backend assigns ids); updates put the full record.
type directory struct {
	c     *Client
	token string
}

var _ school.Directory = (*directory)(nil)

func (d *directory) Students(ctx context.Context) ([]school.Student, error) {
	var out []school.Student
	err := d.c.request(ctx, d.token, http.MethodGet, "/api/students", nil, &out, "Failed to fetch students")
	return out, err
}

func (d *directory) CreateStudent(ctx context.Context, st school.Student) (school.Student, error) {
	var out school.Student
	err := d.c.request(ctx, d.token, http.MethodPost, "/api/students", st, &out, "Failed to add student")
	return out, err
}

func (d *directory) UpdateStudent(ctx context.Context, st school.Student) (school.Student, error) {
	var out school.Student
	path := fmt.Sprintf("/api/students/%d", st.ID)
	err := d.c.request(ctx, d.token, http.MethodPut, path, st, &out, "Failed to update student")
	return out, err
}

func (d *directory) DeleteStudent(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/students/%d", id)
	return d.c.request(ctx, d.token, http.MethodDelete, path, nil, nil, "Failed to delete student")
}

func (d *directory) Teachers(ctx context.Context) ([]school.Teacher, error) {
	var out []school.Teacher
	err := d.c.request(ctx, d.token, http.MethodGet, "/api/teachers", nil, &out, "Failed to fetch teachers")
	return out, err
}

func (d *directory) CreateTeacher(ctx context.Context, tc school.Teacher) (school.Teacher, error) {
	var out school.Teacher
	err := d.c.request(ctx, d.token, http.MethodPost, "/api/teachers", tc, &out, "Failed to add teacher")
	return out, err
}

func (d *directory) UpdateTeacher(ctx context.Context, tc school.Teacher) (school.Teacher, error) {
	var out school.Teacher
	path := fmt.Sprintf("/api/teachers/%d", tc.ID)
	err := d.c.request(ctx, d.token, http.MethodPut, path, tc, &out, "Failed to update teacher")
	return out, err
}

func (d *directory) DeleteTeacher(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/teachers/%d", id)
	return d.c.request(ctx, d.token, http.MethodDelete, path, nil, nil, "Failed to delete teacher")
}

func (d *directory) Courses(ctx context.Context) ([]school.Course, error) {
	var out []school.Course
	err := d.c.request(ctx, d.token, http.MethodGet, "/api/courses", nil, &out, "Failed to fetch courses")
	return out, err
}

func (d *directory) CreateCourse(ctx context.Context, crs school.Course) (school.Course, error) {
	var out school.Course
	err := d.c.request(ctx, d.token, http.MethodPost, "/api/courses", crs, &out, "Failed to add course")
	return out, err
}

func (d *directory) UpdateCourse(ctx context.Context, crs school.Course) (school.Course, error) {
	var out school.Course
	path := fmt.Sprintf("/api/courses/%d", crs.ID)
	err := d.c.request(ctx, d.token, http.MethodPut, path, crs, &out, "Failed to update course")
	return out, err
}

func (d *directory) DeleteCourse(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/courses/%d", id)
	return d.c.request(ctx, d.token, http.MethodDelete, path, nil, nil, "Failed to delete course")
}
