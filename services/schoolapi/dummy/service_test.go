package dummyapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

func TestCreateStudentDuplicateEmail(t *testing.T) {
	svc := NewService()
	svc.SeedStudents(school.Student{FirstName: "Asha", LastName: "Kalonji", Email: "asha.kalonji@school.cd"})

	_, err := svc.CreateStudent(context.Background(), school.Student{FirstName: "Imposter", Email: "asha.kalonji@school.cd"})
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("CreateStudent() error = %v, want *core.ValidationError", err)
	}
	assert.Equal(t, "this email is already registered", vErr.Error())
	if assert.Len(t, vErr.Fields, 1) {
		assert.Equal(t, "email", vErr.Fields[0].Field)
	}

	students, err := svc.Students(context.Background())
	assert.NoError(t, err)
	assert.Len(t, students, 1)
}

func TestCreateTeacherDuplicateEmail(t *testing.T) {
	svc := NewService()
	svc.SeedTeachers(school.Teacher{FirstName: "Didier", LastName: "Kasongo", Email: "didier.kasongo@school.cd", Department: "Mathematics"})

	_, err := svc.CreateTeacher(context.Background(), school.Teacher{FirstName: "Imposter", Email: "didier.kasongo@school.cd"})
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("CreateTeacher() error = %v, want *core.ValidationError", err)
	}
	assert.Equal(t, "this email is already registered", vErr.Error())

	teachers, err := svc.Teachers(context.Background())
	assert.NoError(t, err)
	assert.Len(t, teachers, 1)
}
