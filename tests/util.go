package testutil

import (
	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/core/session"
	dummyapi "github.com/trezcool/shule/services/schoolapi/dummy"
)

// Admin credentials seeded by NewSchoolAPI.
const (
	AdminUsername = "admin"
	AdminPassword = "Str0ngPa$$"
)

func SampleStudents() []school.Student {
	return []school.Student{
		{FirstName: "Asha", LastName: "Kalonji", Email: "asha.kalonji@school.cd", DateOfBirth: "2008-03-14", Address: "12 Avenue Lumumba, Kinshasa", PhoneNumber: "+243811111111"},
		{FirstName: "Benoit", LastName: "Mwamba", Email: "benoit.mwamba@school.cd", DateOfBirth: "2007-11-02", Address: "45 Boulevard du 30 Juin, Kinshasa", PhoneNumber: "+243822222222"},
		{FirstName: "Clara", LastName: "Ilunga", Email: "clara.ilunga@example.org", DateOfBirth: "2008-07-21", Address: "3 Rue des Ecoles, Lubumbashi", PhoneNumber: "+243833333333"},
	}
}

func SampleTeachers() []school.Teacher {
	return []school.Teacher{
		{FirstName: "Didier", LastName: "Kasongo", Email: "didier.kasongo@school.cd", PhoneNumber: "+243844444444", Department: "Mathematics"},
		{FirstName: "Esther", LastName: "Tshisekedi", Email: "esther.tshisekedi@school.cd", PhoneNumber: "+243855555555", Department: "Science"},
	}
}

func SampleCourses() []school.Course {
	return []school.Course{
		{CourseName: "Algebra I", CourseDescription: "Linear equations and factoring", Credits: 3, Enrollments: 28},
		{CourseName: "Biology", CourseDescription: "Cells, genetics and ecosystems", Credits: 4, Enrollments: 31},
	}
}

// NewSchoolAPI returns a fake school API seeded with the sample collections
// and an admin account.
func NewSchoolAPI() *dummyapi.Service {
	svc := dummyapi.NewService()
	svc.AddAccount(AdminUsername, AdminPassword, session.User{
		Username: AdminUsername,
		Role:     session.RoleAdmin,
		Email:    "admin@school.cd",
	})
	svc.SeedStudents(SampleStudents()...)
	svc.SeedTeachers(SampleTeachers()...)
	svc.SeedCourses(SampleCourses()...)
	return svc
}
