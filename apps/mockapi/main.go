// Command mockapi runs a fake school API on :5000 for local development of
// the console. It speaks the same REST contract as the real backend: JWT
// bearer auth, admin-only CRUD and {"message": ...} error bodies.
package main

import (
	"log"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/core/session"
	dummyapi "github.com/trezcool/shule/services/schoolapi/dummy"
)

const addr = ":5000"

func main() {
	conf, err := core.LoadConfig()
	errAndDie(err)

	svc := dummyapi.NewService()
	seed(svc)

	a := newAPI(conf, svc)
	errAndDie(a.addAccount("admin", "admin123", session.User{
		Username: "admin",
		Role:     session.RoleAdmin,
		Email:    "admin@school.cd",
	}))
	errAndDie(a.addAccount("mwalimu", "mwalimu123", session.User{
		Username: "mwalimu",
		Role:     session.RoleTeacher,
		Email:    "mwalimu@school.cd",
	}))

	app := a.server()
	app.Logger.Fatal(app.Start(addr))
}

func seed(svc *dummyapi.Service) {
	svc.SeedStudents(
		school.Student{FirstName: "Asha", LastName: "Kalonji", Email: "asha.kalonji@school.cd", DateOfBirth: "2008-03-14", Address: "12 Avenue Lumumba, Kinshasa", PhoneNumber: "+243811111111"},
		school.Student{FirstName: "Benoit", LastName: "Mwamba", Email: "benoit.mwamba@school.cd", DateOfBirth: "2007-11-02", Address: "45 Boulevard du 30 Juin, Kinshasa", PhoneNumber: "+243822222222"},
		school.Student{FirstName: "Clara", LastName: "Ilunga", Email: "clara.ilunga@school.cd", DateOfBirth: "2008-07-21", Address: "3 Rue des Ecoles, Lubumbashi", PhoneNumber: "+243833333333"},
	)
	svc.SeedTeachers(
		school.Teacher{FirstName: "Didier", LastName: "Kasongo", Email: "didier.kasongo@school.cd", PhoneNumber: "+243844444444", Department: "Mathematics"},
		school.Teacher{FirstName: "Esther", LastName: "Tshisekedi", Email: "esther.tshisekedi@school.cd", PhoneNumber: "+243855555555", Department: "Science"},
	)
	svc.SeedCourses(
		school.Course{CourseName: "Algebra I", CourseDescription: "Linear equations and factoring", Credits: 3, Enrollments: 28},
		school.Course{CourseName: "Biology", CourseDescription: "Cells, genetics and ecosystems", Credits: 4, Enrollments: 31},
	)
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
