package school

// The three entity panels differ only in their API operations and search
// fields; everything else is the shared Panel behavior.

func NewStudentPanel(dir Directory) *Panel[Student] {
	return NewPanel(PanelConfig[Student]{
		Resource: "students",
		Match:    Student.matches,
		FetchAll: dir.Students,
		Create:   dir.CreateStudent,
		Update:   dir.UpdateStudent,
		Delete:   dir.DeleteStudent,
	})
}

func NewTeacherPanel(dir Directory) *Panel[Teacher] {
	return NewPanel(PanelConfig[Teacher]{
		Resource: "teachers",
		Match:    Teacher.matches,
		FetchAll: dir.Teachers,
		Create:   dir.CreateTeacher,
		Update:   dir.UpdateTeacher,
		Delete:   dir.DeleteTeacher,
	})
}

func NewCoursePanel(dir Directory) *Panel[Course] {
	return NewPanel(PanelConfig[Course]{
		Resource: "courses",
		Match:    Course.matches,
		FetchAll: dir.Courses,
		Create:   dir.CreateCourse,
		Update:   dir.UpdateCourse,
		Delete:   dir.DeleteCourse,
	})
}
