package report

import "github.com/volatiletech/null/v8"

type EnrollmentRow struct {
	RollNumber       string `db:"roll_number"`
	Name             string `db:"name"`
	EnrollmentDate   string `db:"enrollment_date"`
	CourseName       string `db:"course_name"`
	AcademicYearName string `db:"year_name"`
	FacultyName      string `db:"faculty_name"`
	Status           string `db:"status"`
}

type CourseCount struct {
	CourseName    string `db:"course_name"`
	TotalStudents int    `db:"total_students"`
}

type CourseAverage struct {
	CourseName        string  `db:"course_name"`
	AveragePercentage float64 `db:"average_percentage"`
}

type StatusCount struct {
	Status        string `db:"status"`
	TotalStudents int    `db:"total_students"`
}

type FacultyPerformanceRow struct {
	FacultyName   string       `db:"faculty_name"`
	AvgTenth      null.Float64 `db:"avg_tenth_percent"`
	AvgTwelfth    null.Float64 `db:"avg_twelfth_percent"`
	TotalStudents int          `db:"total_students"`
}

// Params carries the inputs of the reports that take any (only the marks report for now).
type Params struct {
	Course   string `query:"course"`
	Semester string `query:"semester"`
}
