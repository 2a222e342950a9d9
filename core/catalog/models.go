package catalog

type Faculty struct {
	ID   int    `db:"faculty_id" json:"faculty_id"`
	Name string `db:"faculty_name" json:"faculty_name"`
}

type AcademicYear struct {
	ID   int    `db:"year_id" json:"year_id"`
	Name string `db:"year_name" json:"year_name"`
}

type Course struct {
	ID         int    `db:"course_id" json:"course_id"`
	Name       string `db:"course_name" json:"course_name"`
	Code       string `db:"course_code" json:"course_code"`
	Duration   string `db:"duration" json:"duration"`
	Department string `db:"department" json:"department"`
}
