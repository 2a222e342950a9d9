package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/academic"
)

type academicRepository struct{}

var _ academic.Repository = (*academicRepository)(nil)

func NewAcademicRepository() *academicRepository {
	return &academicRepository{}
}

func (repo academicRepository) CreateMark(ctx context.Context, exec core.DBExecutor, m academic.Mark) (int, error) {
	return insertReturningID(ctx, exec, builder(exec).Insert("marks").
		Columns("student_id", "course_id", "subject_name", "semester", "marks_obtained", "max_marks", "grade").
		Values(m.StudentID, m.CourseID, m.SubjectName, m.Semester, m.MarksObtained, m.MaxMarks, m.Grade),
		"mark_id")
}

func (repo academicRepository) QueryStudentMarks(ctx context.Context, exec core.DBExecutor, studentID int) ([]academic.Mark, error) {
	var marks []academic.Mark
	err := selectAll(ctx, exec, &marks, builder(exec).
		Select(
			"m.mark_id", "m.student_id", "m.course_id", "COALESCE(c.course_name, '') AS course_name",
			"m.subject_name", "m.semester", "m.marks_obtained", "m.max_marks", "m.grade", "m.orphaned",
		).
		From("marks m").
		LeftJoin("courses c ON m.course_id = c.course_id").
		Where(sq.Eq{"m.student_id": studentID}).
		OrderBy("m.semester", "m.subject_name"))
	return marks, err
}

func (repo academicRepository) QueryCourseMarks(ctx context.Context, exec core.DBExecutor, courseID, semester int) ([]academic.ReportRow, error) {
	var rows []academic.ReportRow
	err := selectAll(ctx, exec, &rows, builder(exec).
		Select("s.roll_number", "s.name", "m.subject_name", "m.marks_obtained", "m.max_marks", "m.grade").
		From("marks m").
		Join("students s ON m.student_id = s.student_id").
		Where(sq.Eq{"m.course_id": courseID, "m.semester": semester}).
		OrderBy("s.name", "m.subject_name"))
	return rows, err
}
