package sqlxrepos

import (
	"context"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/report"
)

type reportRepository struct{}

var _ report.Repository = (*reportRepository)(nil)

func NewReportRepository() *reportRepository {
	return &reportRepository{}
}

const statusExpr = "CASE WHEN s.enrollment_status THEN 'Active' ELSE 'Inactive' END"

func (repo reportRepository) QueryEnrollment(ctx context.Context, exec core.DBExecutor) ([]report.EnrollmentRow, error) {
	var rows []report.EnrollmentRow
	err := selectAll(ctx, exec, &rows, builder(exec).
		Select(
			"s.roll_number", "s.name", "s.enrollment_date",
			"COALESCE(c.course_name, '') AS course_name",
			"COALESCE(a.year_name, '') AS year_name",
			"COALESCE(f.faculty_name, '') AS faculty_name",
			statusExpr+" AS status",
		).
		From("students s").
		LeftJoin("courses c ON s.course_id = c.course_id").
		LeftJoin("academic_years a ON s.academic_year_id = a.year_id").
		LeftJoin("faculties f ON s.faculty_id = f.faculty_id").
		OrderBy("s.enrollment_date DESC", "s.student_id DESC"))
	return rows, err
}

func (repo reportRepository) QueryStudentsPerCourse(ctx context.Context, exec core.DBExecutor) ([]report.CourseCount, error) {
	var rows []report.CourseCount
	err := selectAll(ctx, exec, &rows, builder(exec).
		Select("c.course_name", "COUNT(s.student_id) AS total_students").
		From("courses c").
		LeftJoin("students s ON c.course_id = s.course_id").
		GroupBy("c.course_name").
		OrderBy("total_students DESC", "c.course_name"))
	return rows, err
}

func (repo reportRepository) QueryAverageMarks(ctx context.Context, exec core.DBExecutor) ([]report.CourseAverage, error) {
	var rows []report.CourseAverage
	err := selectAll(ctx, exec, &rows, builder(exec).
		Select("c.course_name", "AVG(m.marks_obtained * 100.0 / m.max_marks) AS average_percentage").
		From("marks m").
		Join("courses c ON m.course_id = c.course_id").
		Where("m.max_marks > 0").
		GroupBy("c.course_name").
		OrderBy("average_percentage DESC", "c.course_name"))
	return rows, err
}

func (repo reportRepository) QueryEnrollmentStatus(ctx context.Context, exec core.DBExecutor) ([]report.StatusCount, error) {
	var rows []report.StatusCount
	err := selectAll(ctx, exec, &rows, builder(exec).
		Select(statusExpr+" AS status", "COUNT(s.student_id) AS total_students").
		From("students s").
		GroupBy(statusExpr).
		OrderBy("status DESC"))
	return rows, err
}

func (repo reportRepository) QueryFacultyPerformance(ctx context.Context, exec core.DBExecutor) ([]report.FacultyPerformanceRow, error) {
	var rows []report.FacultyPerformanceRow
	err := selectAll(ctx, exec, &rows, builder(exec).
		Select(
			"f.faculty_name",
			"AVG(s.tenth_percent) AS avg_tenth_percent",
			"AVG(s.twelfth_percent) AS avg_twelfth_percent",
			"COUNT(s.student_id) AS total_students",
		).
		From("faculties f").
		LeftJoin("students s ON f.faculty_id = s.faculty_id").
		GroupBy("f.faculty_name").
		OrderBy(
			"AVG(s.tenth_percent) IS NULL", "AVG(s.tenth_percent) DESC",
			"AVG(s.twelfth_percent) IS NULL", "AVG(s.twelfth_percent) DESC",
			"f.faculty_name",
		))
	return rows, err
}
