package sqlxrepos

import (
	"context"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/catalog"
)

type catalogRepository struct{}

var _ catalog.Repository = (*catalogRepository)(nil)

func NewCatalogRepository() *catalogRepository {
	return &catalogRepository{}
}

var courseColumns = []string{"course_id", "course_name", "course_code", "duration", "department"}

func (repo catalogRepository) QueryCourses(ctx context.Context, exec core.DBExecutor) ([]catalog.Course, error) {
	var courses []catalog.Course
	err := selectAll(ctx, exec, &courses, builder(exec).Select(courseColumns...).From("courses").OrderBy("course_id"))
	return courses, err
}

func (repo catalogRepository) QueryAcademicYears(ctx context.Context, exec core.DBExecutor) ([]catalog.AcademicYear, error) {
	var years []catalog.AcademicYear
	err := selectAll(ctx, exec, &years, builder(exec).Select("year_id", "year_name").From("academic_years").OrderBy("year_id"))
	return years, err
}

func (repo catalogRepository) QueryFaculties(ctx context.Context, exec core.DBExecutor) ([]catalog.Faculty, error) {
	var faculties []catalog.Faculty
	err := selectAll(ctx, exec, &faculties, builder(exec).Select("faculty_id", "faculty_name").From("faculties").OrderBy("faculty_id"))
	return faculties, err
}

func (repo catalogRepository) GetCourseByName(ctx context.Context, exec core.DBExecutor, name string) (catalog.Course, error) {
	var course catalog.Course
	err := get(ctx, exec, &course, builder(exec).Select(courseColumns...).From("courses").Where("course_name = ?", name))
	if core.IsNotFound(err) {
		return course, core.NewReferenceError("course", "course_name", name)
	}
	return course, err
}

func (repo catalogRepository) GetAcademicYearByName(ctx context.Context, exec core.DBExecutor, name string) (catalog.AcademicYear, error) {
	var year catalog.AcademicYear
	err := get(ctx, exec, &year, builder(exec).Select("year_id", "year_name").From("academic_years").Where("year_name = ?", name))
	if core.IsNotFound(err) {
		return year, core.NewReferenceError("academic year", "academic_year_name", name)
	}
	return year, err
}

func (repo catalogRepository) GetFacultyByName(ctx context.Context, exec core.DBExecutor, name string) (catalog.Faculty, error) {
	var faculty catalog.Faculty
	err := get(ctx, exec, &faculty, builder(exec).Select("faculty_id", "faculty_name").From("faculties").Where("faculty_name = ?", name))
	if core.IsNotFound(err) {
		return faculty, core.NewReferenceError("faculty", "faculty_name", name)
	}
	return faculty, err
}
