package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/volatiletech/null/v8"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/student"
	"github.com/saraswati/sdms/storage/database/dberrors"
)

type studentRepository struct{}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository() *studentRepository {
	return &studentRepository{}
}

func selectStudents(exec core.DBExecutor) sq.SelectBuilder {
	return builder(exec).
		Select(
			"s.student_id", "s.roll_number", "s.user_id", "s.name", "s.contact_number", "s.email", "s.address",
			"s.aadhaar_no", "s.date_of_birth", "s.gender", "s.tenth_percent", "s.twelfth_percent", "s.blood_group",
			"s.mother_name", "s.enrollment_status", "s.enrollment_date", "s.course_id", "s.academic_year_id",
			"s.faculty_id", "s.profile_picture_path",
			"COALESCE(c.course_name, '') AS course_name",
			"COALESCE(a.year_name, '') AS year_name",
			"COALESCE(f.faculty_name, '') AS faculty_name",
		).
		From("students s").
		LeftJoin("courses c ON s.course_id = c.course_id").
		LeftJoin("academic_years a ON s.academic_year_id = a.year_id").
		LeftJoin("faculties f ON s.faculty_id = f.faculty_id")
}

func studentValues(s student.Student) map[string]interface{} {
	return map[string]interface{}{
		"roll_number":          s.RollNumber,
		"user_id":              s.UserID,
		"name":                 s.Name,
		"contact_number":       s.ContactNumber,
		"email":                s.Email,
		"address":              s.Address,
		"aadhaar_no":           s.AadhaarNo,
		"date_of_birth":        s.DateOfBirth,
		"gender":               s.Gender,
		"tenth_percent":        s.TenthPercent,
		"twelfth_percent":      s.TwelfthPercent,
		"blood_group":          s.BloodGroup,
		"mother_name":          s.MotherName,
		"enrollment_status":    s.EnrollmentStatus,
		"enrollment_date":      s.EnrollmentDate,
		"course_id":            s.CourseID,
		"academic_year_id":     s.AcademicYearID,
		"faculty_id":           s.FacultyID,
		"profile_picture_path": s.ProfilePicturePath,
	}
}

// duplicateErr turns a unique violation on the students table into a core.DuplicateKeyError.
func duplicateErr(err error, s student.Student) error {
	column, ok := dberrors.UniqueViolation(err)
	if !ok {
		return err
	}
	if column == "aadhaar_no" {
		return core.NewDuplicateKeyError("aadhaar_no", s.AadhaarNo.String)
	}
	return core.NewDuplicateKeyError("roll_number", s.RollNumber)
}

func (repo studentRepository) CheckUniqueness(ctx context.Context, exec core.DBExecutor, roll string, aadhaar null.String, excludedID int) error {
	check := func(column, value string) error {
		var count int
		err := get(ctx, exec, &count, builder(exec).
			Select("COUNT(*)").
			From("students").
			Where(sq.And{sq.Eq{column: value}, sq.NotEq{"student_id": excludedID}}))
		if err != nil {
			return err
		}
		if count > 0 {
			return core.NewDuplicateKeyError(column, value)
		}
		return nil
	}

	if err := check("roll_number", roll); err != nil {
		return err
	}
	if aadhaar.Valid {
		return check("aadhaar_no", aadhaar.String)
	}
	return nil
}

func (repo studentRepository) CreateStudent(ctx context.Context, exec core.DBExecutor, s student.Student) (int, error) {
	id, err := insertReturningID(ctx, exec, builder(exec).Insert("students").SetMap(studentValues(s)), "student_id")
	if err != nil {
		return 0, duplicateErr(err, s)
	}
	return id, nil
}

func (repo studentRepository) GetStudent(ctx context.Context, exec core.DBExecutor, filter student.GetFilter) (student.Student, error) {
	q := selectStudents(exec)
	switch {
	case filter.ID != 0:
		q = q.Where(sq.Eq{"s.student_id": filter.ID})
	case filter.RollNumber != "":
		q = q.Where(sq.Eq{"s.roll_number": filter.RollNumber})
	default:
		return student.Student{}, core.ErrNotFound
	}
	var s student.Student
	err := get(ctx, exec, &s, q)
	return s, err
}

// studentOrderings maps the sortable fields to their columns.
var studentOrderings = map[string]string{
	"student_id":      "s.student_id",
	"roll_number":     "s.roll_number",
	"name":            "s.name",
	"enrollment_date": "s.enrollment_date",
	"course_name":     "course_name",
}

func (repo studentRepository) QueryStudents(
	ctx context.Context,
	exec core.DBExecutor,
	search string,
	orderings ...core.DBOrdering,
) ([]student.Student, error) {
	q := selectStudents(exec)
	for _, ord := range orderings {
		if col, ok := studentOrderings[ord.Field]; ok {
			q = q.OrderBy(core.DBOrdering{Field: col, Ascending: ord.Ascending}.String())
		}
	}
	q = q.OrderBy("s.student_id DESC")
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where(sq.Or{sq.Like{"s.roll_number": pattern}, sq.Like{"s.name": pattern}})
	}
	var students []student.Student
	err := selectAll(ctx, exec, &students, q)
	return students, err
}

func (repo studentRepository) UpdateStudent(ctx context.Context, exec core.DBExecutor, s student.Student) error {
	n, err := execAffecting(ctx, exec, builder(exec).Update("students").
		SetMap(studentValues(s)).
		Where(sq.Eq{"student_id": s.ID}))
	if err != nil {
		return duplicateErr(err, s)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (repo studentRepository) DeleteStudent(ctx context.Context, exec core.DBExecutor, id int) error {
	n, err := execAffecting(ctx, exec, builder(exec).Delete("students").Where(sq.Eq{"student_id": id}))
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (repo studentRepository) OrphanRecords(ctx context.Context, exec core.DBExecutor, id int) error {
	for _, table := range []string{"marks", "payments"} {
		_, err := execAffecting(ctx, exec, builder(exec).Update(table).
			Set("orphaned", true).
			Where(sq.Eq{"student_id": id}))
		if err != nil {
			return err
		}
	}
	return nil
}
