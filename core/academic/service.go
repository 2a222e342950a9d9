package academic

import (
	"context"

	"github.com/pkg/errors"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/catalog"
	"github.com/saraswati/sdms/core/student"
)

var errInvalidMarks = errors.New("invalid marks")

type (
	Repository interface {
		CreateMark(ctx context.Context, exec core.DBExecutor, m Mark) (int, error)
		// QueryStudentMarks returns the marks of one student ordered by semester then subject.
		QueryStudentMarks(ctx context.Context, exec core.DBExecutor, studentID int) ([]Mark, error)
		// QueryCourseMarks returns the marks of a course semester ordered by student name then subject.
		QueryCourseMarks(ctx context.Context, exec core.DBExecutor, courseID, semester int) ([]ReportRow, error)
	}

	Service struct {
		db         core.DB
		repo       Repository
		students   student.Repository
		catalog    catalog.Repository
		allowBonus bool
	}
)

func NewService(db core.DB, repo Repository, studentRepo student.Repository, catalogRepo catalog.Repository, conf *core.Config) *Service {
	return &Service{
		db:         db,
		repo:       repo,
		students:   studentRepo,
		catalog:    catalogRepo,
		allowBonus: conf.AllowBonusMarks,
	}
}

// getStudent looks a student up by roll number, reporting an unknown one as a core.ReferenceError.
func getStudent(ctx context.Context, exec core.DBExecutor, repo student.Repository, roll string) (student.Student, error) {
	s, err := repo.GetStudent(ctx, exec, student.GetFilter{RollNumber: roll})
	if err != nil {
		if core.IsNotFound(err) {
			return student.Student{}, core.NewReferenceError("student", "roll_number", roll)
		}
		return student.Student{}, errors.Wrap(err, "finding student by roll number")
	}
	return s, nil
}

func (svc *Service) AddMark(ctx context.Context, mf MarkForm) (Mark, error) {
	if err := mf.Validate(svc.allowBonus); err != nil {
		return Mark{}, err
	}
	m, _ := mf.mark()

	err := core.WithTx(ctx, svc.db, func(tx core.DBExecutor) error {
		s, err := getStudent(ctx, tx, svc.students, mf.RollNumber)
		if err != nil {
			return err
		}
		course, err := svc.catalog.GetCourseByName(ctx, tx, m.CourseName)
		if err != nil {
			return err
		}
		m.StudentID, m.CourseID, m.CourseName = s.ID, course.ID, course.Name
		m.ID, err = svc.repo.CreateMark(ctx, tx, m)
		return errors.Wrap(err, "inserting mark")
	})
	if err != nil {
		return Mark{}, errors.Wrap(err, "adding mark")
	}
	return m, nil
}

// MarksFor returns the marks of the student with the given roll number.
func (svc *Service) MarksFor(ctx context.Context, roll string) ([]Mark, error) {
	s, err := getStudent(ctx, svc.db, svc.students, core.CleanString(roll))
	if err != nil {
		return nil, err
	}
	return svc.MarksForStudent(ctx, s.ID)
}

func (svc *Service) MarksForStudent(ctx context.Context, studentID int) ([]Mark, error) {
	marks, err := svc.repo.QueryStudentMarks(ctx, svc.db, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying student marks")
	}
	return marks, nil
}

// MarksReport lists the marks of every student of a course for one semester. No rows is not an error.
func (svc *Service) MarksReport(ctx context.Context, rq ReportQuery) ([]ReportRow, error) {
	semester, err := rq.Validate()
	if err != nil {
		return nil, err
	}
	course, err := svc.catalog.GetCourseByName(ctx, svc.db, rq.CourseName)
	if err != nil {
		return nil, err
	}
	rows, err := svc.repo.QueryCourseMarks(ctx, svc.db, course.ID, semester)
	if err != nil {
		return nil, errors.Wrap(err, "querying course marks")
	}
	return rows, nil
}
