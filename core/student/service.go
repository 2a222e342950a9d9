package student

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/catalog"
	"github.com/saraswati/sdms/core/user"
)

type (
	Repository interface {
		// CheckUniqueness returns a core.DuplicateKeyError when another row (any row but excludedID) already
		// uses the roll number or the aadhaar number.
		CheckUniqueness(ctx context.Context, exec core.DBExecutor, roll string, aadhaar null.String, excludedID int) error
		CreateStudent(ctx context.Context, exec core.DBExecutor, s Student) (int, error)
		GetStudent(ctx context.Context, exec core.DBExecutor, filter GetFilter) (Student, error)
		// QueryStudents matches search against the roll number or the name, ordered by orderings then newest
		// first. Unknown ordering fields are ignored.
		QueryStudents(ctx context.Context, exec core.DBExecutor, search string, orderings ...core.DBOrdering) ([]Student, error)
		UpdateStudent(ctx context.Context, exec core.DBExecutor, s Student) error
		DeleteStudent(ctx context.Context, exec core.DBExecutor, id int) error
		// OrphanRecords flags the marks and payments of a student as orphaned.
		OrphanRecords(ctx context.Context, exec core.DBExecutor, id int) error
	}

	Service struct {
		db      core.DB
		repo    Repository
		catalog catalog.Repository
		users   user.Repository
	}
)

func NewService(db core.DB, repo Repository, catalogRepo catalog.Repository, userRepo user.Repository) *Service {
	return &Service{db: db, repo: repo, catalog: catalogRepo, users: userRepo}
}

// resolve turns the course, academic year and faculty names of the form into ids and checks the linked user.
func (svc *Service) resolve(ctx context.Context, exec core.DBExecutor, s *Student) error {
	if s.UserID.Valid {
		if _, err := svc.users.GetUserByID(ctx, exec, s.UserID.String); err != nil {
			if core.IsNotFound(err) {
				return core.NewReferenceError("user", "user_id", s.UserID.String)
			}
			return err
		}
	}
	course, err := svc.catalog.GetCourseByName(ctx, exec, s.CourseName)
	if err != nil {
		return err
	}
	year, err := svc.catalog.GetAcademicYearByName(ctx, exec, s.AcademicYearName)
	if err != nil {
		return err
	}
	faculty, err := svc.catalog.GetFacultyByName(ctx, exec, s.FacultyName)
	if err != nil {
		return err
	}
	s.CourseID, s.AcademicYearID, s.FacultyID = course.ID, year.ID, faculty.ID
	return nil
}

func (svc *Service) Create(ctx context.Context, f Form) (Student, error) {
	if err := f.Validate(); err != nil {
		return Student{}, err
	}
	s := f.student()

	err := core.WithTx(ctx, svc.db, func(tx core.DBExecutor) error {
		if err := svc.resolve(ctx, tx, &s); err != nil {
			return err
		}
		if err := svc.repo.CheckUniqueness(ctx, tx, s.RollNumber, s.AadhaarNo, 0); err != nil {
			return err
		}
		id, err := svc.repo.CreateStudent(ctx, tx, s)
		if err != nil {
			return errors.Wrap(err, "inserting student")
		}
		s, err = svc.repo.GetStudent(ctx, tx, GetFilter{ID: id})
		return err
	})
	if err != nil {
		return Student{}, errors.Wrap(err, "creating student")
	}
	return s, nil
}

func (svc *Service) Update(ctx context.Context, id int, f Form) (Student, error) {
	if err := f.Validate(); err != nil {
		return Student{}, err
	}
	s := f.student()
	s.ID = id

	err := core.WithTx(ctx, svc.db, func(tx core.DBExecutor) error {
		if _, err := svc.repo.GetStudent(ctx, tx, GetFilter{ID: id}); err != nil {
			return err
		}
		if err := svc.resolve(ctx, tx, &s); err != nil {
			return err
		}
		if err := svc.repo.CheckUniqueness(ctx, tx, s.RollNumber, s.AadhaarNo, id); err != nil {
			return err
		}
		if err := svc.repo.UpdateStudent(ctx, tx, s); err != nil {
			return errors.Wrap(err, "updating student")
		}
		var err error
		s, err = svc.repo.GetStudent(ctx, tx, GetFilter{ID: id})
		return err
	})
	if err != nil {
		return Student{}, errors.Wrapf(err, "updating student %d", id)
	}
	return s, nil
}

// Delete removes the student. Its marks and payments are kept, flagged as orphaned.
func (svc *Service) Delete(ctx context.Context, id int) error {
	err := core.WithTx(ctx, svc.db, func(tx core.DBExecutor) error {
		if err := svc.repo.DeleteStudent(ctx, tx, id); err != nil {
			return err
		}
		return svc.repo.OrphanRecords(ctx, tx, id)
	})
	return errors.Wrapf(err, "deleting student %d", id)
}

func (svc *Service) Get(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudent(ctx, svc.db, GetFilter{ID: id})
}

func (svc *Service) GetByRoll(ctx context.Context, roll string) (Student, error) {
	return svc.repo.GetStudent(ctx, svc.db, GetFilter{RollNumber: core.CleanString(roll)})
}

// Search does a substring match on the roll number or the name. An empty term lists everyone.
func (svc *Service) Search(ctx context.Context, term string, orderings ...core.DBOrdering) ([]Student, error) {
	students, err := svc.repo.QueryStudents(ctx, svc.db, core.CleanString(term), orderings...)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return students, nil
}

func (svc *Service) List(ctx context.Context) ([]Student, error) {
	return svc.Search(ctx, "")
}
