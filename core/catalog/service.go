package catalog

import (
	"context"

	"github.com/pkg/errors"

	"github.com/saraswati/sdms/core"
)

type (
	// Repository reads the lookup tables. The Get*ByName methods return a core.ReferenceError when nothing matches.
	Repository interface {
		QueryCourses(ctx context.Context, exec core.DBExecutor) ([]Course, error)
		QueryAcademicYears(ctx context.Context, exec core.DBExecutor) ([]AcademicYear, error)
		QueryFaculties(ctx context.Context, exec core.DBExecutor) ([]Faculty, error)
		GetCourseByName(ctx context.Context, exec core.DBExecutor, name string) (Course, error)
		GetAcademicYearByName(ctx context.Context, exec core.DBExecutor, name string) (AcademicYear, error)
		GetFacultyByName(ctx context.Context, exec core.DBExecutor, name string) (Faculty, error)
	}

	Service struct {
		db   core.DB
		repo Repository
	}
)

func NewService(db core.DB, repo Repository) *Service {
	return &Service{db: db, repo: repo}
}

func (svc *Service) Courses(ctx context.Context) ([]Course, error) {
	courses, err := svc.repo.QueryCourses(ctx, svc.db)
	return courses, errors.Wrap(err, "querying courses")
}

func (svc *Service) AcademicYears(ctx context.Context) ([]AcademicYear, error) {
	years, err := svc.repo.QueryAcademicYears(ctx, svc.db)
	return years, errors.Wrap(err, "querying academic years")
}

func (svc *Service) Faculties(ctx context.Context) ([]Faculty, error) {
	faculties, err := svc.repo.QueryFaculties(ctx, svc.db)
	return faculties, errors.Wrap(err, "querying faculties")
}
