package apps

import (
	"context"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/academic"
	"github.com/saraswati/sdms/core/catalog"
	"github.com/saraswati/sdms/core/feedback"
	"github.com/saraswati/sdms/core/finance"
	"github.com/saraswati/sdms/core/report"
	"github.com/saraswati/sdms/core/student"
	"github.com/saraswati/sdms/core/user"
	"github.com/saraswati/sdms/services/idcard"
	"github.com/saraswati/sdms/services/logger"
	"github.com/saraswati/sdms/services/pdfreport"
	"github.com/saraswati/sdms/storage/database"
	sqlxrepos "github.com/saraswati/sdms/storage/database/sqlx"
)

// Services holds every domain service, wired on one database handle.
type Services struct {
	Conf   *core.Config
	Logger core.Logger

	User     *user.Service
	Catalog  *catalog.Service
	Student  *student.Service
	Academic *academic.Service
	Finance  *finance.Service
	Feedback *feedback.Service
	Report   *report.Service

	IDCard    *idcard.Generator
	PDFReport *pdfreport.Generator
}

func NewServices(db core.DB, conf *core.Config, logger core.Logger) *Services {
	usrRepo := sqlxrepos.NewUserRepository()
	catalogRepo := sqlxrepos.NewCatalogRepository()
	studentRepo := sqlxrepos.NewStudentRepository()

	svcs := &Services{
		Conf:    conf,
		Logger:  logger,
		User:    user.NewService(db, usrRepo, user.NewHasher(conf.SecretKey)),
		Catalog: catalog.NewService(db, catalogRepo),
		Student: student.NewService(db, studentRepo, catalogRepo, usrRepo),
		Academic: academic.NewService(
			db, sqlxrepos.NewAcademicRepository(), studentRepo, catalogRepo, conf,
		),
		Feedback: feedback.NewService(db, sqlxrepos.NewFeedbackRepository()),
	}
	svcs.Finance = finance.NewService(db, sqlxrepos.NewFinanceRepository(), studentRepo, conf)
	svcs.Report = report.NewService(db, sqlxrepos.NewReportRepository(), svcs.Academic, svcs.Finance)
	svcs.IDCard = idcard.NewGenerator(conf, logger, svcs.Student)
	svcs.PDFReport = pdfreport.NewGenerator(conf, svcs.Student, svcs.Academic)
	return svcs
}

// NewLogger returns the process logger; rollbar reporting is off in debug mode.
func NewLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(os.Stdout, conf)
	logger.Enable(!conf.Debug)
	return logger
}

// SetUpDB creates the postgres database when needed, opens the store and brings the schema up to date.
func SetUpDB(ctx context.Context, conf *core.Config, logger core.Logger) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(ctx, conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Initialize(ctx, db, conf, logger); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "initializing database")
	}
	return db, nil
}
