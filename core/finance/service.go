package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/student"
)

// receiptSuffix makes receipt numbers issued within the same second for the same student distinct.
var receiptSuffix = func() string { // mockable
	return uuid.New().String()[:8]
}

// ReceiptNumber formats a receipt number: REC-<YYYYMMDDHHMMSS>-<roll>-<8 hex>.
func ReceiptNumber(at time.Time, roll string) string {
	return fmt.Sprintf("REC-%s-%s-%s", at.Format("20060102150405"), roll, receiptSuffix())
}

type (
	Repository interface {
		// CreatePayment fails with a core.DuplicateKeyError when the receipt number is taken.
		CreatePayment(ctx context.Context, exec core.DBExecutor, p Payment) (int, error)
		// QueryHistory returns the payments of existing students, newest first.
		QueryHistory(ctx context.Context, exec core.DBExecutor) ([]HistoryRow, error)
	}

	Service struct {
		db       core.DB
		repo     Repository
		students student.Repository
		college  core.CollegeConfig
	}
)

func NewService(db core.DB, repo Repository, studentRepo student.Repository, conf *core.Config) *Service {
	return &Service{db: db, repo: repo, students: studentRepo, college: conf.College}
}

// RecordPayment stores the payment and returns its receipt.
func (svc *Service) RecordPayment(ctx context.Context, pf PaymentForm) (Receipt, error) {
	if err := pf.Validate(); err != nil {
		return Receipt{}, err
	}

	now := core.Now()
	p := Payment{
		AmountPaid:    pf.amount(),
		PaymentDate:   now.Format(core.TimestampLayout),
		PaymentType:   pf.PaymentType,
		ReceiptNumber: ReceiptNumber(now, pf.RollNumber),
		Description:   pf.Description,
	}
	var s student.Student
	err := core.WithTx(ctx, svc.db, func(tx core.DBExecutor) error {
		var err error
		if s, err = svc.students.GetStudent(ctx, tx, student.GetFilter{RollNumber: pf.RollNumber}); err != nil {
			if core.IsNotFound(err) {
				return core.NewReferenceError("student", "roll_number", pf.RollNumber)
			}
			return err
		}
		p.StudentID = s.ID
		p.ID, err = svc.repo.CreatePayment(ctx, tx, p)
		return err
	})
	if err != nil {
		return Receipt{}, errors.Wrap(err, "recording payment")
	}

	return Receipt{
		Number:      p.ReceiptNumber,
		Date:        p.PaymentDate,
		StudentName: s.Name,
		RollNumber:  s.RollNumber,
		CourseName:  s.CourseName,
		Amount:      p.AmountPaid,
		PaymentType: p.PaymentType,
		Description: p.Description,
		College:     svc.college.Name,
		Currency:    svc.college.Currency,
	}, nil
}

func (svc *Service) History(ctx context.Context) ([]HistoryRow, error) {
	rows, err := svc.repo.QueryHistory(ctx, svc.db)
	if err != nil {
		return nil, errors.Wrap(err, "querying payment history")
	}
	return rows, nil
}
