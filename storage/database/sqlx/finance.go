package sqlxrepos

import (
	"context"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/finance"
	"github.com/saraswati/sdms/storage/database/dberrors"
)

type financeRepository struct{}

var _ finance.Repository = (*financeRepository)(nil)

func NewFinanceRepository() *financeRepository {
	return &financeRepository{}
}

func (repo financeRepository) CreatePayment(ctx context.Context, exec core.DBExecutor, p finance.Payment) (int, error) {
	id, err := insertReturningID(ctx, exec, builder(exec).Insert("payments").
		Columns("student_id", "amount_paid", "payment_date", "payment_type", "receipt_number", "description").
		Values(p.StudentID, p.AmountPaid, p.PaymentDate, p.PaymentType, p.ReceiptNumber, p.Description),
		"payment_id")
	if _, ok := dberrors.UniqueViolation(err); ok {
		return 0, core.NewDuplicateKeyError("receipt_number", p.ReceiptNumber)
	}
	return id, err
}

func (repo financeRepository) QueryHistory(ctx context.Context, exec core.DBExecutor) ([]finance.HistoryRow, error) {
	var rows []finance.HistoryRow
	err := selectAll(ctx, exec, &rows, builder(exec).
		Select(
			"s.roll_number", "s.name", "p.amount_paid", "p.payment_date", "p.payment_type", "p.receipt_number",
			"p.description",
		).
		From("payments p").
		Join("students s ON p.student_id = s.student_id").
		OrderBy("p.payment_date DESC", "p.payment_id DESC"))
	return rows, err
}
