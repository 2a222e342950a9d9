package finance

import (
	"fmt"
	"strings"

	"github.com/saraswati/sdms/core"
)

const DefaultPaymentType = "Tuition Fee"

// PaymentTypes are the choices offered by the receipt form.
var PaymentTypes = []string{DefaultPaymentType, "Exam Fee", "Library Fine", "Other"}

type Payment struct {
	ID            int     `db:"payment_id" json:"payment_id"`
	StudentID     int     `db:"student_id" json:"student_id"`
	AmountPaid    float64 `db:"amount_paid" json:"amount_paid"`
	PaymentDate   string  `db:"payment_date" json:"payment_date"`
	PaymentType   string  `db:"payment_type" json:"payment_type"`
	ReceiptNumber string  `db:"receipt_number" json:"receipt_number"`
	Description   string  `db:"description" json:"description"`
	Orphaned      bool    `db:"orphaned" json:"orphaned"`
}

// HistoryRow is a payment joined with its student.
type HistoryRow struct {
	RollNumber    string  `db:"roll_number" json:"roll_number"`
	StudentName   string  `db:"name" json:"student_name"`
	AmountPaid    float64 `db:"amount_paid" json:"amount_paid"`
	PaymentDate   string  `db:"payment_date" json:"payment_date"`
	PaymentType   string  `db:"payment_type" json:"payment_type"`
	ReceiptNumber string  `db:"receipt_number" json:"receipt_number"`
	Description   string  `db:"description" json:"description"`
}

type PaymentForm struct {
	RollNumber  string `json:"roll_number" validate:"required,notblank"`
	Amount      string `json:"amount" validate:"required,numeric"`
	PaymentType string `json:"payment_type"`
	Description string `json:"description"`
}

func (pf *PaymentForm) Validate() error {
	pf.RollNumber = core.CleanString(pf.RollNumber)
	pf.Amount = core.CleanString(pf.Amount)
	pf.PaymentType = core.CleanString(pf.PaymentType)
	pf.Description = core.CleanString(pf.Description)
	if pf.PaymentType == "" {
		pf.PaymentType = DefaultPaymentType
	}
	if err := core.Validate.Struct(pf); err != nil {
		return err
	}
	if amount, _, err := core.ParseFloat(pf.Amount); err != nil || amount <= 0 {
		return core.NewFieldError("amount", "amount paid must be a valid positive number")
	}
	return nil
}

// amount is only meaningful once Validate has passed.
func (pf PaymentForm) amount() float64 {
	amount, _, _ := core.ParseFloat(pf.Amount)
	return amount
}

// Receipt is the printable record of a single payment.
type Receipt struct {
	Number      string  `json:"receipt_number"`
	Date        string  `json:"date"`
	StudentName string  `json:"student_name"`
	RollNumber  string  `json:"roll_number"`
	CourseName  string  `json:"course_name"`
	Amount      float64 `json:"amount"`
	PaymentType string  `json:"payment_type"`
	Description string  `json:"description"`

	College  string `json:"college"`
	Currency string `json:"currency"`
}

const receiptRule = "---------------------------------------------------"

func (r Receipt) Text() string {
	desc := r.Description
	if desc == "" {
		desc = "N/A"
	}
	course := r.CourseName
	if course == "" {
		course = "N/A"
	}

	var b strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format+"\n", args...)
	}
	line(receiptRule)
	line("        %s", r.College)
	line("        PAYMENT RECEIPT")
	line(receiptRule)
	line("")
	line("Receipt No:   %s", r.Number)
	line("Date:         %s", r.Date)
	line("")
	line("Student Name: %s", r.StudentName)
	line("Roll Number:  %s", r.RollNumber)
	line("Course:       %s", course)
	line("")
	line("Amount Paid:  %s %.2f", r.Currency, r.Amount)
	line("Payment Type: %s", r.PaymentType)
	line("Description:  %s", desc)
	line("")
	line("")
	line("                                signature")
	line(receiptRule)
	line("Thank you for your payment!")
	line(receiptRule)
	return b.String()
}
