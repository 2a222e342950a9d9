package finance_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/finance"
	"github.com/saraswati/sdms/tests"
)

func TestService_RecordPayment(t *testing.T) {
	svcs, _ := testutil.Services(t)
	ctx := context.Background()
	testutil.CreateStudent(t, svcs.Student, testutil.StudentForm("BCA-001", "Asha Patil"))

	origNow := core.Now
	defer func() { core.Now = origNow }()
	core.Now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local) }

	r, err := svcs.Finance.RecordPayment(ctx, finance.PaymentForm{RollNumber: " BCA-001 ", Amount: "0.01"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(r.Number, "REC-20240309140507-BCA-001-"), r.Number)
	assert.Len(t, r.Number, len("REC-20240309140507-BCA-001-")+8)
	assert.Equal(t, "2024-03-09 14:05:07", r.Date)
	assert.Equal(t, "Asha Patil", r.StudentName)
	assert.Equal(t, "Bachelor of Computer Applications", r.CourseName)
	assert.Equal(t, finance.DefaultPaymentType, r.PaymentType)
	assert.Equal(t, "INR", r.Currency)
	assert.Contains(t, r.Text(), "Amount Paid:  INR 0.01")

	// same second, same student
	r2 := testutil.RecordPayment(t, svcs.Finance, "BCA-001", "200", "Library")
	assert.NotEqual(t, r.Number, r2.Number)

	t.Run("unknown roll", func(t *testing.T) {
		_, err := svcs.Finance.RecordPayment(ctx, finance.PaymentForm{RollNumber: "lol", Amount: "10"})
		if assert.True(t, core.IsReferenceNotFound(err), "got %v", err) {
			assert.Contains(t, err.Error(), `student "lol" not found`)
		}
	})
	t.Run("invalid amount", func(t *testing.T) {
		_, err := svcs.Finance.RecordPayment(ctx, finance.PaymentForm{RollNumber: "BCA-001", Amount: "0"})
		fields, ok := core.FieldErrors(err)
		assert.True(t, ok)
		assert.Contains(t, fields, "amount")
	})

	history, err := svcs.Finance.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	numbers := []string{history[0].ReceiptNumber, history[1].ReceiptNumber}
	assert.ElementsMatch(t, []string{r.Number, r2.Number}, numbers)
	for _, row := range history {
		assert.Equal(t, "BCA-001", row.RollNumber)
		assert.Equal(t, "Asha Patil", row.StudentName)
	}
}
