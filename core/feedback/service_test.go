package feedback_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/feedback"
	"github.com/saraswati/sdms/tests"
)

func TestService_Submit(t *testing.T) {
	svcs, _ := testutil.Services(t)
	ctx := context.Background()

	tests := []struct {
		name string
		form feedback.Form
		want map[string]string
	}{
		{name: "blank text", form: feedback.Form{Name: "Asha", Text: "  "}, want: map[string]string{"feedback_text": "this field is required"}},
		{name: "bad email", form: feedback.Form{Email: "lol", Text: "Hi"}, want: map[string]string{"email": "email must be a valid email address"}},
		{name: "anonymous", form: feedback.Form{Text: "Great library"}},
		{name: "signed", form: feedback.Form{Name: " Ravi ", Email: "Ravi@Test.IN", Text: "More labs please"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, err := svcs.Feedback.Submit(ctx, tt.form)
			if tt.want == nil {
				if assert.NoError(t, err) {
					assert.NotZero(t, fb.ID)
					assert.NotEmpty(t, fb.SubmittedAt)
				}
				return
			}
			fields, ok := core.FieldErrors(err)
			if assert.True(t, ok, "want a validation error, got %v", err) {
				assert.Equal(t, tt.want, fields)
			}
		})
	}

	fbs, err := svcs.Feedback.List(ctx)
	require.NoError(t, err)
	require.Len(t, fbs, 2)
	assert.Equal(t, "Ravi", fbs[0].Name)
	assert.Equal(t, "ravi@test.in", fbs[0].Email)
	assert.Equal(t, "Great library", fbs[1].Text)
}
