package sqlxrepos

import (
	"context"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/feedback"
)

type feedbackRepository struct{}

var _ feedback.Repository = (*feedbackRepository)(nil)

func NewFeedbackRepository() *feedbackRepository {
	return &feedbackRepository{}
}

func (repo feedbackRepository) CreateFeedback(ctx context.Context, exec core.DBExecutor, fb feedback.Feedback) (int, error) {
	return insertReturningID(ctx, exec, builder(exec).Insert("feedback").
		Columns("name", "email", "feedback_text", "submitted_at").
		Values(fb.Name, fb.Email, fb.Text, fb.SubmittedAt),
		"feedback_id")
}

func (repo feedbackRepository) QueryFeedback(ctx context.Context, exec core.DBExecutor) ([]feedback.Feedback, error) {
	var fbs []feedback.Feedback
	err := selectAll(ctx, exec, &fbs, builder(exec).
		Select("feedback_id", "name", "email", "feedback_text", "submitted_at").
		From("feedback").
		OrderBy("submitted_at DESC", "feedback_id DESC"))
	return fbs, err
}
