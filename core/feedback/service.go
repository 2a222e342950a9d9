package feedback

import (
	"context"

	"github.com/pkg/errors"

	"github.com/saraswati/sdms/core"
)

type (
	Repository interface {
		CreateFeedback(ctx context.Context, exec core.DBExecutor, fb Feedback) (int, error)
		// QueryFeedback returns all feedback, newest first.
		QueryFeedback(ctx context.Context, exec core.DBExecutor) ([]Feedback, error)
	}

	Service struct {
		db   core.DB
		repo Repository
	}
)

func NewService(db core.DB, repo Repository) *Service {
	return &Service{db: db, repo: repo}
}

func (svc *Service) Submit(ctx context.Context, f Form) (Feedback, error) {
	if err := f.Validate(); err != nil {
		return Feedback{}, err
	}
	fb := Feedback{
		Name:        f.Name,
		Email:       f.Email,
		Text:        f.Text,
		SubmittedAt: core.Now().Format(core.TimestampLayout),
	}
	err := core.WithTx(ctx, svc.db, func(tx core.DBExecutor) error {
		var err error
		fb.ID, err = svc.repo.CreateFeedback(ctx, tx, fb)
		return err
	})
	if err != nil {
		return Feedback{}, errors.Wrap(err, "submitting feedback")
	}
	return fb, nil
}

func (svc *Service) List(ctx context.Context) ([]Feedback, error) {
	fbs, err := svc.repo.QueryFeedback(ctx, svc.db)
	if err != nil {
		return nil, errors.Wrap(err, "querying feedback")
	}
	return fbs, nil
}
