package feedback

import "github.com/saraswati/sdms/core"

type Feedback struct {
	ID          int    `db:"feedback_id" json:"feedback_id"`
	Name        string `db:"name" json:"name"`
	Email       string `db:"email" json:"email"`
	Text        string `db:"feedback_text" json:"feedback_text"`
	SubmittedAt string `db:"submitted_at" json:"submitted_at"`
}

type Form struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Text  string `json:"feedback_text" validate:"required,notblank"`
}

func (f *Form) Validate() error {
	f.Name = core.CleanString(f.Name)
	f.Email = core.CleanString(f.Email, true /* lower */)
	f.Text = core.CleanString(f.Text)
	return core.Validate.Struct(f)
}
