package apps

import "github.com/pkg/errors"

// ArgumentError reports a command line flag with an unusable value.
type ArgumentError struct {
	Flag string
	Msg  string
}

func NewArgumentError(flag, msg string) error {
	return &ArgumentError{Flag: flag, Msg: msg}
}

func (err *ArgumentError) Error() string {
	return "-" + err.Flag + ": " + err.Msg
}

func IsArgumentError(err error) bool {
	_, ok := errors.Cause(err).(*ArgumentError)
	return ok
}
