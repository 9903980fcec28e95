package errors

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalid        = errors.New("invalid")
	ErrTooMany        = errors.New("too many requests")
	ErrInternal       = errors.New("internal")
	ErrEmptyInput     = errors.New("empty input")
	ErrInputTooLarge  = errors.New("input too large")
	ErrUnsupportedDoc = errors.New("unsupported document format")
	ErrFetchFailed    = errors.New("fetch failed")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsEmptyInput(err error) bool {
	return errors.Is(err, ErrEmptyInput)
}
