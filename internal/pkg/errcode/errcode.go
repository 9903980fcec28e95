package errcode

const (
	ErrUnknown = 10000000 + iota
	ErrNotFound
	ErrInvalid
	ErrTooMany
	ErrInternal
	ErrEmptyInput
	ErrInputTooLarge
	ErrInvalidFile
	ErrUploadFailed
	ErrFetchFailed
	ErrBackendAuth
	ErrBackendUnavailable
)
