package usecase

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrCorpusUnavailable = errors.New("job corpus unavailable")
)
