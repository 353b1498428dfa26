package report

import "errors"

var (
	ErrWriteReport   = errors.New("cannot write report")
	ErrUnknownReport = errors.New("unknown report")
)
