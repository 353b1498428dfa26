package service

import "errors"

var (
	ErrInputNotFound   = errors.New("log file not found")
	ErrInputPermission = errors.New("permission denied reading log file")
	ErrReadInput       = errors.New("cannot read log input")
	ErrUnexpectedLine  = errors.New("unexpected error")
	ErrNotFinished     = errors.New("analysis has not finished ingesting")
	ErrAlreadyIngested = errors.New("analysis already ingested its input")

	ErrRunAlreadyArchived = errors.New("run already archived")
	ErrCannotArchive      = errors.New("cannot archive run")
)
