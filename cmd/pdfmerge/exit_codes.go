package main

import (
	"errors"
	"io/fs"

	"quotation-merger/internal/domain"
)

// Process exit codes.
const (
	ExitSuccess  = 0
	ExitGeneral  = 1
	ExitUsage    = 2
	ExitIO       = 3
	ExitDocument = 4
)

var (
	ErrReadInput   = errors.New("cannot read input")
	ErrWriteOutput = errors.New("cannot write output")
)

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage),
		errors.Is(err, ErrJobParse),
		errors.Is(err, domain.ErrMissingRequiredInput),
		errors.Is(err, domain.ErrOversizeInput):
		return ExitUsage
	case errors.Is(err, ErrReadInput),
		errors.Is(err, ErrWriteOutput),
		errors.Is(err, ErrJobRead),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIO
	case errors.Is(err, domain.ErrDocumentParse),
		errors.Is(err, domain.ErrEmptyDocument):
		return ExitDocument
	default:
		return ExitGeneral
	}
}
