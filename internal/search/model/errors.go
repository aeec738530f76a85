package model

import "errors"

var (
	ErrFieldNotFound      = errors.New("field not found")
	ErrEmptyInput         = errors.New("no search terms")
	ErrDatasetUnavailable = errors.New("dataset unavailable, upload first")
	ErrMalformedSource    = errors.New("malformed spreadsheet")
)
