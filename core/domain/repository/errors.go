package repository

import "errors"

var (
	ErrRunRecordNotFound = errors.New("run record not found")
	ErrMongodb           = errors.New("mongodb operation failed")
	ErrInvalidQuery      = errors.New("invalid query")
)
