package repository

import "errors"

var (
	ErrNotFound    = errors.New("habit record not found")
	ErrDuplicateID = errors.New("habit id already exists")
)
