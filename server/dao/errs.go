package dao

import "errors"

var (
	ErrConstraintViolation = errors.New("a run with that ID already exists")
	ErrNotFound            = errors.New("the requested run was not found")
)
