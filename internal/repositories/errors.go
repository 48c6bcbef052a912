package repositories

import "errors"

var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrEmailTaken       = errors.New("email already registered")
)
