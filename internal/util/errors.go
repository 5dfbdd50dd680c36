package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrInvalidFileType    = errors.New("invalid file type")
)
