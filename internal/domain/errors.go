package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUser      = errors.New("user id already taken")
	ErrAlreadyAnswered    = errors.New("question already answered")
	ErrUnauthorized       = errors.New("unauthorized")
)
