package domain

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateEmail   = errors.New("email already exists")
	ErrNameRequired     = errors.New("please enter your name")
	ErrInvalidEmail     = errors.New("please enter a valid email address")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrInvalidRole      = errors.New("please select a correct role")
)
