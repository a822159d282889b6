package service

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrTaskTaken  = errors.New("task is no longer open")
	ErrForbidden  = errors.New("forbidden")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validationError carries a message meant for the person filling the form.
type validationError string

func (e validationError) Error() string { return string(e) }

func (e validationError) Is(target error) bool { return target == ErrValidation }

// forbiddenError is a refusal whose message can be shown to the caller.
type forbiddenError string

func (e forbiddenError) Error() string { return string(e) }

func (e forbiddenError) Is(target error) bool { return target == ErrForbidden }

func forbidden(msg string) error {
	return forbiddenError(msg)
}

func invalid(msg string) error {
	return validationError(msg)
}

func notFound(what string) error {
	return &notFoundError{what: what}
}

type notFoundError struct {
	what string
}

func (e *notFoundError) Error() string { return e.what + " not found" }

func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }

func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}
