package client

import (
	"errors"
	"fmt"

	"podcastpulse/config"
)

// Error kinds, as recorded in viewer state
const (
	KindValidation  = "validation"
	KindTransport   = "transport"
	KindApplication = "application"
)

// ValidationError is a locally detected input problem; no request was sent
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// TransportError covers network failures and response bodies that are not valid JSON
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ApplicationError is a well-formed response that signals failure, either
// through a non-2xx status or an explicit error field
type ApplicationError struct {
	Status  int
	Message string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// UserMessage is the text shown to the user for err
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		if appErr.Message == "" {
			return config.GenericErrorMessage
		}
		return appErr.Message
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Message
	}

	return err.Error()
}

// Kind classifies err into one of the Kind* constants
func Kind(err error) string {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return KindValidation
	}
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return KindApplication
	}
	return KindTransport
}
