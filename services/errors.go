package services

import (
	"errors"
	"fmt"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindInvalidInput ErrorKind = "invalid_input"
	KindUnauthorized ErrorKind = "unauthorized"
	KindStoreFailure ErrorKind = "store_failure"
)

// ServiceError is the caller-visible failure returned by every service method.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func notFound(format string, args ...any) error {
	return &ServiceError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) error {
	return &ServiceError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func invalidInput(format string, args ...any) error {
	return &ServiceError{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func unauthorized(format string, args ...any) error {
	return &ServiceError{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// storeFailure classifies an error coming back from gorm. Duplicate keys
// surface as conflicts, everything else is a store failure.
func storeFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return err
	}
	if isDuplicateKeyError(err) {
		return &ServiceError{Kind: KindConflict, Message: op + ": duplicate record", Err: err}
	}
	return &ServiceError{Kind: KindStoreFailure, Message: "failed to " + op, Err: err}
}

// KindOf returns the kind carried by err; unknown errors count as store failures.
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindStoreFailure
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var merr *mysql.MySQLError
	return errors.As(err, &merr) && merr.Number == 1062
}
