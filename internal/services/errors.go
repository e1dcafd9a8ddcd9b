package services

import (
	"errors"
	"fmt"

	"project-team-tracker/internal/convert"
	"project-team-tracker/internal/logger"

	"go.uber.org/zap"
)

// StoreError reports that a store call failed and the operation fell back to
// its safe default (nil, empty, false or zero). Op names the failed call.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsStoreError tells a store failure apart from a genuinely empty result.
func IsStoreError(err error) bool {
	var sErr *StoreError
	return errors.As(err, &sErr)
}

// storeFailure logs err once under op and wraps it.
func storeFailure(log *zap.Logger, op string, err error, fields ...zap.Field) error {
	log.Error("store call failed", append([]zap.Field{logger.Op(op), zap.Error(err)}, fields...)...)
	return &StoreError{Op: op, Err: err}
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", convert.ErrInvalidInput, fmt.Sprintf(format, args...))
}
