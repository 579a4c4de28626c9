package section

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is matched by every InvalidArgumentError.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAlreadyExecuted is returned when Execute is called a second time.
	ErrAlreadyExecuted = errors.New("section already executed")
)

// InvalidArgumentError is reported when a builder method receives a value it can't use.
type InvalidArgumentError struct {
	Section string
	Method  string
	Message string
}

func (err *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s.%s: %s", err.Section, err.Method, err.Message)
}

func (err *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// ErrorReporter receives invalid arguments from the builder methods. The owner decides whether they are fatal.
type ErrorReporter interface {
	ReportInvalidArgument(s *Section, method, message string)
}

// ReporterFunc adapts a plain function to ErrorReporter.
type ReporterFunc func(s *Section, method, message string)

func (f ReporterFunc) ReportInvalidArgument(s *Section, method, message string) {
	f(s, method, message)
}
