package errors

import (
	"github.com/pkg/errors"
)

type stackTracer interface {
	error
	StackTrace() errors.StackTrace
}

// stackTrace returns the stack trace of the most inner error that has one
// attached or nil.
func stackTrace(err error) errors.StackTrace {
	var st errors.StackTrace
	for err != nil {
		if s, ok := err.(stackTracer); ok {
			st = s.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return st
}

// StackTrace returns the call stack recorded when the given error was
// created, or nil if no stack trace was attached.
func StackTrace(err error) errors.StackTrace {
	return stackTrace(err)
}
