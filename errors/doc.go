/*
Package errors implements the error kinds used by the versioned packages.

Reuse the root errors declared in this package whenever possible. If a custom
root error is required, use Register(code, description) during the program
startup. Each root error carries a unique code so that a caller can tell the
kinds apart.

Create error instances with Wrap or Wrapf at the point of failure. The most
inner wrap attaches a stack trace. Wrapping an already wrapped error does not
record another one.

Once you have an error, use the fmt package to get more context
	%s is just the error message
	%+v is the full stack trace
Or call StackTrace to get the raw call stack of the creation point.
*/
package errors
