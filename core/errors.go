package core

import (
	"errors"
	"fmt"
)

// Error codes used throughout basicshape. Code 0 denotes success.
const (
	EMISSING     int = 122 // resource (charset, converter, font) does not exist
	EINVALID     int = 123 // precondition of an operation violated
	EUNSUPPORTED int = 124 // operation not supported for this input
	EINTERNAL    int = 125 // internal error
)

var codeText = map[int]string{
	0:            "OK",
	EMISSING:     "not found",
	EINVALID:     "invalid",
	EUNSUPPORTED: "unsupported",
	EINTERNAL:    "internal error",
}

func textFor(code int) string {
	if t, ok := codeText[code]; ok {
		return t
	}
	return "undefined error"
}

// AppError is an error carrying a code and a message fit for end users.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

// shaperError keeps the cause separate from the message shown to users.
type shaperError struct {
	cause error
	code  int
	msg   string
}

var _ AppError = shaperError{}

func (e shaperError) Unwrap() error       { return e.cause }
func (e shaperError) ErrorCode() int      { return e.code }
func (e shaperError) UserMessage() string { return e.msg }

func (e shaperError) Error() string {
	if e.msg == "" || e.msg == e.cause.Error() {
		return fmt.Sprintf("[%d] %v", e.code, e.cause)
	}
	return fmt.Sprintf("[%d] %s: %v", e.code, e.msg, e.cause)
}

// Error creates an error with an error code and a user message.
func Error(code int, format string, v ...interface{}) error {
	return shaperError{
		cause: errors.New(textFor(code)),
		code:  code,
		msg:   fmt.Sprintf(format, v...),
	}
}

// WrapError attaches a code and a user message to err.
// A nil err is replaced by the code's default text.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(textFor(code))
	}
	return shaperError{cause: err, code: code, msg: fmt.Sprintf(format, v...)}
}

// Code returns the code of the first AppError in err's chain.
// Errors without a code are internal; nil is 0.
func Code(err error) int {
	var e AppError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &e):
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns a message for err suitable for end users. For errors
// without a user message, the error text itself is returned.
func UserMessage(err error) string {
	var e AppError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &e) && e.UserMessage() != "":
		return e.UserMessage()
	}
	return err.Error()
}
