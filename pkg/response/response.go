package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform result shape of every API operation.
type Envelope struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Error is a failure with a Kind attached. It satisfies the error interface
// so services can return it through plain error results.
type Error struct {
	Kind    Kind
	Details string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind.Symbol(), e.Cause)
	}
	return e.Kind.Symbol()
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an Error carrying the kind's default details.
func NewError(kind Kind) *Error {
	return &Error{Kind: kind, Details: kind.Details()}
}

// WrapError attaches an underlying cause, used at the storage boundary to
// surface unexpected faults as the 500-class error.
func WrapError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Details: kind.Details(), Cause: cause}
}

// Envelope renders the error in the uniform result shape. The cause is never
// serialized; only the symbolic code and details leave the process.
func (e *Error) Envelope() Envelope {
	return Envelope{
		Status:  "error",
		Code:    e.Kind.HTTPStatus(),
		Message: e.Kind.Symbol(),
		Details: e.Details,
	}
}

// OK writes a success envelope.
func OK(c *gin.Context, message, details string, data any) {
	c.JSON(http.StatusOK, Envelope{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		Details: details,
		Data:    data,
	})
}

// Fail writes an error envelope. Errors without a Kind are reported as the
// generic server error.
func Fail(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = WrapError(KindInternal, err)
	}
	c.JSON(appErr.Kind.HTTPStatus(), appErr.Envelope())
}
