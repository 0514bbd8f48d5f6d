package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind names the business reason a request was refused. Handlers map the
// HTTP code; callers that need to branch on the reason match on Kind.
type Kind string

const (
	KindInvalidDateRange       Kind = "InvalidDateRange"
	KindInvalidQuantity        Kind = "InvalidQuantity"
	KindInvalidBreakfastOption Kind = "InvalidBreakfastOption"
	KindMissingField           Kind = "MissingField"
	KindRoomNotFound           Kind = "RoomNotFound"
	KindRoomNotAvailable       Kind = "RoomNotAvailable"
	KindInvalidStatus          Kind = "InvalidStatus"
	KindNotFound               Kind = "NotFound"
	KindTransitionFailed       Kind = "TransitionFailed"
	KindBookingNotFound        Kind = "BookingNotFound"
	KindNotEligible            Kind = "NotEligible"
	KindAlreadyRated           Kind = "AlreadyRated"
	KindInvalidStar            Kind = "InvalidStar"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

// Error returns the error message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// OfKind returns a new Failure carrying the given business reason. The HTTP
// code follows the reason: lookups map to 404, reservation and rating
// conflicts to 409, everything else to 400.
func OfKind(kind Kind, format string, args ...any) error {
	code := http.StatusBadRequest

	switch kind {
	case KindRoomNotFound, KindNotFound, KindBookingNotFound:
		code = http.StatusNotFound
	case KindRoomNotAvailable, KindAlreadyRated, KindTransitionFailed:
		code = http.StatusConflict
	}

	return &Failure{
		Code:    code,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindOf extracts the business reason from an error, or the empty Kind when
// the error is not a Failure or carries none.
func KindOf(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return ""
}

// IsKind reports whether the error is a Failure of the given Kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
