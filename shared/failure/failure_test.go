package failure_test

import (
	"errors"
	"fmt"
	"lodge/shared/failure"
	"net/http"
	"testing"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "InvalidPageParam",
			failure: failure.InvalidPageParam,
			code:    http.StatusBadRequest,
			message: "invalid page parameter",
		},
		{
			name:    "InvalidLimitParam",
			failure: failure.InvalidLimitParam,
			code:    http.StatusBadRequest,
			message: "invalid limit parameter",
		},
		{
			name:    "ForbiddenError",
			failure: failure.ForbiddenError,
			code:    http.StatusForbidden,
			message: "You don't have the required permissions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, tt.failure.Code)
			}
			if tt.failure.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, tt.failure.Message)
			}
		})
	}
}

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "with error",
			input:    errors.New("validation failed"),
			expected: &failure.Failure{Code: http.StatusBadRequest, Message: "validation failed"},
		},
		{
			name:     "with nil error",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.BadRequest(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}
			} else {
				f, ok := result.(*failure.Failure)
				if !ok {
					t.Errorf("expected result to be *failure.Failure, got %T", result)
				} else {
					expectedF := tt.expected.(*failure.Failure)
					if f.Code != expectedF.Code || f.Message != expectedF.Message {
						t.Errorf("expected %+v, got %+v", expectedF, f)
					}
				}
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	result := failure.NotFound("room")

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Fatalf("expected result to be *failure.Failure, got %T", result)
	}

	if f.Code != http.StatusNotFound {
		t.Errorf("expected code to be %d, got %d", http.StatusNotFound, f.Code)
	}
	if f.Kind != failure.KindNotFound {
		t.Errorf("expected kind to be %s, got %s", failure.KindNotFound, f.Kind)
	}
}

func TestOfKind(t *testing.T) {
	tests := []struct {
		name     string
		kind     failure.Kind
		code     int
		expected string
	}{
		{
			name:     "room not found maps to 404",
			kind:     failure.KindRoomNotFound,
			code:     http.StatusNotFound,
			expected: "room room-1 not found",
		},
		{
			name:     "booking not found maps to 404",
			kind:     failure.KindBookingNotFound,
			code:     http.StatusNotFound,
			expected: "booking room-1 not found",
		},
		{
			name:     "room not available maps to 409",
			kind:     failure.KindRoomNotAvailable,
			code:     http.StatusConflict,
			expected: "room room-1 is not available",
		},
		{
			name:     "already rated maps to 409",
			kind:     failure.KindAlreadyRated,
			code:     http.StatusConflict,
			expected: "booking room-1 has already been rated",
		},
		{
			name:     "transition failed maps to 409",
			kind:     failure.KindTransitionFailed,
			code:     http.StatusConflict,
			expected: "cannot transition room-1",
		},
		{
			name:     "invalid date range maps to 400",
			kind:     failure.KindInvalidDateRange,
			code:     http.StatusBadRequest,
			expected: "check-out must be after check-in for room-1",
		},
		{
			name:     "invalid star maps to 400",
			kind:     failure.KindInvalidStar,
			code:     http.StatusBadRequest,
			expected: "star out of range for room-1",
		},
	}

	formats := map[failure.Kind]string{
		failure.KindRoomNotFound:     "room %s not found",
		failure.KindBookingNotFound:  "booking %s not found",
		failure.KindRoomNotAvailable: "room %s is not available",
		failure.KindAlreadyRated:     "booking %s has already been rated",
		failure.KindTransitionFailed: "cannot transition %s",
		failure.KindInvalidDateRange: "check-out must be after check-in for %s",
		failure.KindInvalidStar:      "star out of range for %s",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := failure.OfKind(tt.kind, formats[tt.kind], "room-1")

			f, ok := err.(*failure.Failure)
			if !ok {
				t.Fatalf("expected *failure.Failure, got %T", err)
			}

			if f.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, f.Code)
			}
			if f.Kind != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, f.Kind)
			}
			if f.Message != tt.expected {
				t.Errorf("expected message %q, got %q", tt.expected, f.Message)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	err := failure.OfKind(failure.KindNotEligible, "not eligible")

	if failure.KindOf(err) != failure.KindNotEligible {
		t.Errorf("expected kind %s, got %s", failure.KindNotEligible, failure.KindOf(err))
	}

	wrapped := fmt.Errorf("submit rating: %w", err)
	if failure.KindOf(wrapped) != failure.KindNotEligible {
		t.Error("expected kind to survive wrapping")
	}

	if failure.KindOf(errors.New("plain")) != "" {
		t.Error("expected empty kind for plain error")
	}
}

func TestIsKind(t *testing.T) {
	err := failure.OfKind(failure.KindInvalidQuantity, "quantity must be positive")

	if !failure.IsKind(err, failure.KindInvalidQuantity) {
		t.Error("expected IsKind to match")
	}

	if failure.IsKind(err, failure.KindInvalidStatus) {
		t.Error("expected IsKind to reject a different kind")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    failure.Unauthorized("missing token"),
			expected: http.StatusUnauthorized,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("wrap: %w", failure.Conflict("room number taken")),
			expected: http.StatusConflict,
		},
		{
			name:     "plain error falls back to 500",
			input:    errors.New("boom"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := failure.GetCode(tt.input); code != tt.expected {
				t.Errorf("expected code %d, got %d", tt.expected, code)
			}
		})
	}
}
