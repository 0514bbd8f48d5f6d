package validator_test

import (
	"lodge/shared/validator"
	"strings"
	"testing"
)

type bookingTestStruct struct {
	GuestName string `validate:"required" json:"guest_name"`
	Email     string `validate:"required,email" json:"email"`
	Guests    int    `validate:"gte=1,lte=10" json:"guests"`
	Breakfast string `validate:"oneof=with without" json:"breakfast"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *bookingTestStruct
		expectError bool
	}{
		{
			name: "valid struct",
			data: &bookingTestStruct{
				GuestName: "John Doe",
				Email:     "john@example.com",
				Guests:    2,
				Breakfast: "with",
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &bookingTestStruct{
				Email:     "john@example.com",
				Guests:    2,
				Breakfast: "with",
			},
			expectError: true,
		},
		{
			name: "invalid email",
			data: &bookingTestStruct{
				GuestName: "John Doe",
				Email:     "invalid-email",
				Guests:    2,
				Breakfast: "with",
			},
			expectError: true,
		},
		{
			name: "guests out of range",
			data: &bookingTestStruct{
				GuestName: "John Doe",
				Email:     "john@example.com",
				Guests:    15,
				Breakfast: "with",
			},
			expectError: true,
		},
		{
			name: "invalid breakfast option",
			data: &bookingTestStruct{
				GuestName: "John Doe",
				Email:     "john@example.com",
				Guests:    2,
				Breakfast: "continental",
			},
			expectError: true,
		},
		{
			name: "zero guests",
			data: &bookingTestStruct{
				GuestName: "John Doe",
				Email:     "john@example.com",
				Guests:    0,
				Breakfast: "with",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct[bookingTestStruct](tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "test",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid email",
			field:       "test@example.com",
			tag:         "email",
			expectError: false,
		},
		{
			name:        "invalid email",
			field:       "invalid-email",
			tag:         "email",
			expectError: true,
		},
		{
			name:        "valid number in range",
			field:       3,
			tag:         "gte=1,lte=5",
			expectError: false,
		},
		{
			name:        "number out of range",
			field:       6,
			tag:         "gte=1,lte=5",
			expectError: true,
		},
		{
			name:        "valid oneof",
			field:       "without",
			tag:         "oneof=with without",
			expectError: false,
		},
		{
			name:        "invalid oneof",
			field:       "invalid",
			tag:         "oneof=with without",
			expectError: true,
		},
		{
			name:        "empty tag accepts zero value",
			field:       "",
			tag:         "empty",
			expectError: false,
		},
		{
			name:        "empty tag rejects non-zero value",
			field:       "set",
			tag:         "empty",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"guest_name":"John Doe","email":"john@example.com","guests":2,"breakfast":"with"}`,
			expectError: false,
		},
		{
			name:        "invalid JSON",
			jsonBody:    `{"guest_name":"John Doe","email":"invalid-email","guests":2,"breakfast":"with"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"guest_name":"John Doe","email":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)
			var data bookingTestStruct
			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	data := &bookingTestStruct{}
	err := validator.ValidateStruct[bookingTestStruct](data)

	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	errorMsg := err.Error()

	if !strings.Contains(errorMsg, "required") || errorMsg == "" {
		t.Errorf("expected descriptive error message containing 'required', got: %s", errorMsg)
	}
}

func TestValidationErrorHandling(t *testing.T) {
	data := &bookingTestStruct{
		GuestName: "",        // required violation
		Email:     "invalid", // email violation
		Guests:    0,         // gte violation
		Breakfast: "invalid", // oneof violation
	}

	err := validator.ValidateStruct[bookingTestStruct](data)
	if err == nil {
		t.Fatal("expected validation error")
	}

	errorMsg := err.Error()
	if errorMsg == "" {
		t.Error("expected non-empty error message")
	}

	t.Logf("Error message: %s", errorMsg)
}
