package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/voxrelay/errors"
)

type setURL struct {
	URL string `json:"ngrok_url" validate:"required,httpurl"`
}

type submission struct {
	Audio string `json:"audio_base64" validate:"required"`
	Model string `json:"model" validate:"required,oneof=transcribe transcribe-2step"`
}

func TestValidate_Valid(t *testing.T) {
	if err := Validate(setURL{URL: "https://abc.ngrok.app"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(submission{Audio: "AAAA", Model: "transcribe-2step"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	err := Validate(submission{})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeMissingField {
		t.Errorf("expected MISSING_FIELD, got %s", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "audio_base64: is required") {
		t.Errorf("expected json field name in message, got %q", appErr.Message)
	}
	fields, _ := appErr.Details["fields"].([]FieldError)
	if len(fields) != 2 {
		t.Errorf("expected 2 field errors, got %v", appErr.Details["fields"])
	}
}

func TestValidate_InvalidValue(t *testing.T) {
	err := Validate(submission{Audio: "AAAA", Model: "translate"})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "must be one of") {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

func TestIsHTTPURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://abc.ngrok.app", true},
		{"http://10.0.0.1:8000/base", true},
		{" https://padded.example ", true},
		{"ftp://files.example", false},
		{"abc.ngrok.app", false},
		{"https://", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsHTTPURL(tt.in); got != tt.want {
			t.Errorf("IsHTTPURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidate_HTTPURLTag(t *testing.T) {
	err := Validate(setURL{URL: "ftp://nope"})
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	if !strings.Contains(appErr.Message, "ngrok_url: must be an http or https URL") {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}
