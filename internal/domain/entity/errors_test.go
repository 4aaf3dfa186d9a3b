package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "required field error",
			field:    "to",
			message:  "required",
			expected: "validation error on field 'to': required",
		},
		{
			name:     "empty list error",
			field:    "messages",
			message:  "at least one message is required",
			expected: "validation error on field 'messages': at least one message is required",
		},
		{
			name:     "empty field name",
			field:    "",
			message:  "test message",
			expected: "validation error on field '': test message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ValidationError{
				Field:   tt.field,
				Message: tt.message,
			}

			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("decode: %w", &ValidationError{Field: "to", Message: "required"})

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.False(t, errors.Is(err, ErrInvalidInput))

	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "to", validationErr.Field)
}

func TestSentinelErrors_ErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "ErrNotFound", err: ErrNotFound, expected: "entity not found"},
		{name: "ErrInvalidInput", err: ErrInvalidInput, expected: "invalid input"},
		{name: "ErrValidationFailed", err: ErrValidationFailed, expected: "validation failed"},
		{name: "ErrUnsupportedMessageKind", err: ErrUnsupportedMessageKind, expected: "unsupported message kind"},
		{name: "ErrPayloadTooLarge", err: ErrPayloadTooLarge, expected: "payload too large"},
		{name: "ErrMissingFileSource", err: ErrMissingFileSource, expected: "either file URL or file data is required"},
		{name: "ErrPlatformCallFailed", err: ErrPlatformCallFailed, expected: "platform call failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestSentinelErrors_Uniqueness(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrValidationFailed,
		ErrUnsupportedMessageKind, ErrPayloadTooLarge, ErrMissingFileSource,
		ErrPlatformCallFailed, ErrMIMETypeNotAllowed,
	}
	for i := range all {
		for j := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(all[i], all[j]), "%v should not match %v", all[i], all[j])
		}
	}
}

func TestUnsupportedKindError(t *testing.T) {
	err := &UnsupportedKindError{Kind: KindSticker}

	assert.Equal(t, "unsupported message type: sticker", err.Error())
	assert.True(t, errors.Is(err, ErrUnsupportedMessageKind))
	assert.False(t, errors.Is(err, ErrPlatformCallFailed))
}

func TestPayloadTooLargeError(t *testing.T) {
	err := &PayloadTooLargeError{Size: 5*1024*1024 + 1, Limit: 5 * 1024 * 1024}

	assert.Equal(t, "file size 5242881 bytes exceeds limit of 5242880 bytes", err.Error())
	assert.True(t, errors.Is(err, ErrPayloadTooLarge))
}

func TestPlatformError(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name     string
		op       string
		expected string
	}{
		{name: "send", op: "send LINE message", expected: "failed to send LINE message: connection refused"},
		{name: "broadcast", op: "broadcast LINE message", expected: "failed to broadcast LINE message: connection refused"},
		{name: "send file", op: "send file via LINE", expected: "failed to send file via LINE: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &PlatformError{Op: tt.op, Err: cause}

			assert.Equal(t, tt.expected, err.Error())
			assert.True(t, errors.Is(err, ErrPlatformCallFailed))
			assert.True(t, errors.Is(err, cause))
			assert.Equal(t, cause, errors.Unwrap(err))
		})
	}
}

func TestMessageKind_Valid(t *testing.T) {
	for _, k := range []MessageKind{KindText, KindImage, KindVideo, KindAudio, KindFile, KindLocation, KindSticker, KindTemplate, KindFlex} {
		assert.True(t, k.Valid(), "kind %q", k)
	}
	assert.False(t, MessageKind("carousel").Valid())
	assert.False(t, MessageKind("").Valid())
}

func TestDeliveryState_Valid(t *testing.T) {
	for _, s := range []DeliveryState{StatePending, StateSent, StateDelivered, StateFailed} {
		assert.True(t, s.Valid(), "state %q", s)
	}
	assert.False(t, DeliveryState("queued").Valid())
}

func TestRecipientIDs(t *testing.T) {
	ids := RecipientIDs([]Recipient{{ID: "U1"}, {ID: "U2", Kind: RecipientGroup}})
	assert.Equal(t, []string{"U1", "U2"}, ids)
	assert.Empty(t, RecipientIDs(nil))
}

func TestPayrollReport_EmployeeLineID(t *testing.T) {
	var nilReport *PayrollReport
	assert.Equal(t, "", nilReport.EmployeeLineID())
	assert.Equal(t, "", (&PayrollReport{}).EmployeeLineID())
	assert.Equal(t, "U123", (&PayrollReport{Employee: &Employee{LineID: "U123"}}).EmployeeLineID())
}

func TestPayrollReport_LineIDAt(t *testing.T) {
	var r PayrollReport
	err := json.Unmarshal([]byte(`{"year":2024,"month":3,"netPay":100,
		"employee":{"lineId":"U123"},"contact":{"line":{"id":"U9"},"count":3}}`), &r)
	assert.NoError(t, err)
	assert.Equal(t, 2024, r.Year)
	assert.Equal(t, "U123", r.EmployeeLineID())

	assert.Equal(t, "U123", r.LineIDAt(""))
	assert.Equal(t, "U123", r.LineIDAt("employee.lineId"))
	assert.Equal(t, "U9", r.LineIDAt("contact.line.id"))
	assert.Equal(t, "", r.LineIDAt("contact.count"))
	assert.Equal(t, "", r.LineIDAt("contact.line.id.deeper"))
	assert.Equal(t, "", r.LineIDAt("missing"))

	built := PayrollReport{Employee: &Employee{LineID: "U5"}}
	assert.Equal(t, "U5", built.LineIDAt("recipient.line"))

	var nilReport *PayrollReport
	assert.Equal(t, "", nilReport.LineIDAt("employee.lineId"))
}
