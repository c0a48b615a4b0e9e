package amqp

import (
	"fmt"
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},  // capped at 30s
		{10, 30 * time.Second}, // capped at 30s
		{70, 30 * time.Second}, // shift overflow still capped
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			result := ExponentialBackoff(tt.attempt)
			if result != tt.expected {
				t.Errorf("ExponentialBackoff(%d) = %v, want %v", tt.attempt, result, tt.expected)
			}
		})
	}
}

func TestDataChangedMessageRoundTrip(t *testing.T) {
	msg := NewDataChangedMessage("expense", "add", "id-42", "2024-03")
	if msg.Timestamp.IsZero() {
		t.Fatal("message should be timestamped")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	decoded, err := DataChangedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if decoded.Entity != "expense" || decoded.Op != "add" || decoded.EntityID != "id-42" || decoded.Month != "2024-03" {
		t.Fatalf("unexpected decoded message: %+v", decoded)
	}
}

func TestDataChangedMessageFromJSONInvalid(t *testing.T) {
	if _, err := DataChangedMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
