package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildWithoutDocument(t *testing.T) {
	b := NewBuilder(0)

	payload := b.Build(nil, "What is the balance?")

	assert.Equal(t, "What is the balance?", payload)
}

func TestBuildWithDocument(t *testing.T) {
	b := NewBuilder(0)
	doc := "Balance: $100"

	payload := b.Build(&doc, "What is the balance?")

	assert.True(t, strings.HasPrefix(payload,
		"Based on the following bank statement text, please answer the user's question.\n\n"))
	assert.Contains(t, payload, "--- BANK STATEMENT TEXT START ---\nBalance: $100\n--- BANK STATEMENT TEXT END ---")
	assert.True(t, strings.HasSuffix(payload, "User's Question: What is the balance?"))
}

func TestTooLong(t *testing.T) {
	tests := []struct {
		name        string
		payloadSize int
		want        bool
	}{
		{name: "above threshold", payloadSize: 30000, want: true},
		{name: "below threshold", payloadSize: 27000, want: false},
		{name: "exactly at threshold", payloadSize: 28000, want: false},
	}

	b := NewBuilder(28000)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := strings.Repeat("a", tt.payloadSize)
			assert.Equal(t, tt.want, b.TooLong(payload))
		})
	}
}

func TestCustomThreshold(t *testing.T) {
	b := NewBuilder(10)

	assert.True(t, b.TooLong("12345678901"))
	assert.False(t, b.TooLong("1234567890"))
}
