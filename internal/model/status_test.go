package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []OrderStatus{
	StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
	StatusOutForDelivery, StatusDelivered, StatusCancelled,
}

func TestValidateTransition_ValidEdges(t *testing.T) {
	valid := []struct {
		from, to OrderStatus
	}{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusPreparing},
		{StatusConfirmed, StatusCancelled},
		{StatusPreparing, StatusReady},
		{StatusPreparing, StatusCancelled},
		{StatusReady, StatusOutForDelivery},
		{StatusReady, StatusCancelled},
		{StatusOutForDelivery, StatusDelivered},
		{StatusOutForDelivery, StatusCancelled},
	}

	for _, tc := range valid {
		result := ValidateTransition(tc.from, tc.to)
		assert.True(t, result.Valid, "%s -> %s should be allowed", tc.from, tc.to)
		assert.Empty(t, result.Reason)
	}
}

func TestValidateTransition_RejectsEverythingElse(t *testing.T) {
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			expected := validNext[from][to]
			result := ValidateTransition(from, to)
			assert.Equal(t, expected, result.Valid, "%s -> %s", from, to)
			if !expected {
				assert.NotEmpty(t, result.Reason, "%s -> %s needs a reason", from, to)
			}
		}
	}
}

func TestValidateTransition_SelfTransition(t *testing.T) {
	for _, s := range allStatuses {
		result := ValidateTransition(s, s)
		assert.False(t, result.Valid, "%s -> %s", s, s)
		assert.Contains(t, result.Reason, "already has status")
	}
}

func TestValidateTransition_TerminalStatesHaveNoExits(t *testing.T) {
	for _, terminal := range []OrderStatus{StatusDelivered, StatusCancelled} {
		assert.True(t, terminal.IsTerminal())
		for _, to := range allStatuses {
			result := ValidateTransition(terminal, to)
			assert.False(t, result.Valid, "%s -> %s", terminal, to)
		}
	}
}

func TestValidateTransition_UnknownStatus(t *testing.T) {
	result := ValidateTransition(StatusPending, OrderStatus("shipped"))
	assert.False(t, result.Valid)
	assert.Contains(t, result.Reason, "cannot change status from 'pending' to 'shipped'")

	assert.False(t, KnownStatus(OrderStatus("shipped")))
	assert.True(t, KnownStatus(StatusPending))
}

func TestIsTerminal(t *testing.T) {
	for _, s := range allStatuses {
		expected := s == StatusDelivered || s == StatusCancelled
		assert.Equal(t, expected, s.IsTerminal(), "status %s", s)
	}
}
