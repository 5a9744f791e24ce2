package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusInProgress,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

func TestIsValidTransition_Exhaustive(t *testing.T) {
	valid := map[[2]OrderStatus]bool{
		{OrderStatusPending, OrderStatusConfirmed}:     true,
		{OrderStatusConfirmed, OrderStatusInProgress}:  true,
		{OrderStatusInProgress, OrderStatusCompleted}:  true,
	}
	for _, s := range allStatuses {
		valid[[2]OrderStatus{s, s}] = true // no-op is always legal
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			got := IsValidTransition(from, to)
			assert.Equal(t, valid[[2]OrderStatus{from, to}], got, "transition %s -> %s", from, to)
		}
	}
}

func TestIsValidTransition_NoSkipping(t *testing.T) {
	assert.False(t, IsValidTransition(OrderStatusPending, OrderStatusInProgress))
	assert.False(t, IsValidTransition(OrderStatusPending, OrderStatusCompleted))
	assert.False(t, IsValidTransition(OrderStatusConfirmed, OrderStatusCompleted))
}

func TestIsValidTransition_NoBackward(t *testing.T) {
	assert.False(t, IsValidTransition(OrderStatusConfirmed, OrderStatusPending))
	assert.False(t, IsValidTransition(OrderStatusInProgress, OrderStatusConfirmed))
	assert.False(t, IsValidTransition(OrderStatusCompleted, OrderStatusInProgress))
}

func TestTerminalStatusesHaveNoSuccessor(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusCompleted, OrderStatusCancelled} {
		assert.True(t, IsTerminalStatus(s))
		_, ok := AllowedNext(s)
		assert.False(t, ok, "terminal status %s must have no successor", s)
	}
}

func TestAllowedNext_Chain(t *testing.T) {
	next, ok := AllowedNext(OrderStatusPending)
	assert.True(t, ok)
	assert.Equal(t, OrderStatusConfirmed, next)

	next, ok = AllowedNext(OrderStatusConfirmed)
	assert.True(t, ok)
	assert.Equal(t, OrderStatusInProgress, next)

	next, ok = AllowedNext(OrderStatusInProgress)
	assert.True(t, ok)
	assert.Equal(t, OrderStatusCompleted, next)
}

func TestDescribeTransitionError(t *testing.T) {
	assert.Contains(t, DescribeTransitionError(OrderStatusConfirmed, OrderStatusConfirmed), "already")
	assert.Contains(t, DescribeTransitionError(OrderStatusCompleted, OrderStatusPending), "terminal")
	assert.Contains(t, DescribeTransitionError(OrderStatusPending, OrderStatusCompleted), "CONFIRMED")
}
