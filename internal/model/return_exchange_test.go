package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReturnTransitions(t *testing.T) {
	pending := ReturnExchangeRecord{Status: ReturnStatusPending}
	assert.True(t, pending.CanTransitionTo(ReturnStatusApproved))
	assert.True(t, pending.CanTransitionTo(ReturnStatusRejected))
	assert.False(t, pending.CanTransitionTo(ReturnStatusPending))
	assert.False(t, pending.CanTransitionTo(ReturnStatusNone))
	assert.False(t, pending.CanTransitionTo(ReturnStatus("archived")))

	none := ReturnExchangeRecord{Status: ReturnStatusNone}
	assert.False(t, none.CanTransitionTo(ReturnStatusApproved))

	approved := ReturnExchangeRecord{Status: ReturnStatusApproved}
	assert.False(t, approved.CanTransitionTo(ReturnStatusRejected))
}

func TestParseReturnType(t *testing.T) {
	got, ok := ParseReturnType("refund")
	assert.True(t, ok)
	assert.Equal(t, ReturnTypeRefund, got)

	got, ok = ParseReturnType("exchange")
	assert.True(t, ok)
	assert.Equal(t, ReturnTypeExchange, got)

	_, ok = ParseReturnType("store-credit")
	assert.False(t, ok)

	_, ok = ParseReturnType("")
	assert.False(t, ok)
}
