package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaymentStatus_ClosedEnum(t *testing.T) {
	for _, valid := range []string{"pending", "approved", "rejected", "error"} {
		status, err := ParsePaymentStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, PaymentStatus(valid), status)
	}
}

func TestParsePaymentStatus_RejectsAnythingElse(t *testing.T) {
	for _, invalid := range []string{"", "APPROVED", "paid", "created", "processing", "ok"} {
		_, err := ParsePaymentStatus(invalid)
		assert.Error(t, err, invalid)
	}
}

func TestPaymentStatus_Terminal(t *testing.T) {
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusError.Terminal())
	assert.False(t, StatusCreated.Terminal())
	assert.False(t, StatusProcessing.Terminal())
	assert.False(t, StatusPending.Terminal())
}
