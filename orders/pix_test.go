package orders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixPayloadRoundTrip(t *testing.T) {
	payload := pixPayload("ord-123", 37.5)

	parts := strings.Split(payload, "|")
	require.Len(t, parts, 4)
	assert.Equal(t, "ord-123", parts[0])
	assert.Equal(t, "37.50", parts[1])

	assert.True(t, verifyPixPayload(payload))
}

func TestVerifyPixPayloadRejectsTampering(t *testing.T) {
	payload := pixPayload("ord-123", 37.5)

	tampered := strings.Replace(payload, "37.50", "1.00", 1)
	assert.False(t, verifyPixPayload(tampered))

	assert.False(t, verifyPixPayload("no-separator"))
	assert.False(t, verifyPixPayload(""))
}
