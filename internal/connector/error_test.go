package connector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesByKindOnly(t *testing.T) {
	err := NewConnectionError(errors.New("socket reset"))
	assert.True(t, errors.Is(err, ErrConnection))
	assert.False(t, errors.Is(err, ErrConfig))
	assert.False(t, errors.Is(err, ErrProtocol))
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := NewProtocolError(inner)
	assert.ErrorIs(t, err, inner)
}

func TestErrorMessageIncludesDetails(t *testing.T) {
	err := NewConfigError(errors.New("invalid symbol"), "valid: [BTCUSD]")
	assert.Contains(t, err.Error(), "invalid symbol")
	assert.Contains(t, err.Error(), "valid: [BTCUSD]")
}

func TestErrorMessageWithoutDetails(t *testing.T) {
	err := NewConnectionError(errors.New("closed"))
	assert.Equal(t, "connection: closed", err.Error())
}
