package chain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	exists := NewError("collection", "CollectionExists", ErrAlreadyExists)
	err := fmt.Errorf("register %d: %w", 7, exists)

	assert.True(t, errors.Is(err, exists))
	assert.True(t, errors.Is(err, ErrAlreadyExists))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, ErrAlreadyExists, KindOf(err))
	assert.Nil(t, KindOf(errors.New("disk full")))
	assert.Equal(t, "collection: CollectionExists", exists.Error())
}

func TestValidateAccount(t *testing.T) {
	require.NoError(t, ValidateAccount("965e5c6e-434c-3fa9-b780-c50f43cd955c"))
	assert.ErrorIs(t, ValidateAccount("alice"), ErrInvalidAccount)
	assert.ErrorIs(t, ValidateAccount("00000000-0000-0000-0000-000000000000"), ErrInvalidArgument)
}

func TestParseBalance(t *testing.T) {
	amt, err := ParseBalance("10.5")
	require.NoError(t, err)
	assert.Equal(t, "10.5", amt.String())

	_, err = ParseBalance("-1")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ParseBalance("ten")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewEvent(t *testing.T) {
	evt := NewEvent("voting", "Voted", "965e5c6e-434c-3fa9-b780-c50f43cd955c", "proposal", "p1", "accepted", "true")
	assert.Equal(t, "p1", evt.Attributes["proposal"])
	assert.Equal(t, "true", evt.Attributes["accepted"])
	assert.Panics(t, func() { NewEvent("voting", "Voted", "", "odd") })
}
