package caller_test

import (
	"context"
	"medimate/shared/caller"
	"medimate/shared/constant"
	"medimate/shared/role"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	ctx := caller.WithCaller(context.Background(), caller.Caller{UserID: "u1", Email: "d@example.com", Role: role.Doctor})

	got, ok := caller.FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u1", got.UserID)
	assert.True(t, got.Is(role.Doctor))
	assert.Equal(t, "u1", caller.Actor(ctx))
}

func TestFromContext_Anonymous(t *testing.T) {
	_, ok := caller.FromContext(context.Background())
	assert.False(t, ok)
	assert.Equal(t, constant.ContextGuest, caller.Actor(context.Background()))

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u1")
	_, ok = caller.FromContext(ctx)
	assert.False(t, ok)

	_, err := caller.Require(ctx)
	assert.ErrorIs(t, err, caller.ErrAnonymous)
}
