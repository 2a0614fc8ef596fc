package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushNext(t *testing.T) {
	s := NewService()

	require.True(t, s.Push(t.Context(), "hello"))
	require.True(t, s.Push(t.Context(), "bye"))

	msg, ok, err := s.Next(t.Context())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", msg.Text)
}

func TestClose_DrainsQueued(t *testing.T) {
	s := NewService()
	require.True(t, s.Push(t.Context(), "last words"))
	s.Close()
	s.Close()

	assert.False(t, s.Push(t.Context(), "too late"))

	msg, ok, err := s.Next(t.Context())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "last words", msg.Text)

	_, ok, err = s.Next(t.Context())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNext_Cancelled(t *testing.T) {
	s := NewService()
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, ok, err := s.Next(ctx)
	assert.False(t, ok)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPush_Cancelled(t *testing.T) {
	s := NewService()
	for range bufferSize {
		require.True(t, s.Push(t.Context(), "x"))
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	assert.False(t, s.Push(ctx, "overflow"))
}
