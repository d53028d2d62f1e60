package vinted

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Wait(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(100, 1, 0)
	ctx := context.Background()

	require.NoError(t, rl.Wait(ctx))
	require.NoError(t, rl.Wait(ctx))
	assert.Equal(t, int64(2), rl.Calls())
	assert.Equal(t, int64(-1), rl.Remaining())
}

func TestRateLimiter_Budget(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1000, 5, 3)
	ctx := context.Background()

	for range 3 {
		require.NoError(t, rl.Wait(ctx))
	}
	assert.Equal(t, int64(0), rl.Remaining())

	err := rl.Wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCallBudgetExhausted)
	assert.Contains(t, err.Error(), "(3/3)")
	assert.Equal(t, int64(3), rl.Calls())
}

func TestRateLimiter_ContextCanceled(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(0.1, 1, 0)
	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter wait")
	assert.Equal(t, int64(1), rl.Calls())
}

func TestDescribeBody(t *testing.T) {
	t.Parallel()

	long := make([]byte, 800)
	for i := range long {
		long[i] = 'x'
	}

	tests := []struct {
		name        string
		contentType string
		body        []byte
		want        string
	}{
		{
			name: "empty body",
			want: "",
		},
		{
			name:        "json error",
			contentType: "application/json",
			body:        []byte(`{"message":"nope"}`),
			want:        `{"message":"nope"}`,
		},
		{
			name:        "html with title",
			contentType: "text/html",
			body:        []byte(`<html><head><title> Access denied </title></head></html>`),
			want:        "html page: Access denied",
		},
		{
			name:        "html without title",
			contentType: "text/html",
			body:        []byte(`<p>blocked</p>`),
			want:        "<p>blocked</p>",
		},
		{
			name: "long body is truncated",
			body: long,
			want: string(long[:500]),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, describeBody(tt.contentType, tt.body))
		})
	}
}
