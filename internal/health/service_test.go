package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestService_Check(t *testing.T) {
	ctx := context.Background()

	var tests = []struct {
		name     string
		checks   map[string]CheckFunc
		ok       bool
		expected map[string]string
	}{
		{
			name:     "no checks",
			checks:   nil,
			ok:       true,
			expected: map[string]string{},
		},
		{
			name: "all passing",
			checks: map[string]CheckFunc{
				"config": func(ctx context.Context) error { return nil },
			},
			ok:       true,
			expected: map[string]string{"config": "ok"},
		},
		{
			name: "one failing",
			checks: map[string]CheckFunc{
				"config": func(ctx context.Context) error { return nil },
				"redis":  func(ctx context.Context) error { return errors.New("connection refused") },
			},
			ok:       false,
			expected: map[string]string{"config": "ok", "redis": "connection refused"},
		},
		{
			name: "nil check is invalid",
			checks: map[string]CheckFunc{
				"broken": nil,
			},
			ok:       false,
			expected: map[string]string{"broken": "invalid check"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := NewService(time.Second, tt.checks).Check(ctx)
			require.Equal(t, tt.ok, res.OK)
			require.Equal(t, tt.expected, res.Checks)
		})
	}
}

func TestService_Check_CachesWithinTTL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	calls := 0
	svc := NewService(time.Hour, map[string]CheckFunc{
		"counted": func(ctx context.Context) error {
			calls++
			return nil
		},
	})

	first := svc.Check(ctx)
	second := svc.Check(ctx)
	require.True(t, first.OK)
	require.Equal(t, first.At, second.At, "second call should serve the cached result")
	require.Equal(t, 1, calls)
}
