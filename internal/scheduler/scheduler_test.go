package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/plan4land/tourindex/internal/logger"
)

func TestYesterday(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"mid month", time.Date(2024, 6, 15, 3, 0, 0, 0, time.UTC), "20240614"},
		{"month boundary", time.Date(2024, 3, 1, 3, 0, 0, 0, time.UTC), "20240229"},
		{"year boundary", time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC), "20231231"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Yesterday(tt.now))
		})
	}
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	s := New("not a schedule", func(context.Context, string) error { return nil }, logger.NewNop())

	err := s.Start(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "register sync job")
}

func TestStartAndStop(t *testing.T) {
	s := New("0 3 * * *", func(context.Context, string) error { return nil }, logger.NewNop())

	require.NoError(t, s.Start(context.Background()))
	s.Stop()
}
