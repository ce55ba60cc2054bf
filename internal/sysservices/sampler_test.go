package sysservices

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageEmpty(t *testing.T) {
	assert.Equal(t, 0.0, average(nil))
}

func TestAverageComputesMean(t *testing.T) {
	assert.InDelta(t, 25.0, average([]float64{10, 20, 30, 40}), 0.0001)
}

func TestPollRespectsInterval(t *testing.T) {
	s := New(time.Hour)
	_, ok := s.Poll(context.Background())
	require.True(t, ok, "first poll always samples")

	_, ok = s.Poll(context.Background())
	assert.False(t, ok, "second poll within the interval should be skipped")
}

func TestNewDefaultsZeroIntervalToOneSecond(t *testing.T) {
	s := New(0)
	assert.Equal(t, time.Second, s.Interval)
}
