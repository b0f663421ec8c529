package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockClock(t *testing.T) {
	clock := &MockClock{}
	assert.True(t, clock.Now().IsZero())

	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	clock.SetNow(now)
	assert.Equal(t, now, clock.Now())

	clock.Advance(90 * time.Minute)
	assert.Equal(t, now.Add(90*time.Minute), clock.Now())
}
