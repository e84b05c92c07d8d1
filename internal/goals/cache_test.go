package goals

import (
	"context"
	"errors"
	"testing"
	"time"

	"rfid-inventory-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func TestCacheServesWithinTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	loads := 0
	c := NewCache(func(context.Context) ([]models.ResaleGoal, error) {
		loads++
		return []models.ResaleGoal{{Category: "A/V Resale", Monthly: 100}}, nil
	}, time.Minute, clock.Now)

	_, err := c.Get(context.Background(), false)
	require.NoError(t, err)
	_, err = c.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, loads)

	clock.Advance(2 * time.Minute)
	_, err = c.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestCacheRefreshForcesLoad(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	loads := 0
	c := NewCache(func(context.Context) ([]models.ResaleGoal, error) {
		loads++
		return nil, nil
	}, time.Hour, clock.Now)

	_, _ = c.Get(context.Background(), false)
	_, _ = c.Get(context.Background(), true)
	assert.Equal(t, 2, loads)
}

func TestCacheReturnsStaleOnLoadFailure(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	fail := false
	c := NewCache(func(context.Context) ([]models.ResaleGoal, error) {
		if fail {
			return nil, errors.New("db down")
		}
		return []models.ResaleGoal{{Category: "Other", Monthly: 5}}, nil
	}, time.Minute, clock.Now)

	goals, err := c.Get(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, goals, 1)

	fail = true
	clock.Advance(2 * time.Minute)
	goals, err = c.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, goals, 1)
}

func TestCacheFirstLoadFailurePropagates(t *testing.T) {
	c := NewCache(func(context.Context) ([]models.ResaleGoal, error) {
		return nil, errors.New("db down")
	}, time.Minute, nil)

	_, err := c.Get(context.Background(), false)
	assert.Error(t, err)
}
