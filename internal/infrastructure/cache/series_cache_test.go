package cache

import (
	"context"
	"testing"
	"time"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestSeriesCache(t *testing.T) {
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := NewSeriesCache(time.Minute)
	cache.now = func() time.Time { return clock }

	assert.Equal(t, 0, cache.Size())

	q := entity.DefaultMacroQuery()
	series := &entity.Series{Indicator: entity.IndicatorGDP, Query: q}

	cache.Put(series)
	assert.Equal(t, 1, cache.Size())
	assert.Same(t, series, cache.Get(entity.IndicatorGDP, q))

	assert.Nil(t, cache.Get(entity.IndicatorInflation, q), "indicator is part of the key")
	other := q
	other.EndYear = q.EndYear - 1
	assert.Nil(t, cache.Get(entity.IndicatorGDP, other), "years are part of the key")

	clock = clock.Add(2 * time.Minute)
	assert.Nil(t, cache.Get(entity.IndicatorGDP, q), "expired")
	assert.Equal(t, 1, cache.CleanExpired())
	assert.Equal(t, 0, cache.Size())

	cache.Put(series)
	cache.Put(nil)
	assert.Equal(t, 1, cache.Size())
	cache.Clear()
	assert.Equal(t, 0, cache.Size())
}

func TestKeyKeepsCountryOrder(t *testing.T) {
	a := entity.MacroQuery{Countries: []string{"NLD", "BEL"}, StartYear: 2015, EndYear: 2023}
	b := entity.MacroQuery{Countries: []string{"BEL", "NLD"}, StartYear: 2015, EndYear: 2023}

	assert.Equal(t, "gdp:NLD,BEL:2015-2023", Key(entity.IndicatorGDP, a))
	assert.NotEqual(t, Key(entity.IndicatorGDP, a), Key(entity.IndicatorGDP, b))
}

func TestNewSeriesCacheDefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultExpiration, NewSeriesCache(0).expiration)
}

func TestRunEvictsExpiredEntries(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := NewSeriesCache(time.Minute)
	cache.now = func() time.Time { return start }

	q := entity.DefaultMacroQuery()
	cache.Put(&entity.Series{Indicator: entity.IndicatorGDP, Query: q})
	cache.Put(&entity.Series{Indicator: entity.IndicatorInflation, Query: q})
	cache.now = func() time.Time { return start.Add(2 * time.Minute) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cache.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return cache.Size() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
