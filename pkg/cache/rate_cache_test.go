package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"millionaire_level/models"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func newCacheWithClock(ttl time.Duration) (*SnapshotCache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := NewSnapshotCache(ttl)
	c.now = clock.Now
	return c, clock
}

func TestSnapshotCache_DirectoryRoundTrip(t *testing.T) {
	c, _ := newCacheWithClock(time.Minute)

	_, ok := c.GetDirectory("latest")
	assert.False(t, ok)

	c.SetDirectory("latest", models.CurrencyDirectory{"eur": "Euro"})
	dir, ok := c.GetDirectory("latest")
	require.True(t, ok)
	assert.Equal(t, "Euro", dir["eur"])

	_, ok = c.GetDirectory("2024-01-01")
	assert.False(t, ok)
}

func TestSnapshotCache_KindsDoNotCollide(t *testing.T) {
	c, _ := newCacheWithClock(time.Minute)

	c.SetRates("latest", models.RateTable{Date: "2024-03-01", Rates: map[string]float64{"eur": 1}})
	_, ok := c.GetDirectory("latest")
	assert.False(t, ok)

	table, ok := c.GetRates("latest")
	require.True(t, ok)
	assert.Equal(t, "2024-03-01", table.Date)
}

func TestSnapshotCache_Expiry(t *testing.T) {
	c, clock := newCacheWithClock(10 * time.Minute)
	c.SetRates("latest", models.RateTable{Date: "2024-03-01"})

	clock.t = clock.t.Add(10 * time.Minute)
	_, ok := c.GetRates("latest")
	assert.True(t, ok)

	clock.t = clock.t.Add(time.Second)
	_, ok = c.GetRates("latest")
	assert.False(t, ok)
}

func TestSnapshotCache_DisabledWithZeroTTL(t *testing.T) {
	c := NewSnapshotCache(0)
	c.SetDirectory("latest", models.CurrencyDirectory{"eur": "Euro"})

	_, ok := c.GetDirectory("latest")
	assert.False(t, ok)
}

func TestSnapshotCache_Concurrent(t *testing.T) {
	c := NewSnapshotCache(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.SetRates("latest", models.RateTable{Date: "2024-03-01"})
			_, _ = c.GetRates("latest")
		}()
	}
	wg.Wait()

	_, ok := c.GetRates("latest")
	assert.True(t, ok)
}
