package cache

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"millionaire_level/models"
	"millionaire_level/pkg/metrics"
)

const (
	kindDirectory = "directory"
	kindRates     = "rates"
)

type cachedSnapshot struct {
	Value     interface{}
	Timestamp time.Time
}

// SnapshotCache хранит справочник валют и курсы по дате снимка.
// Снимки неизменяемы, поэтому отдаются без копирования.
type SnapshotCache struct {
	mu      sync.Mutex
	entries map[string]cachedSnapshot
	ttl     time.Duration
	now     func() time.Time
}

// NewSnapshotCache returns a cache whose entries live for ttl. A non-positive
// ttl disables caching.
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		entries: make(map[string]cachedSnapshot),
		ttl:     ttl,
		now:     time.Now,
	}
}

func key(kind, date string) string {
	return kind + ":" + date
}

func (c *SnapshotCache) get(kind, date string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key(kind, date)
	snapshot, ok := c.entries[k]
	if ok && c.now().Sub(snapshot.Timestamp) > c.ttl {
		delete(c.entries, k)
		ok = false
	}
	metrics.CacheLookup(kind, ok)
	if !ok {
		return nil, false
	}

	logrus.WithField("key", k).Debug("snapshot taken from cache")
	return snapshot.Value, true
}

func (c *SnapshotCache) set(kind, date string, value interface{}) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	k := key(kind, date)
	c.entries[k] = cachedSnapshot{
		Value:     value,
		Timestamp: c.now(),
	}

	logrus.WithField("key", k).Debug("snapshot saved to cache")
}

func (c *SnapshotCache) GetDirectory(date string) (models.CurrencyDirectory, bool) {
	v, ok := c.get(kindDirectory, date)
	if !ok {
		return nil, false
	}
	dir, ok := v.(models.CurrencyDirectory)
	return dir, ok
}

func (c *SnapshotCache) SetDirectory(date string, dir models.CurrencyDirectory) {
	c.set(kindDirectory, date, dir)
}

func (c *SnapshotCache) GetRates(date string) (models.RateTable, bool) {
	v, ok := c.get(kindRates, date)
	if !ok {
		return models.RateTable{}, false
	}
	table, ok := v.(models.RateTable)
	return table, ok
}

func (c *SnapshotCache) SetRates(date string, table models.RateTable) {
	c.set(kindRates, date, table)
}
