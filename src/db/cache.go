package db

import (
	"fmt"
	"log"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Cache holds derived per-user read results (dashboard summary, category
// list). Writes to a user's transactions invalidate that user's entries.
var Cache *ristretto.Cache

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

// DashboardCacheKey is scoped to the calendar month so a month rollover never
// serves the prior month's summary to a user who made no writes.
func DashboardCacheKey(userID int64, month time.Time) string {
	return fmt.Sprintf("dashboard:%d:%s", userID, month.Format("2006-01"))
}

func CategoriesCacheKey(userID int64) string {
	return fmt.Sprintf("categories:%d", userID)
}

// CacheGet is a nil-safe lookup so code paths work before InitCache runs,
// e.g. in tests.
func CacheGet(key string) (interface{}, bool) {
	if Cache == nil {
		return nil, false
	}
	return Cache.Get(key)
}

func CacheSet(key string, value interface{}) {
	if Cache == nil {
		return
	}
	Cache.Set(key, value, 1)
}

// InvalidateUserCaches drops every cached read for the user. Called after any
// transaction mutation.
func InvalidateUserCaches(userID int64) {
	if Cache == nil {
		return
	}
	Cache.Del(DashboardCacheKey(userID, time.Now().UTC()))
	Cache.Del(CategoriesCacheKey(userID))
}
