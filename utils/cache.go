package utils

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/inkwellhq/inkwell/config"
)

// Cache key prefixes for post responses.
const (
	CacheKeyPostList   = "cache:posts:list"
	CacheKeyPostDetail = "cache:post:detail:"
)

// cacheGeneration advances on every post mutation. A response read at one
// generation may only be cached while the generation is unchanged.
var cacheGeneration atomic.Uint64

// CacheGeneration returns the current generation. Take it before reading
// from the repository and pass it to CacheFillJSON.
func CacheGeneration() uint64 {
	return cacheGeneration.Load()
}

// CacheGetBytes returns cached bytes for a key from Redis.
func CacheGetBytes(key string) ([]byte, bool) {
	rc := GetRedis()
	if rc == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	b, err := rc.Get(ctx, key).Bytes()
	if err != nil {
		Sugar.Debugf("cache get miss key=%s err=%v", key, err)
		return nil, false
	}
	return b, true
}

// CacheSetBytes stores bytes under key. A non-positive ttl uses the configured TTL.
func CacheSetBytes(key string, b []byte, ttl time.Duration) {
	rc := GetRedis()
	if rc == nil {
		return
	}
	if ttl <= 0 {
		ttl = time.Duration(config.Get().CacheTTLSeconds) * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rc.Set(ctx, key, b, ttl).Err(); err != nil {
		Sugar.Warnf("cache set failed key=%s err=%v", key, err)
	}
}

// CacheSetJSON stores v as a success envelope so hits can be served verbatim.
func CacheSetJSON(key string, data interface{}) {
	if GetRedis() == nil {
		return
	}
	b, err := json.Marshal(JSONResponse{Code: 0, Message: "success", Data: data})
	if err != nil {
		return
	}
	CacheSetBytes(key, b, 0)
}

// CacheFillJSON caches data under key unless a post changed since gen was taken.
// A mutation racing with the write removes the entry again.
func CacheFillJSON(key string, data interface{}, gen uint64) {
	if GetRedis() == nil {
		return
	}
	fillIfCurrent(gen, func() { CacheSetJSON(key, data) }, func() { CacheDelete(key) })
}

func fillIfCurrent(gen uint64, set, drop func()) bool {
	if cacheGeneration.Load() != gen {
		return false
	}
	set()
	if cacheGeneration.Load() != gen {
		drop()
		return false
	}
	return true
}

// CacheDelete removes a single key.
func CacheDelete(key string) {
	rc := GetRedis()
	if rc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rc.Del(ctx, key).Err(); err != nil {
		Sugar.Warnf("cache delete failed key=%s err=%v", key, err)
	}
}

// InvalidateByPrefix deletes keys that match the given prefix using SCAN.
func InvalidateByPrefix(prefix string) {
	rc := GetRedis()
	if rc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var cursor uint64
	for i := 0; i < 10; i++ { // limit rounds to avoid long loops
		keys, cur, err := rc.Scan(ctx, cursor, prefix+"*", 1000).Result()
		if err != nil {
			Sugar.Warnf("cache invalidate failed prefix=%s err=%v", prefix, err)
			return
		}
		cursor = cur
		if len(keys) > 0 {
			pipe := rc.Pipeline()
			for _, k := range keys {
				pipe.Del(ctx, k)
			}
			_, _ = pipe.Exec(ctx)
		}
		if cursor == 0 {
			return
		}
	}
}

// InvalidatePost advances the cache generation and drops the cached list and
// the cached detail of id.
func InvalidatePost(id string) {
	cacheGeneration.Add(1)
	InvalidateByPrefix(CacheKeyPostList)
	InvalidateByPrefix(CacheKeyPostDetail + id)
}
