// internal/app/store/users/cache.go
package userstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// profileTTL bounds staleness of cached display info. Profile edits happen
// in another service, so the cache is only ever best-effort.
const profileTTL = 5 * time.Minute

const profileKeyPrefix = "platefull:user:display:"

// cache is a thin redis wrapper; every failure is treated as a miss.
type cache struct {
	rdb *redis.Client
}

func newCache(rdb *redis.Client) *cache {
	return &cache{rdb: rdb}
}

func (c *cache) get(ctx context.Context, id primitive.ObjectID) (DisplayInfo, bool) {
	raw, err := c.rdb.Get(ctx, profileKeyPrefix+id.Hex()).Bytes()
	if err != nil {
		return DisplayInfo{}, false
	}
	var d DisplayInfo
	if err := json.Unmarshal(raw, &d); err != nil {
		return DisplayInfo{}, false
	}
	return d, true
}

func (c *cache) put(ctx context.Context, id primitive.ObjectID, d DisplayInfo) {
	raw, err := json.Marshal(d)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, profileKeyPrefix+id.Hex(), raw, profileTTL)
}
