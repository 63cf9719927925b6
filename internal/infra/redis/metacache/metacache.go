package infra_metacache

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-redis/redis"

	"github.com/reelmate/core/internal/model"
)

// Driver caches external metadata lookups so repeated title searches don't
// burn through the provider's request quota.
type Driver struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func New(client *redis.Client, key string, ttl time.Duration) *Driver {
	return &Driver{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// Get returns the cached movie and whether the key was present.
func (d *Driver) Get(title string, year int) (model.Movie, bool, error) {
	val, err := d.client.Get(d.fullKey(title, year)).Result()
	if err != nil {
		if err == redis.Nil {
			return model.Movie{}, false, nil
		}
		return model.Movie{}, false, err
	}

	var m model.Movie
	if err := json.Unmarshal([]byte(val), &m); err != nil {
		return model.Movie{}, false, err
	}
	return m, true, nil
}

func (d *Driver) Set(title string, year int, m model.Movie) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return d.client.Set(d.fullKey(title, year), payload, d.ttl).Err()
}

func (d *Driver) fullKey(title string, year int) string {
	key := title
	if year != 0 {
		key += ":" + strconv.Itoa(year)
	}
	if d.key != "" {
		return d.key + ":" + key
	}
	return key
}
