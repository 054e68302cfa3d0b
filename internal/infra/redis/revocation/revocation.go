package infra_redis_revocation

import (
	"time"

	"github.com/go-redis/redis"
)

const revokedMark = "revoked"

// Driver keeps revoked token ids until the tokens would expire on their own.
type Driver struct {
	client *redis.Client
	key    string
}

func New(
	client *redis.Client,
	key string,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
	}
}

func (d *Driver) Revoke(tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(d.getFullKey(tokenID), revokedMark, ttl).Err()
}

func (d *Driver) IsRevoked(tokenID string) (bool, error) {
	_, err := d.client.Get(d.getFullKey(tokenID)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (d *Driver) getFullKey(key string) string {
	if d.key != "" {
		return d.key + ":" + key
	}
	return key
}
