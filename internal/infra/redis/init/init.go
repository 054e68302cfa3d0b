package infra_redis_init

import (
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis"
	"github.com/humanbelnik/roomsync/core/internal/config"
)

const dialTimeout = 3 * time.Second

func EstablishConn(cfg config.RedisCache) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:    cfg.Password,
		DB:          0,
		DialTimeout: dialTimeout,
	})

	if err := client.Ping().Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s:%s: %w", cfg.Host, cfg.Port, err)
	}

	return client, nil
}

func MustEstablishConn(cfg config.RedisCache) *redis.Client {
	client, err := EstablishConn(cfg)
	if err != nil {
		log.Fatal(err)
	}
	return client
}
