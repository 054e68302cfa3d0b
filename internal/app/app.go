package app

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/humanbelnik/roomsync/core/internal/config"
	http_init "github.com/humanbelnik/roomsync/core/internal/delivery/http/init"
	http_metrics "github.com/humanbelnik/roomsync/core/internal/delivery/http/metrics"
	http_auth_middleware "github.com/humanbelnik/roomsync/core/internal/delivery/http/middleware/auth"
	http_room "github.com/humanbelnik/roomsync/core/internal/delivery/http/room"
	http_swagger "github.com/humanbelnik/roomsync/core/internal/delivery/http/swagger"
	http_user "github.com/humanbelnik/roomsync/core/internal/delivery/http/user"
	infra_memory "github.com/humanbelnik/roomsync/core/internal/infra/memory"
	infra_metrics "github.com/humanbelnik/roomsync/core/internal/infra/metrics"
	infra_pg_init "github.com/humanbelnik/roomsync/core/internal/infra/postgres/init"
	infra_postgres_room "github.com/humanbelnik/roomsync/core/internal/infra/postgres/room"
	infra_postgres_user "github.com/humanbelnik/roomsync/core/internal/infra/postgres/user"
	infra_redis_init "github.com/humanbelnik/roomsync/core/internal/infra/redis/init"
	infra_redis_revocation "github.com/humanbelnik/roomsync/core/internal/infra/redis/revocation"
	service_jwt_auth "github.com/humanbelnik/roomsync/core/internal/service/auth/jwt"
	usecase_membership "github.com/humanbelnik/roomsync/core/internal/usecase/membership"
	usecase_user "github.com/humanbelnik/roomsync/core/internal/usecase/user"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const revokedTokensKey = "revoked_tokens"

type userStore interface {
	usecase_membership.UserRepository
	usecase_user.UserRepository
}

func Go(cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	roomRepository, userRepository, closeStorage := mustStorage(cfg)
	defer closeStorage()

	var revoked service_jwt_auth.RevocationCache
	if cfg.Redis.Enabled {
		redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
		defer redisConn.Close()
		revoked = infra_redis_revocation.New(redisConn, revokedTokensKey)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := infra_metrics.New(registry)

	tokenService, err := service_jwt_auth.New(cfg.Auth.Secret, cfg.Auth.TokenTTL, clock.New(), revoked)
	if err != nil {
		log.Fatalf("failed to init token service: %v", err)
	}
	membershipUC := usecase_membership.New(
		roomRepository,
		userRepository,
		metrics,
		cfg.Membership.DefaultCapacity,
		cfg.Membership.MaxAttempts,
	)
	userUC := usecase_user.New(userRepository, tokenService, 0 /* bcrypt default cost */)

	authRequired := http_auth_middleware.New(tokenService).AuthRequired()

	controllerPool := http_init.NewControllerPool(cfg.HTTP)
	controllerPool.Add(http_swagger.New(cfg.HTTP.APIPrefix))
	controllerPool.Add(http_metrics.New(registry))
	controllerPool.Add(http_room.New(membershipUC, authRequired))
	controllerPool.Add(http_user.New(userUC, authRequired))

	controllerPool.Register()
	controllerPool.RunAll(ctx, cfg.HTTP.Host, cfg.HTTP.Port)
}

func mustStorage(cfg *config.Config) (usecase_membership.RoomRepository, userStore, func()) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		return infra_memory.NewRooms(), infra_memory.NewUsers(), func() {}
	case config.StorageDriverPostgres:
		pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
		infra_pg_init.MustMigrate(pgConn)
		return infra_postgres_room.New(pgConn), infra_postgres_user.New(pgConn), func() { _ = pgConn.Close() }
	default:
		log.Fatalf("unknown storage driver %q", cfg.Storage.Driver)
		return nil, nil, nil
	}
}
