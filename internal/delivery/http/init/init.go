package http_init

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/humanbelnik/roomsync/core/internal/config"
	http_access_middleware "github.com/humanbelnik/roomsync/core/internal/delivery/http/middleware/access"
	http_timeout_middleware "github.com/humanbelnik/roomsync/core/internal/delivery/http/middleware/timeout"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type Controller interface {
	RegisterRoutes(router *gin.RouterGroup)
}

type ControllerPool struct {
	pool   []Controller
	rg     *gin.RouterGroup
	engine *gin.Engine
}

func NewControllerPool(cfg config.HTTPServer) *ControllerPool {
	engine := gin.Default()
	engine.Use(
		http_access_middleware.ReadOnlyBadGatewayMiddleware(cfg.Mode),
		http_timeout_middleware.RequestTimeout(cfg.RequestTimeout),
	)
	engine.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "API running")
	})

	rg := engine.Group(cfg.APIPrefix)
	return &ControllerPool{
		pool:   make([]Controller, 0, 10),
		rg:     rg,
		engine: engine,
	}
}

func (pool *ControllerPool) Register() {
	for _, c := range pool.pool {
		c.RegisterRoutes(pool.rg)
	}
}

func (pool *ControllerPool) Add(c Controller) {
	pool.pool = append(pool.pool, c)
}

func (pool *ControllerPool) Handler() http.Handler {
	return pool.engine
}

// Run serves until ctx is done, then drains in-flight requests.
func (pool *ControllerPool) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: pool.engine,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("http server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (pool *ControllerPool) RunAll(ctx context.Context, host string, port string) {
	if err := pool.Run(ctx, net.JoinHostPort(host, port)); err != nil {
		log.Fatalf("failed to run HTTP server: %v", err)
	}
}
