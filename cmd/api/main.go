package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/polyfeed/polyfeed/app"
	"github.com/polyfeed/polyfeed/app/api"
	"github.com/polyfeed/polyfeed/app/events"
	"github.com/polyfeed/polyfeed/internal/cache"
	"github.com/polyfeed/polyfeed/internal/deps"
	"github.com/polyfeed/polyfeed/internal/gamma"
	"github.com/polyfeed/polyfeed/internal/logger"
	"github.com/polyfeed/polyfeed/internal/router"
	"github.com/polyfeed/polyfeed/models"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	level := logger.LevelInfo
	if cfg.Env == "development" {
		level = logger.LevelDebug
	}
	zlog := logger.NewZeroLogger(os.Stdout, level, logger.Fields{"service": "polyfeed"})

	var redisOpts *cache.RedisOptions
	if cfg.CacheBackend == cache.RedisBackend {
		redisOpts = &cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}
	}
	catalogCache, err := cache.New[[]models.Event](cfg.CacheBackend, redisOpts)
	if err != nil {
		zlog.Fatal(err, map[string]interface{}{"backend": cfg.CacheBackend})
	}

	gammaClient := gamma.NewClient(cfg.GammaBaseURL, cfg.GammaTimeout, cfg.GammaMaxRetries, zlog)
	container := deps.NewContainer(zlog, catalogCache, gammaClient)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), api.CorsMiddleware(), api.RequestLogger(zlog))
	r.GET("/healthz", api.HealthCheck)

	router.NewMounter(container).
		Public(r).
		Mount(func(g *gin.RouterGroup, c *deps.Container) {
			g.GET("/healthz", api.HealthCheck)
			events.Init(g, c, &cfg.Events)
		})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srvs, _ := container.GetService(events.ServiceKey).(events.Service)
	poller := events.NewPoller(srvs, cfg.Events.PollInterval, zlog)
	go poller.Run(ctx)

	addr := fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort)
	zlog.Info("starting API server", map[string]interface{}{"addr": addr})
	if err := r.Run(addr); err != nil {
		zlog.Fatal(err, nil)
	}
}
