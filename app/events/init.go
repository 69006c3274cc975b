package events

import (
	"github.com/gin-gonic/gin"

	"github.com/polyfeed/polyfeed/internal/deps"
)

// ServiceKey is the container key the events service registers under.
const ServiceKey = "events.service"

// Mount wires the events module with its default configuration. It satisfies
// router.MountFunc for fluent mounting.
func Mount(r *gin.RouterGroup, container *deps.Container) {
	Init(r, container, nil)
}

// Init initializes the events module and mounts routes. The built service is
// returned and registered on the container so the poller can drive it.
func Init(r *gin.RouterGroup, container *deps.Container, config *Config) Service {
	if config == nil {
		config = GetDefaultConfig()
	}
	if err := config.Validate(); err != nil {
		panic("Invalid events configuration: " + err.Error())
	}

	engine := NewTransformEngine(config, container.Logger)
	registry := NewURLRegistry(config.MaxInjectedURLs)
	srvs := NewService(config, engine, container.Gamma, container.Cache, registry, container.Logger)
	handler := NewHandler(srvs, config)

	eventsGroup := r.Group("/events")
	eventsGroup.GET("", handler.GetEvents)
	eventsGroup.GET("/search", handler.SearchEvents)
	eventsGroup.GET("/:id", handler.GetEventByID)

	injectedGroup := r.Group("/injected-urls")
	injectedGroup.POST("", handler.AddInjectedURL)
	injectedGroup.GET("", handler.ListInjectedURLs)
	injectedGroup.DELETE("/:id", handler.RemoveInjectedURL)

	container.RegisterService(ServiceKey, srvs)
	return srvs
}
