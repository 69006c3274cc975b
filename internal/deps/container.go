package deps

import (
	"github.com/polyfeed/polyfeed/internal/cache"
	"github.com/polyfeed/polyfeed/internal/gamma"
	"github.com/polyfeed/polyfeed/internal/logger"
	"github.com/polyfeed/polyfeed/models"
)

// Container holds the shared dependencies feature modules are wired with.
type Container struct {
	Logger logger.Logger
	Cache  cache.Cache[[]models.Event]
	Gamma  gamma.Client

	services map[string]interface{}
}

func NewContainer(log logger.Logger, c cache.Cache[[]models.Event], client gamma.Client) *Container {
	return &Container{
		Logger:   log,
		Cache:    c,
		Gamma:    client,
		services: make(map[string]interface{}),
	}
}

// RegisterService stores a module service under a key so other modules can
// reach it without an import cycle.
func (c *Container) RegisterService(key string, service interface{}) {
	c.services[key] = service
}

// GetService retrieves a service by key, or nil when absent.
func (c *Container) GetService(key string) interface{} {
	return c.services[key]
}
