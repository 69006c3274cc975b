package router

import (
	"github.com/gin-gonic/gin"
	"github.com/polyfeed/polyfeed/internal/deps"
)

// MountFunc mounts one module's routes onto a route group.
type MountFunc func(*gin.RouterGroup, *deps.Container)

// Mounter wires feature modules onto the engine with shared dependencies.
type Mounter struct {
	container *deps.Container
}

func NewMounter(container *deps.Container) *Mounter {
	return &Mounter{container: container}
}

// Public returns the versioned public route group.
func (m *Mounter) Public(engine *gin.Engine) *RouteGroup {
	return &RouteGroup{group: engine.Group("/api/v1"), container: m.container}
}

type RouteGroup struct {
	group     *gin.RouterGroup
	container *deps.Container
}

// Mount provides a fluent interface for mounting modules.
func (rg *RouteGroup) Mount(mountFunc MountFunc) *RouteGroup {
	mountFunc(rg.group, rg.container)
	return rg
}

// Group creates a sub-group for organizing routes.
func (rg *RouteGroup) Group(path string) *RouteGroup {
	return &RouteGroup{group: rg.group.Group(path), container: rg.container}
}
