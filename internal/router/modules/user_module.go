package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seuhd/campuscoffee/internal/container"
	handlers "github.com/seuhd/campuscoffee/internal/interface/http"
	"github.com/seuhd/campuscoffee/internal/interface/middleware"
)

// UserModule wires the user HTTP handlers into routes under /api/users.
//
// GET    /api/users
// GET    /api/users/filter?name=
// GET    /api/users/:id
// POST   /api/users
// PUT    /api/users/:id
// DELETE /api/users/:id
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Mutations are limited harder than reads.
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)
	writeLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	users := rg.Group("/users")
	{
		users.GET("", readLimiter, m.Handler.List)
		users.GET("/filter", readLimiter, m.Handler.Filter)
		users.GET("/:id", readLimiter, m.Handler.GetByID)
		users.POST("", writeLimiter, m.Handler.Create)
		users.PUT("/:id", writeLimiter, m.Handler.Update)
		users.DELETE("/:id", writeLimiter, m.Handler.Delete)
	}
}
