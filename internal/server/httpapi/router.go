package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/shoppinglist/internal/logging"
	"github.com/dmitrijs2005/shoppinglist/internal/server/auth"
	"github.com/dmitrijs2005/shoppinglist/internal/server/metrics"
	"github.com/dmitrijs2005/shoppinglist/internal/server/services"
	"github.com/gin-gonic/gin"
)

// API holds what the route handlers need.
type API struct {
	users   *services.UserService
	lists   *services.ShoppingListService
	items   *services.ItemService
	gate    *auth.Gate
	metrics *metrics.Metrics
	health  func(context.Context) error
	logger  logging.Logger
}

// Deps wires an API. Metrics and Health are optional.
type Deps struct {
	Users   *services.UserService
	Lists   *services.ShoppingListService
	Items   *services.ItemService
	Gate    *auth.Gate
	Metrics *metrics.Metrics
	Health  func(context.Context) error
	Logger  logging.Logger
}

func NewAPI(d Deps) *API {
	l := d.Logger
	if l == nil {
		l = logging.Nop{}
	}
	return &API{
		users:   d.Users,
		lists:   d.Lists,
		items:   d.Items,
		gate:    d.Gate,
		metrics: d.Metrics,
		health:  d.Health,
		logger:  l.With("module", "http_api"),
	}
}

// Router builds the gin engine with every route registered.
func (a *API) Router() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	r.Use(requestID(), a.accessLog(), gin.Recovery())
	r.NoRoute(routeNotFound)
	r.NoMethod(methodNotAllowed)

	r.GET("/healthz", a.healthz)
	if a.metrics != nil {
		r.GET("/metrics", gin.WrapH(a.metrics.Handler()))
	}

	v1 := r.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.POST("/register", a.register)
	authRoutes.POST("/login", a.login)
	authRoutes.POST("/logout", a.authenticate, a.logout)
	authRoutes.POST("/reset-password", a.authenticate, a.resetPassword)

	lists := v1.Group("/shoppinglists", a.authenticate)
	lists.POST("", a.createList)
	lists.GET("", a.listLists)
	lists.GET("/:list_id", a.getList)
	lists.PUT("/:list_id", a.updateList)
	lists.DELETE("/:list_id", a.deleteList)

	lists.POST("/:list_id/items", a.createItem)
	lists.GET("/:list_id/items", a.listItems)
	lists.GET("/:list_id/items/:item_id", a.getItem)
	lists.PUT("/:list_id/items/:item_id", a.updateItem)
	lists.DELETE("/:list_id/items/:item_id", a.deleteItem)

	return r
}

func (a *API) healthz(c *gin.Context) {
	if a.health != nil {
		if err := a.health(c.Request.Context()); err != nil {
			a.logger.Warn(c.Request.Context(), "health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": statusFailure, "message": "storage unavailable"})
			return
		}
	}
	success(c, http.StatusOK, "ok")
}
