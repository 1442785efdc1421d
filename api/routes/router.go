// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"movieticket/internal/auth"
	"movieticket/internal/customers"
	"movieticket/internal/movies"
	"movieticket/internal/purchases"
	"movieticket/internal/session"
	"movieticket/internal/shared/config"
	"movieticket/internal/shared/utils/response"
	"movieticket/pkg/logger"
	"movieticket/pkg/upstream"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	holder *session.Holder
	store  session.Store
	api    *upstream.Client
	log    *logger.Logger

	movieClient *movies.Client // shared with the purchase views
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, holder *session.Holder, store session.Store, api *upstream.Client, log *logger.Logger) *Router {
	return &Router{
		config: cfg,
		holder: holder,
		store:  store,
		api:    api,
		log:    log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)
	r.setupHomeRoutes(engine)

	root := engine.Group("")
	{
		r.setupAuthRoutes(root)

		// Movie routes first: the purchase views reuse the movie client
		r.setupMovieRoutes(root)
		r.setupCustomerRoutes(root)
		r.setupPurchaseRoutes(root)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "movieticket-gateway",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "movieticket-gateway",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}

// setupHomeRoutes serves the landing view and the navigation payload
// derived from the session holder.
func (r *Router) setupHomeRoutes(engine *gin.Engine) {
	engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/home")
	})

	engine.GET("/home", func(c *gin.Context) {
		current := r.holder.Current()
		response.Success(c, http.StatusOK, "Welcome", gin.H{
			"loggedIn":   current != nil,
			"session":    current,
			"isAdmin":    r.holder.IsAdmin(),
			"isCustomer": r.holder.IsCustomer(),
		})
	})
}

// setupAuthRoutes configures registration and session routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	customerClient := customers.NewClient(r.api)
	authController := auth.NewController(customerClient, r.holder, r.log)

	auth.SetupAuthRoutes(rg, authController)
}

// setupMovieRoutes configures catalog browsing and movie management routes
func (r *Router) setupMovieRoutes(rg *gin.RouterGroup) {
	r.movieClient = movies.NewClient(r.api)
	catalog := movies.NewCatalog(r.movieClient, r.config.View.PageSize)
	manage := movies.NewManage(r.movieClient, r.config.View.PageSize, r.config.View.MaxImageSize)
	movieController := movies.NewController(catalog, manage, r.movieClient)

	movies.SetupMovieRoutes(rg, movieController, r.holder)
}

// setupCustomerRoutes configures customer management routes
func (r *Router) setupCustomerRoutes(rg *gin.RouterGroup) {
	customerClient := customers.NewClient(r.api)
	customerService := customers.NewService(customerClient, r.config.View.PageSize)
	customerController := customers.NewController(customerService, customerClient)

	customers.SetupCustomerRoutes(rg, customerController, r.holder)
}

// setupPurchaseRoutes configures the wizard, history, and management routes
func (r *Router) setupPurchaseRoutes(rg *gin.RouterGroup) {
	purchaseClient := purchases.NewClient(r.api)
	wizard := purchases.NewWizard(r.movieClient, purchaseClient, r.holder, r.log)
	purchaseService := purchases.NewService(purchaseClient, r.movieClient, r.log, r.config.View.PageSize)
	purchaseController := purchases.NewController(wizard, purchaseService, purchaseClient, r.holder)

	purchases.SetupPurchaseRoutes(rg, purchaseController, r.holder)
}
