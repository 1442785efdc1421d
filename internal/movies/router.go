package movies

import (
	"movieticket/internal/session"
	"movieticket/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupMovieRoutes(router *gin.RouterGroup, controller Controller, holder *session.Holder) {
	// Public routes - anyone can browse the catalog
	publicMovies := router.Group("/movies")
	{
		publicMovies.GET("", controller.BrowseCatalog) // GET /movies?title=&genre=&page=
		publicMovies.GET("/:id", controller.GetMovie)  // GET /movies/:id
	}

	// Admin routes - movie management
	adminMovies := router.Group("/admin/movies")
	adminMovies.Use(middleware.RequireAdmin(holder))
	{
		adminMovies.GET("", controller.ListMovies)
		adminMovies.POST("", controller.CreateMovie)
		adminMovies.PUT("/:id", controller.UpdateMovie)

		// Two-phase enable/disable toggle
		adminMovies.POST("/:id/toggle", controller.PrepareToggle)
		adminMovies.POST("/:id/toggle/confirm", controller.ConfirmToggle)
		adminMovies.DELETE("/:id/toggle", controller.CancelToggle)
	}
}
