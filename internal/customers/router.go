package customers

import (
	"movieticket/internal/session"
	"movieticket/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCustomerRoutes(router *gin.RouterGroup, controller Controller, holder *session.Holder) {
	// Admin routes - customer management
	adminCustomers := router.Group("/admin/customers")
	adminCustomers.Use(middleware.RequireAdmin(holder))
	{
		adminCustomers.GET("", controller.ListCustomers) // GET /admin/customers?search=&page=
		adminCustomers.GET("/:id", controller.GetCustomer)

		// Two-phase enable/disable toggle
		adminCustomers.POST("/:id/toggle", controller.PrepareToggle)
		adminCustomers.POST("/:id/toggle/confirm", controller.ConfirmToggle)
		adminCustomers.DELETE("/:id/toggle", controller.CancelToggle)
	}
}
