package purchases

import (
	"movieticket/internal/session"
	"movieticket/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPurchaseRoutes(router *gin.RouterGroup, controller Controller, holder *session.Holder) {
	// Wizard routes - any signed-in user can buy tickets. StartPurchase
	// handles the login redirect itself so the return path survives.
	wizard := router.Group("/purchase")
	{
		wizard.POST("/start/:movieId", controller.StartPurchase)

		steps := wizard.Group("")
		steps.Use(middleware.RequireLogin(holder))
		{
			steps.GET("", controller.GetWizard)
			steps.POST("/quantity", controller.SubmitQuantity)
			steps.POST("/payment", controller.SubmitPayment)
			steps.GET("/confirmation", controller.GetConfirmation)
		}
	}

	// Customer routes - own purchase history
	myPurchases := router.Group("/my/purchases")
	myPurchases.Use(middleware.RequireCustomer(holder))
	{
		myPurchases.GET("", controller.ListMyPurchases)
		myPurchases.POST("/:id/cancel", controller.CancelMyPurchase)
	}

	// Admin routes - aggregated purchase management
	adminPurchases := router.Group("/admin/purchases")
	adminPurchases.Use(middleware.RequireAdmin(holder))
	{
		adminPurchases.GET("", controller.ListAllPurchases) // GET /admin/purchases?movieId=&customerId=&status=&search=&page=
		adminPurchases.GET("/:id", controller.GetPurchase)
	}
}
