package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"frontdesk-backend/controllers"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	gc *controllers.GuestController,
	lc *controllers.LedgerController,
	ec *controllers.EntryController,
	xc *controllers.ExpenseController,
) *gin.Engine {
	r := gin.Default()

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		guests := api.Group("/guests")
		{
			guests.GET("", gc.GetGuests)

			// fixed paths before /:id
			guests.GET("/returning", lc.ReturningGuests)
			guests.GET("/late-checkout", gc.LateCheckoutAdvisory)

			guests.GET("/:id", gc.GetGuestByID)
			guests.POST("", gc.CheckIn)
			guests.PUT("/:id", gc.UpdateGuest)
			guests.DELETE("/:id", gc.DeleteGuest)

			guests.POST("/:id/checkout", gc.Checkout)
			guests.GET("/:id/recheckin", gc.ReCheckIn)

			guests.GET("/:id/ledger", lc.IdentityLedger)
			guests.POST("/:id/invoice", lc.StagedLedger)
			guests.GET("/:id/due", lc.CurrentDue)
			guests.GET("/:id/preferred-rate", lc.PreferredRate)
			guests.PUT("/:id/preferred-rate", lc.SetPreferredRate)
			guests.POST("/:id/pay-full", ec.PayFullDue)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", ec.ListOrders)
			orders.POST("", ec.CreateOrder)
			orders.DELETE("/:id", ec.DeleteOrder)
		}

		payments := api.Group("/payments")
		{
			payments.GET("", ec.ListPayments)
			payments.POST("", ec.CreatePayment)
			payments.DELETE("/:id", ec.DeletePayment)
		}

		customItems := api.Group("/custom-items")
		{
			customItems.GET("", ec.ListCustomItems)
			customItems.POST("", ec.CreateCustomItem)
			customItems.DELETE("/:id", ec.DeleteCustomItem)
		}

		expenses := api.Group("/expenses")
		{
			expenses.GET("", xc.ListExpenses)
			expenses.POST("", xc.CreateExpense)
			expenses.DELETE("/:id", xc.DeleteExpense)
		}

		stays := api.Group("/stays")
		{
			stays.DELETE("/:id", lc.DeleteStay)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", controllers.GetRooms)
			rooms.POST("", controllers.CreateRoom)
			rooms.PATCH("/:id", controllers.UpdateRoom)
			rooms.PUT("/:id", controllers.UpdateRoom)
			rooms.DELETE("/:id", controllers.DeleteRoom)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/hotel", controllers.GetHotelSettings)
			settings.PUT("/hotel", controllers.UpdateHotelSettings)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
			auth.POST("/change-password", controllers.ChangePassword)
		}

		sync := api.Group("/sync")
		{
			sync.GET("/snapshot", controllers.GetSyncSnapshot)
			sync.POST("/apply", controllers.ApplySyncSnapshot)
		}

		api.GET("/dashboard", lc.Dashboard)
	}

	return r
}
