package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "corptransit/internal/config"
	"corptransit/internal/domain/models"
	h "corptransit/internal/http/handlers"
	"corptransit/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	_ = env

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.GET("/validate", middleware.Auth(), h.Validate)

		secured := api.Group("")
		secured.Use(middleware.Auth())
		adminOnly := middleware.RequireRoles(models.RoleAdmin, models.RoleClientAdmin)

		// Clients
		clients := secured.Group("/clients")
		clients.GET("", h.GetClients)
		clients.GET("/:id", h.GetClientByID)
		clients.POST("", adminOnly, h.CreateClient)
		clients.PUT("/:id", adminOnly, h.UpdateClient)
		clients.DELETE("/:id", adminOnly, h.DeleteClient)

		// Employees
		employees := secured.Group("/employees")
		employees.GET("", h.GetEmployees)
		employees.GET("/:id", h.GetEmployeeByID)
		employees.POST("", h.CreateEmployee)
		employees.PUT("/:id", h.UpdateEmployee)
		employees.DELETE("/:id", adminOnly, h.DeleteEmployee)

		// Vendors
		vendors := secured.Group("/vendors")
		vendors.GET("", h.GetVendors)
		vendors.GET("/:id", h.GetVendorByID)
		vendors.POST("", adminOnly, h.CreateVendor)
		vendors.PUT("/:id", adminOnly, h.UpdateVendor)
		vendors.DELETE("/:id", adminOnly, h.DeleteVendor)

		// Trips
		trips := secured.Group("/trips")
		trips.GET("", h.GetTrips)
		trips.GET("/client/:clientId/vendor/:vendorId", h.GetTripsByPair)
		trips.GET("/unbilled/client/:clientId", h.GetUnbilledTrips)
		trips.GET("/count/client/:clientId", h.GetTripCountByMonth)
		trips.GET("/:id", h.GetTripByID)
		trips.POST("", h.CreateTrip)
		trips.PUT("/:id", h.UpdateTrip)
		trips.PUT("/:id/complete", h.CompleteTrip)
		trips.PUT("/:id/cancel", h.CancelTrip)
		trips.DELETE("/:id", h.DeleteTrip)

		// Billing models
		billingModels := secured.Group("/billing-models")
		billingModels.GET("", h.GetBillingModels)
		billingModels.GET("/client/:clientId/vendor/:vendorId", h.GetBillingModelByPair)
		billingModels.GET("/:id", h.GetBillingModelByID)
		billingModels.POST("", adminOnly, h.CreateBillingModel)
		billingModels.PUT("/:id", adminOnly, h.UpdateBillingModel)
		billingModels.DELETE("/:id", adminOnly, h.DeleteBillingModel)

		// Billing engine
		billing := secured.Group("/billing")
		billing.POST("/calculate", h.CalculateBilling)
		billing.GET("/calculate/client/:clientId/vendor/:vendorId", h.CalculateBillingByPair)

		// Incentives
		incentives := secured.Group("/incentives")
		incentives.POST("/employee/trip", h.CalculateEmployeeTripIncentive)
		incentives.POST("/employee/monthly", h.CalculateMonthlyEmployeeIncentive)
		incentives.POST("/vendor", h.CalculateVendorIncentive)
		incentives.GET("/employee/:employeeId", h.GetEmployeeMonthlyIncentive)
		incentives.GET("/vendor/:vendorId", h.GetVendorMonthlyIncentive)

		// Invoices
		invoices := secured.Group("/invoices")
		invoices.POST("/generate", h.GenerateInvoice)
		invoices.GET("", h.GetInvoices)
		invoices.GET("/:id", h.GetInvoiceByID)
		invoices.PUT("/:id/status", h.UpdateInvoiceStatus)
		invoices.DELETE("/:id", adminOnly, h.DeleteInvoice)

		// Reports
		reports := secured.Group("/reports")
		reports.GET("/billing/client/:clientId/vendor/:vendorId/pdf", h.GetBillingStatementPDF)
		reports.GET("/billing/summary", h.GetBillingSummary)
	}

	return r
}
