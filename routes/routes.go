package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/SwitteeFranca2-0/Panda-Spa/config"
	"github.com/SwitteeFranca2-0/Panda-Spa/controllers"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	controllers.Init(config.DB)

	api := r.Group("/api")
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Service catalog routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Extra routes
		extras := api.Group("/extras")
		{
			extras.POST("", controllers.CreateExtra)
			extras.GET("", controllers.GetExtras)
			extras.GET("/:id", controllers.GetExtra)
			extras.PUT("/:id", controllers.UpdateExtra)
			extras.DELETE("/:id", controllers.DeleteExtra)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/slots", controllers.GetAvailableSlots)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.POST("/:id/cancel", controllers.CancelAppointment)
			appointments.POST("/:id/complete", controllers.CompleteAppointment)
			appointments.POST("/:id/no-show", controllers.MarkAppointmentNoShow)
			appointments.PUT("/:id/reschedule", controllers.RescheduleAppointment)
		}

		// Recommendation routes
		api.GET("/recommendations/:customerId", controllers.GetRecommendations)
		api.GET("/recommendations/feeling/:feeling", controllers.GetRecommendationsByFeeling)
		api.GET("/feelings", controllers.GetAvailableFeelings)
		api.GET("/preferences/:customerId", controllers.GetCustomerPreferences)

		// Feeling mapping routes
		mappings := api.Group("/feeling-mappings")
		{
			mappings.POST("", controllers.CreateFeelingMapping)
			mappings.GET("", controllers.GetFeelingMappings)
			mappings.PUT("/:id", controllers.UpdateFeelingMapping)
			mappings.DELETE("/:id", controllers.DeleteFeelingMapping)
		}

		// Financial routes
		financials := api.Group("/financials")
		{
			financials.POST("/expenses", controllers.CreateExpense)
			financials.GET("/records", controllers.GetFinancialRecords)
			financials.GET("/summary", controllers.GetFinancialSummary)
		}

		// Supplier routes
		suppliers := api.Group("/suppliers")
		{
			suppliers.POST("", controllers.CreateSupplier)
			suppliers.GET("", controllers.GetSuppliers)
			suppliers.PUT("/:id", controllers.UpdateSupplier)
			suppliers.DELETE("/:id", controllers.DeleteSupplier)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
