package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/SwitteeFranca2-0/Panda-Spa/config"
	"github.com/SwitteeFranca2-0/Panda-Spa/models"
	"github.com/SwitteeFranca2-0/Panda-Spa/routes"
	"github.com/SwitteeFranca2-0/Panda-Spa/services"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Customer{},
		&models.Service{},
		&models.Extra{},
		&models.Appointment{},
		&models.CustomerPreference{},
		&models.FeelingServiceMapping{},
		&models.FinancialRecord{},
		&models.Supplier{},
		&models.ReminderLog{},
	)
}

func main() {
	if os.Getenv("REMINDERS_ENABLED") == "true" {
		reminders := services.NewReminderService(config.DB, services.NewAppointmentService(config.DB))
		reminders.StartScheduler()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
