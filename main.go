package main

import (
	"log"

	"portal/config"
	"portal/database"
	authRoutes "portal/routers/authRoutes"
	certificateRoutes "portal/routers/certificateRoutes"
	documentRoutes "portal/routers/documentRoutes"
	notificationRoutes "portal/routers/notificationRoutes"
	profileRoutes "portal/routers/profileRoutes"
	statsRoutes "portal/routers/statsRoutes"
	"portal/storage"
	"portal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	storage.Connect()

	app := fiber.New(fiber.Config{
		BodyLimit: int(config.AppConfig.MaxUploadBytes) + 1024*1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)
	documentRoutes.SetupDocumentRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)
	profileRoutes.SetupProfileRoutes(app)
	statsRoutes.SetupStatsRoutes(app)

	utils.InitializeNotificationScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
