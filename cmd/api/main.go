package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	"github.com/examchat/backend/broadcast"
	config "github.com/examchat/backend/configs"
	"github.com/examchat/backend/database"
	"github.com/examchat/backend/handlers"
	"github.com/examchat/backend/jobs"
	"github.com/examchat/backend/notifications"
	"github.com/examchat/backend/routes"
	"github.com/examchat/backend/services"
	"github.com/examchat/backend/websocket"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.Seed()
	notifications.InitEmailService()

	redisClient := broadcast.NewRedisClient()
	publisher := broadcast.NewRedisPublisher(redisClient)
	go websocket.RunHub(redisClient)

	c := cron.New()
	c.AddFunc("0 * * * *", jobs.SendUnreadMessageReminders)
	go c.Start()
	log.Println("✅ Cron job for unread reminders scheduled successfully.")

	examService := services.NewExamService(database.DB)
	examHandler := handlers.NewExamHandler(examService)
	chatHandler := handlers.NewChatHandler(publisher)

	app := fiber.New(fiber.Config{
		AppName:       "ExamChat",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
				"data":    nil,
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.AuthRoutes(app)
	routes.ProfileRoutes(app)
	routes.ChatRoutes(app, chatHandler)
	routes.GroupRoutes(app)
	routes.ExamRoutes(app, examHandler)

	port := config.ConfigOr("PORT", "8080")
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
