package handlers

import (
	"strings"

	"esports-registration/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// NewApp builds the fiber app with the shared middleware stack. Routes are
// added by SetupRoutes.
func NewApp(allowedOrigins []string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "esports-registration",
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
		BodyLimit:             1 << 20,
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(allowedOrigins, ","),
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	return app
}
