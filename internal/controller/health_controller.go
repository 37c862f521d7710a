package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type IHealthController interface {
	RegisterRoutes(app *fiber.App)
	Live(ctx *fiber.Ctx) error
	Ready(ctx *fiber.Ctx) error
}

type healthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) IHealthController {
	return &healthController{db: db}
}

func (c *healthController) RegisterRoutes(app *fiber.App) {
	app.Get("/health", c.Live)
	app.Get("/ready", c.Ready)
}

func (c *healthController) Live(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}

// Ready also checks the database so load balancers stop routing
// traffic when the pool is gone.
func (c *healthController) Ready(ctx *fiber.Ctx) error {
	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Context())
	}
	if err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).
			JSON(fiber.Map{"status": "unavailable"})
	}
	return ctx.JSON(fiber.Map{"status": "ready"})
}
