package handlers

import (
	"strconv"

	"convert_gateway_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ConnectCheck check api connect start
// @Summary Check Convert Gateway status
// @Description Returns a simple confirmation message
// @Tags Shared
// @Success 200 {string} string "convert gateway start!"
// @Router /v1/ [get]
func ConnectCheck(c *fiber.Ctx) error {
	return c.SendString("convert gateway start!")
}

// DebugLogFlag toggle debug log flag
// @Summary Toggle Debug Log Flag
// @Description Enable or disable debug logging
// @Tags Shared
// @Param status query bool true "Debug status"
// @Success 200 {string} string "debug mode updated"
// @Failure 400 {string} string "Invalid status value"
// @Router /v1/debug [post]
func DebugLogFlag(c *fiber.Ctx) error {
	statusStr := c.Query("status")
	status, err := strconv.ParseBool(statusStr)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	logger.Log.SetDebugMode(status)
	logger.Log.Info("debug mode updated", zap.Bool("status", status))
	return c.SendString("debug mode updated")
}
