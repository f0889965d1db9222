package handlers

import (
	"github.com/gofiber/fiber/v2"

	"mockmate/interview-api/internal/models"
	"mockmate/interview-api/internal/services"
)

type LogsHandler struct {
	eventLog services.EventLogService
}

func NewLogsHandler(eventLog services.EventLogService) *LogsHandler {
	return &LogsHandler{
		eventLog: eventLog,
	}
}

// HandleCreateLog handles POST /api/logs, appending one client event
// to the access log.
func (h *LogsHandler) HandleCreateLog(c *fiber.Ctx) error {
	var entry models.ClientLogEntry

	if err := c.BodyParser(&entry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if entry.UserID == "" || entry.Timestamp == "" || entry.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "userId, timestamp and message are required",
		})
	}

	if err := h.eventLog.Append(entry); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "ok"})
}
