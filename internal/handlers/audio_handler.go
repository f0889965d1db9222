package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"mockmate/interview-api/internal/models"
	"mockmate/interview-api/internal/services"
)

type AudioHandler struct {
	speechService services.SpeechService
}

func NewAudioHandler(speechService services.SpeechService) *AudioHandler {
	return &AudioHandler{
		speechService: speechService,
	}
}

// HandleTextToSpeech handles POST /api/interview/text-to-speech and
// responds with the raw MP3 payload.
func (h *AudioHandler) HandleTextToSpeech(c *fiber.Ctx) error {
	var req models.TextToSpeechRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text is required",
		})
	}

	audio, err := h.speechService.TextToSpeech(c.Context(), req.Text, req.Voice)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "audio/mpeg")
	return c.Send(audio)
}

// HandleSpeechToText handles POST /api/interview/speech-to-text.
// Transcription failures are part of the response body, never an HTTP
// error status.
func (h *AudioHandler) HandleSpeechToText(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "audio file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to open audio file",
		})
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read audio file",
		})
	}

	result := h.speechService.SpeechToText(c.Context(), audio, c.FormValue("language"))
	if result.Error != "" {
		return c.JSON(fiber.Map{"error": result.Error})
	}

	return c.JSON(fiber.Map{"transcript": result.Transcript})
}
