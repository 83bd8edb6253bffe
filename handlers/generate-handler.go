package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arnavk09/dream-serve/generation"
)

type GenerateHandler struct {
	client   *generation.Client
	enhancer *generation.Enhancer // nil when prompt enhancement is disabled
}

func NewGenerateHandler(client *generation.Client, enhancer *generation.Enhancer) *GenerateHandler {
	return &GenerateHandler{client: client, enhancer: enhancer}
}

func (h *GenerateHandler) GenerateImage(c *fiber.Ctx) error {
	type GenerateImageRequest struct {
		Prompt string `json:"prompt" validate:"required"`
	}

	var req GenerateImageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Image prompt is required.",
		})
	}

	prompt := req.Prompt
	if h.enhancer != nil {
		prompt = h.enhancer.Enhance(c.UserContext(), prompt)
	}

	result, err := h.client.Generate(c.UserContext(), prompt)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"photo": result.URL,
	})
}
