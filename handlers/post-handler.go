package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/arnavk09/dream-serve/apperror"
	"github.com/arnavk09/dream-serve/service"
)

var validate = validator.New()

type PostHandler struct {
	pipeline *service.Pipeline
}

func NewPostHandler(pipeline *service.Pipeline) *PostHandler {
	return &PostHandler{pipeline: pipeline}
}

func (h *PostHandler) GetPosts(c *fiber.Ctx) error {
	posts, err := h.pipeline.ListPosts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    posts,
	})
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var draft service.PostDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if err := validate.Struct(draft); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Name, prompt, and photo are required.",
		})
	}

	post, err := h.pipeline.CreatePost(c.UserContext(), draft)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    post,
	})
}

func respondError(c *fiber.Ctx, err error) error {
	status, message := apperror.Translate(err)
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
