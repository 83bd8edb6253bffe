package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	handler "github.com/arnavk09/dream-serve/handlers"
)

func SetupRoutes(app *fiber.App, posts *handler.PostHandler, generate *handler.GenerateHandler) {
	api := app.Group("/api", logger.New())

	// Posts
	post := api.Group("/post")
	post.Get("/", posts.GetPosts)
	post.Post("/", posts.CreatePost)

	// Image generation
	api.Post("/generateImage", generate.GenerateImage)
}
