package route

import (
	"github.com/gofiber/fiber/v2"

	"campusevents_backend/internals/features/chatbot/controller"
	"campusevents_backend/internals/features/chatbot/service"
	"campusevents_backend/internals/middlewares"
)

// ChatbotRoutes mounts the public chatbot endpoints under /api/chatbot.
func ChatbotRoutes(api fiber.Router) {
	ctrl := controller.NewChatbotController(service.NewGroqService())

	chatbot := api.Group("/chatbot", middlewares.ChatbotRateLimiter())
	chatbot.Post("/chat", ctrl.Chat)
	chatbot.Get("/conversation/:id", ctrl.GetConversation)
	chatbot.Delete("/conversation/:id", ctrl.ClearConversation)
}
