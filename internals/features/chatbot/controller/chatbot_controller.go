package controller

import (
	"github.com/gofiber/fiber/v2"

	"campusevents_backend/internals/features/chatbot/dto"
	"campusevents_backend/internals/features/chatbot/service"
	helper "campusevents_backend/internals/helpers"
)

type ChatbotController struct {
	Service *service.GroqService
}

func NewChatbotController(svc *service.GroqService) *ChatbotController {
	return &ChatbotController{Service: svc}
}

// POST /api/chatbot/chat
func (ctrl *ChatbotController) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := helper.ValidateStruct(req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	resp, err := ctrl.Service.Chat(c.Context(), req.Message, req.ConversationID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Chat reply generated", resp)
}

// GET /api/chatbot/conversation/:id
func (ctrl *ChatbotController) GetConversation(c *fiber.Ctx) error {
	id, appErr := helper.ParseUUIDParam(c, "id")
	if appErr != nil {
		return helper.JsonAppError(c, appErr)
	}

	history := ctrl.Service.History(id.String())
	if len(history.Messages) == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Conversation not found")
	}
	return helper.JsonOK(c, "Conversation retrieved", history)
}

// DELETE /api/chatbot/conversation/:id
func (ctrl *ChatbotController) ClearConversation(c *fiber.Ctx) error {
	id, appErr := helper.ParseUUIDParam(c, "id")
	if appErr != nil {
		return helper.JsonAppError(c, appErr)
	}

	if !ctrl.Service.ClearConversation(id.String()) {
		return helper.JsonError(c, fiber.StatusNotFound, "Conversation not found")
	}
	return helper.JsonDeleted(c, "Conversation cleared", fiber.Map{"conversation_id": id})
}
