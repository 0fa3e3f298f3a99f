package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Edumoretti/chatbot-llm/analytics"
	"github.com/Edumoretti/chatbot-llm/models"
	"github.com/Edumoretti/chatbot-llm/orchestrator"
)

type MessageController struct {
	orch      *orchestrator.Orchestrator
	contexts  *orchestrator.ContextManager
	analytics *analytics.Manager
}

func NewMessageController(
	orch *orchestrator.Orchestrator,
	contexts *orchestrator.ContextManager,
	analyticsManager *analytics.Manager,
) *MessageController {
	return &MessageController{
		orch:      orch,
		contexts:  contexts,
		analytics: analyticsManager,
	}
}

// ProcessMessage routes one user message through the orchestrator.
func (mc *MessageController) ProcessMessage(c *gin.Context) {
	var req models.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid payload: " + err.Error()})
		return
	}

	mc.analytics.TrackMessage(req.UserID, req.Message, req.Channel, true)

	if len(req.Context) > 0 {
		mc.contexts.Update(req.UserID, req.Context)
	}
	current := mc.contexts.Get(req.UserID)

	response := mc.orch.ProcessMessage(c.Request.Context(), req.UserID, req.Message, req.Channel, current)

	mc.analytics.TrackMessage(req.UserID, response, req.Channel, false)

	c.JSON(http.StatusOK, models.MessageResponse{Response: response})
}

// ClearConversation drops the user's conversational memory and context.
func (mc *MessageController) ClearConversation(c *gin.Context) {
	userID := c.Param("user_id")

	mc.orch.ClearConversation(userID)
	mc.contexts.Clear(userID)

	c.JSON(http.StatusOK, gin.H{"message": "Conversa limpa com sucesso"})
}
