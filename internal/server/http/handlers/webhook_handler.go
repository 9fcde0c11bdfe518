package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ERTG-BOTS/AchieverBot/internal/bot"
	"github.com/ERTG-BOTS/AchieverBot/internal/server/http/dto"
)

// WebhookHandler accepts updates pushed by Telegram.
type WebhookHandler struct {
	dispatcher Dispatcher
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(dispatcher Dispatcher) *WebhookHandler {
	return &WebhookHandler{dispatcher: dispatcher}
}

// Receive handles POST /webhook. Any 2xx stops Telegram from redelivering, so
// interaction failures are acknowledged as well.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	outcome := h.dispatcher.Handle(c.Request.Context(), bot.FromTelegram(update))
	c.JSON(http.StatusOK, dto.WebhookResponse{OK: true, Outcome: outcome.String()})
}
