package handlers

import (
	"context"
	"crypto/subtle"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storebot/internal/server/http/dto"
	"github.com/polkiloo/storebot/internal/server/http/middleware"
)

const (
	// SecretTokenHeader carries the secret registered with setWebhook.
	SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"
	maxUpdateSize     = 1 << 20
)

// WebhookHandler receives chat updates. It answers 200 for every accepted
// request so the transport never retries a delivery.
type WebhookHandler struct {
	facade WebhookFacade
	secret string
	logger *slog.Logger
}

// NewWebhookHandler constructs WebhookHandler. An empty secret disables the header check.
func NewWebhookHandler(facade WebhookFacade, secret string, logger *slog.Logger) *WebhookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookHandler{facade: facade, secret: secret, logger: logger}
}

// Receive handles POST /api/telegram/webhook.
func (h *WebhookHandler) Receive(c *gin.Context) {
	if !h.facade.BotEnabled() {
		c.JSON(http.StatusOK, dto.ErrorResponse{Error: "bot inactive"})
		return
	}

	if h.secret != "" {
		got := c.GetHeader(SecretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxUpdateSize))
	if err != nil {
		h.logger.Warn("read update body failed", slog.Any("error", err))
		c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	if err := h.facade.HandleUpdate(ctx, body); err != nil {
		h.logger.Error("handle update failed",
			slog.String("request_id", c.GetString(middleware.RequestIDContextKey)),
			slog.Any("error", err),
		)
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
}

// Status handles GET /api/telegram/webhook.
func (h *WebhookHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "Active"})
}
