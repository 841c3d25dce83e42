package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storebot/internal/domain/errors"
	"github.com/polkiloo/storebot/internal/server/http/dto"
)

// CustomerHandler exposes the conversation log of a chat user.
type CustomerHandler struct {
	facade CustomerFacade
	logger *slog.Logger
}

// NewCustomerHandler constructs CustomerHandler.
func NewCustomerHandler(facade CustomerFacade, logger *slog.Logger) *CustomerHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CustomerHandler{facade: facade, logger: logger}
}

// Messages handles GET /api/admin/users/:id/messages.
func (h *CustomerHandler) Messages(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	messages, err := h.facade.Conversation(c.Request.Context(), userID, limit)
	if errors.Is(err, domainErrors.ErrNotFound) {
		abortWithError(c, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "load conversation failed")
		return
	}

	response := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		response = append(response, dto.MessageResponse{
			ID:        m.ID,
			Direction: string(m.Direction),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

// Send handles POST /api/admin/users/:id/messages.
func (h *CustomerHandler) Send(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		abortWithError(c, http.StatusBadRequest, "text is required")
		return
	}

	if err := h.facade.SendMessage(c.Request.Context(), userID, req.Text); err != nil {
		h.logger.Error("send operator message failed", slog.Int64("user_id", userID), slog.Any("error", err))
		switch {
		case errors.Is(err, domainErrors.ErrBotDisabled):
			abortWithError(c, http.StatusServiceUnavailable, "bot inactive")
		case errors.Is(err, domainErrors.ErrNotificationFailed):
			abortWithError(c, http.StatusBadGateway, "delivery failed")
		default:
			abortWithError(c, http.StatusInternalServerError, "send message failed")
		}
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
