package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storebot/internal/domain/errors"
	"github.com/polkiloo/storebot/internal/domain/model"
	"github.com/polkiloo/storebot/internal/server/http/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// OrderHandler manages order endpoints of the admin panel.
type OrderHandler struct {
	facade OrderFacade
	logger *slog.Logger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, logger *slog.Logger) *OrderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderHandler{facade: facade, logger: logger}
}

// Complete handles POST /api/admin/complete-order.
func (h *OrderHandler) Complete(c *gin.Context) {
	var req dto.CompleteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID <= 0 {
		abortWithError(c, http.StatusBadRequest, "orderId is required")
		return
	}
	if strings.TrimSpace(req.AccountCredentials) == "" {
		abortWithError(c, http.StatusBadRequest, "accountCredentials is required")
		return
	}

	_, err := h.facade.CompleteOrder(c.Request.Context(), req.OrderID, req.TelegramID, req.AccountCredentials)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			abortWithError(c, http.StatusNotFound, "order not found")
		case errors.Is(err, domainErrors.ErrUserMismatch):
			abortWithError(c, http.StatusBadRequest, "order belongs to another user")
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			abortWithError(c, http.StatusConflict, "order is not awaiting verification")
		default:
			h.logger.Error("complete order failed", slog.Int64("order_id", req.OrderID), slog.Any("error", err))
			abortWithError(c, http.StatusInternalServerError, "complete order failed")
		}
		return
	}

	h.logger.Info("order completed",
		slog.Int64("order_id", req.OrderID),
		slog.String("operator", CurrentOperator(c)),
	)
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// List handles GET /api/admin/orders.
func (h *OrderHandler) List(c *gin.Context) {
	status, ok := statusFilter(c)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "unknown status")
		return
	}

	orders, err := h.facade.Orders(c.Request.Context(), status)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "list orders failed")
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		item := toOrderResponse(o.Order)
		item.Username = o.Username
		item.FullName = o.FullName
		response = append(response, item)
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/admin/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.facade.Order(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "order not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "get order failed")
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Export handles GET /api/admin/orders/export.
func (h *OrderHandler) Export(c *gin.Context) {
	status, ok := statusFilter(c)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "unknown status")
		return
	}

	data, err := h.facade.ExportOrders(c.Request.Context(), status)
	if err != nil {
		h.logger.Error("export orders failed", slog.Any("error", err))
		abortWithError(c, http.StatusInternalServerError, "export failed")
		return
	}

	filename := "orders_" + time.Now().Format("20060102_150405") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Stats handles GET /api/admin/stats.
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.facade.Stats(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "stats failed")
		return
	}
	c.JSON(http.StatusOK, dto.StatsResponse{
		Products:       stats.Products,
		ActiveProducts: stats.ActiveProducts,
		Orders:         stats.Orders,
		Income:         stats.Income,
	})
}

func statusFilter(c *gin.Context) (model.OrderStatus, bool) {
	raw := strings.TrimSpace(c.Query("status"))
	if raw == "" {
		return "", true
	}
	status := model.NormalizeOrderStatus(raw)
	switch status {
	case model.OrderStatusPending, model.OrderStatusVerification, model.OrderStatusCompleted:
		return status, true
	default:
		return "", false
	}
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:              order.ID,
		UserID:          order.UserID,
		ProductID:       order.ProductID,
		ProductName:     order.ProductName,
		VariantName:     order.VariantName,
		TotalPrice:      order.TotalPrice,
		Status:          string(order.Status),
		PaymentProofURL: order.PaymentProofURL,
		AdminNotes:      order.AdminNotes,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}
