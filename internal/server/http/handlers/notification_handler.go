package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
	"github.com/polkiloo/undangan/internal/domain/model"
	"github.com/polkiloo/undangan/internal/server/http/dto"
)

// NotificationHandler receives asynchronous gateway notifications.
type NotificationHandler struct {
	facade NotificationFacade
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(facade NotificationFacade) *NotificationHandler {
	return &NotificationHandler{facade: facade}
}

// Handle handles POST /api/payments/notification. Authenticated notifications
// that change nothing are still acknowledged with 200 so the gateway stops
// redelivering them.
func (h *NotificationHandler) Handle(c *gin.Context) {
	var n model.Notification
	if err := c.ShouldBindJSON(&n); err != nil {
		writeError(c, http.StatusBadRequest, "malformed notification")
		return
	}
	if n.OrderReference == "" || n.SignatureKey == "" {
		writeError(c, http.StatusBadRequest, "order_id and signature_key are required")
		return
	}

	if err := h.facade.HandleNotification(c.Request.Context(), n); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidSignature):
			writeError(c, http.StatusForbidden, "invalid signature")
		case errors.Is(err, domainErrors.ErrOrderNotFound), errors.Is(err, domainErrors.ErrNotFound):
			writeError(c, http.StatusNotFound, "order not found")
		default:
			_ = c.Error(err)
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
}
