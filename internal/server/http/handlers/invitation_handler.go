package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
	"github.com/polkiloo/undangan/internal/domain/model"
	"github.com/polkiloo/undangan/internal/server/http/dto"
)

// InvitationHandler activates invitations for paid orders.
type InvitationHandler struct {
	facade InvitationFacade
}

// NewInvitationHandler constructs InvitationHandler.
func NewInvitationHandler(facade InvitationFacade) *InvitationHandler {
	return &InvitationHandler{facade: facade}
}

// Create handles POST /api/invitations.
func (h *InvitationHandler) Create(c *gin.Context) {
	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "malformed request body")
		return
	}
	reference := strings.TrimSpace(req.OrderID)
	if reference == "" {
		writeError(c, http.StatusBadRequest, "order_id is required")
		return
	}

	inv, err := h.facade.CreateInvitation(c.Request.Context(), CurrentUserID(c), reference, req.ThemeID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrValidation), errors.Is(err, domainErrors.ErrInvalidState):
			writeError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, domainErrors.ErrForbidden):
			writeError(c, http.StatusForbidden, "order belongs to another user")
		case errors.Is(err, domainErrors.ErrOrderNotFound), errors.Is(err, domainErrors.ErrNotFound):
			writeError(c, http.StatusNotFound, "order not found")
		case errors.Is(err, domainErrors.ErrConflict):
			writeError(c, http.StatusConflict, "invitation already exists for this order")
		default:
			_ = c.Error(err)
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toInvitationResponse(*inv, reference))
}

// Check handles POST /api/invitations/check.
func (h *InvitationHandler) Check(c *gin.Context) {
	var req dto.CheckInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "malformed request body")
		return
	}
	reference := strings.TrimSpace(req.OrderID)
	if reference == "" {
		writeError(c, http.StatusBadRequest, "order_id is required")
		return
	}

	inv, err := h.facade.InvitationForOrder(c.Request.Context(), CurrentUserID(c), reference)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrForbidden):
			writeError(c, http.StatusForbidden, "order belongs to another user")
		case errors.Is(err, domainErrors.ErrOrderNotFound):
			writeError(c, http.StatusNotFound, "order not found")
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusOK, dto.CheckInvitationResponse{Exists: false})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	data := toInvitationResponse(*inv, reference)
	c.JSON(http.StatusOK, dto.CheckInvitationResponse{Exists: true, Data: &data})
}

func toInvitationResponse(inv model.Invitation, reference string) dto.InvitationResponse {
	return dto.InvitationResponse{
		ID:         inv.ID,
		OrderID:    reference,
		ThemeID:    inv.ThemeID,
		Status:     string(inv.Status),
		ExpiryDate: inv.ExpiryDate,
		CreatedAt:  inv.CreatedAt,
	}
}
