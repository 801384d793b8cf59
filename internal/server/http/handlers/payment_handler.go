package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
	"github.com/polkiloo/undangan/internal/domain/model"
	"github.com/polkiloo/undangan/internal/server/http/dto"
)

// PaymentHandler manages order and payment endpoints.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Create handles POST /api/payments/create.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.PackageID <= 0 {
		writeError(c, http.StatusUnprocessableEntity, "package_id is required")
		return
	}

	order, err := h.facade.CreatePayment(c.Request.Context(), CurrentUserID(c), req.PackageID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrPackageNotFound):
			writeError(c, http.StatusUnprocessableEntity, "package not found")
		case errors.Is(err, domainErrors.ErrGateway):
			writeError(c, http.StatusInternalServerError, "payment gateway unavailable")
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	resp := dto.CreatePaymentResponse{OrderID: order.Reference, Amount: order.Amount}
	if order.SnapToken != nil {
		resp.SnapToken = *order.SnapToken
	}
	if order.RedirectURL != nil {
		resp.RedirectURL = *order.RedirectURL
	}
	c.JSON(http.StatusCreated, resp)
}

// List handles GET /api/payments/orders.
func (h *PaymentHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders, false))
}

// Get handles GET /api/payments/orders/:orderId.
func (h *PaymentHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), c.Param("orderId"))
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order, false))
}

// Cancel handles POST /api/payments/orders/:orderId/cancel.
func (h *PaymentHandler) Cancel(c *gin.Context) {
	order, err := h.facade.CancelOrder(c.Request.Context(), CurrentUserID(c), c.Param("orderId"))
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order, false))
}

// ListAll handles GET /api/orders for administrators.
func (h *PaymentHandler) ListAll(c *gin.Context) {
	orders, err := h.facade.AllOrders(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders, true))
}

func writeOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrOrderNotFound), errors.Is(err, domainErrors.ErrNotFound):
		writeError(c, http.StatusNotFound, "order not found")
	case errors.Is(err, domainErrors.ErrForbidden):
		writeError(c, http.StatusForbidden, "order belongs to another user")
	case errors.Is(err, domainErrors.ErrInvalidState):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toOrderResponses(orders []model.Order, withOwner bool) []dto.OrderResponse {
	resp := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o, withOwner))
	}
	return resp
}

func toOrderResponse(order model.Order, withOwner bool) dto.OrderResponse {
	resp := dto.OrderResponse{
		OrderID:       order.Reference,
		PaymentStatus: string(order.PaymentStatus),
		PaymentMethod: order.PaymentMethod,
		Amount:        order.Amount,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
		Package:       dto.OrderPackage{ID: order.PackageID, Name: order.PackageName},
	}
	if order.PaymentStatus == model.PaymentStatusPending {
		resp.RedirectURL = order.RedirectURL
	}
	if withOwner {
		resp.UserID = order.UserID
	}
	return resp
}
