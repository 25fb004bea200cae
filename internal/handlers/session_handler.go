package handlers

import (
	"errors"
	"fmt"
	"log"

	"codpay/internal/models"
	"codpay/internal/repositories"
	"codpay/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles HTTP requests for checkout sessions.
type SessionHandler struct {
	service  *services.SessionService
	validate *validator.Validate
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(service *services.SessionService) *SessionHandler {
	return &SessionHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the session routes with the Fiber app.
func (h *SessionHandler) RegisterRoutes(router fiber.Router) {
	sessionRoutes := router.Group("/sessions")
	sessionRoutes.Post("/create-checkout-session", h.HandleCreateCheckoutSession)
	sessionRoutes.Get("/:session_id", h.HandleGetSession)
}

// CreateCheckoutSessionRequest represents the request body for checkout.
type CreateCheckoutSessionRequest struct {
	Cart   []models.CartItem `json:"cart" validate:"required,min=1,dive"`
	UserID string            `json:"userId"`
}

// HandleCreateCheckoutSession creates a cash-on-delivery checkout session.
func (h *SessionHandler) HandleCreateCheckoutSession(c *fiber.Ctx) error {
	var req CreateCheckoutSessionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cart and userId are required",
		})
	}

	// The body userId wins; the identity middleware fills the gap for
	// callers that authenticate via header or token instead.
	userID := req.UserID
	if userID == "" {
		userID = CallerID(c)
	}

	if userID == "" || len(req.Cart) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cart and userId are required",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": errorMessages,
		})
	}

	session, err := h.service.CreateSession(userID, req.Cart)
	if err != nil {
		log.Printf("Error creating checkout session: %v", err)
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, services.ErrCatalogUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Catalog is unavailable",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create checkout session",
		})
	}

	return c.JSON(fiber.Map{
		"checkoutSessionClientSecret": "cod_" + session.ID,
		"sessionId":                   session.ID,
		"message":                     "Cash on Delivery order created",
		// Convert back to major units for display.
		"totalAmount": float64(session.AmountTotal) / 100,
	})
}

// HandleGetSession returns the status of a checkout session.
func (h *SessionHandler) HandleGetSession(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")

	session, err := h.service.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":        "not_found",
				"paymentStatus": "unknown",
			})
		}
		log.Printf("Error getting session %s: %v", sessionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve session",
		})
	}

	return c.JSON(fiber.Map{
		"status":        session.Status,
		"paymentStatus": session.PaymentStatus,
		"paymentMethod": session.PaymentMethod,
		"amount_total":  session.AmountTotal,
	})
}
