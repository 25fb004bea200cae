package handlers

import (
	"errors"
	"log"
	"time"

	"codpay/internal/models"
	"codpay/internal/repositories"
	"codpay/internal/services"

	"github.com/gofiber/fiber/v2"
)

// WebhookHandler handles the confirmation triggers for cash-on-delivery
// sessions. The endpoints do not care who calls them: a payment gateway
// callback, a delivery app, or a manual request all look the same.
type WebhookHandler struct {
	service   *services.ConfirmService
	startedAt time.Time
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(service *services.ConfirmService) *WebhookHandler {
	return &WebhookHandler{
		service:   service,
		startedAt: time.Now(),
	}
}

// RegisterRoutes registers the webhook routes with the Fiber app.
func (h *WebhookHandler) RegisterRoutes(router fiber.Router) {
	webhookRoutes := router.Group("/webhooks")
	webhookRoutes.Get("/", h.HandleStatus)
	webhookRoutes.Post("/cod-confirm", h.HandleCODConfirm)
	webhookRoutes.Post("/cod-cancel", h.HandleCODCancel)
}

// HandleStatus is a liveness ping for the webhook surface.
func (h *WebhookHandler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok webhook",
		"message":   "Cash on Delivery - No webhooks needed",
		"uptime":    time.Since(h.startedAt).Seconds(),
		"timestamp": time.Now().UnixMilli(),
	})
}

// CODConfirmRequest represents the confirmation trigger body. Amount and
// products are accepted for compatibility but the published event uses the
// stored session as the authoritative source.
type CODConfirmRequest struct {
	SessionID string            `json:"sessionId"`
	UserID    string            `json:"userId"`
	Email     string            `json:"email"`
	Amount    int64             `json:"amount"`
	Products  []models.LineItem `json:"products"`
}

// HandleCODConfirm confirms a session and publishes the payment.successful
// event. Retried deliveries of the same confirmation are safe: they return
// the same success without a second publish.
func (h *WebhookHandler) HandleCODConfirm(c *fiber.Ctx) error {
	var req CODConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing COD confirmation body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	userID := req.UserID
	if userID == "" {
		userID = CallerID(c)
	}

	if req.SessionID == "" || userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	session, err := h.service.Confirm(req.SessionID, userID, req.Email)
	if err != nil {
		log.Printf("COD confirmation failed for session %s: %v", req.SessionID, err)
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing required fields",
			})
		case errors.Is(err, repositories.ErrSessionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		case errors.Is(err, services.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Session already failed",
			})
		default:
			// Covers ErrPublishFailed and store errors. On a publish failure
			// the session is already confirmed; the caller may safely retry.
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "COD confirmation failed!",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Cash on Delivery order confirmed",
		"sessionId": session.ID,
	})
}

// CODCancelRequest represents the cancellation trigger body.
type CODCancelRequest struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

// HandleCODCancel moves a session to the failed terminal state, e.g. when a
// delivery is refused. No event is published for failed sessions.
func (h *WebhookHandler) HandleCODCancel(c *fiber.Ctx) error {
	var req CODCancelRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing COD cancellation body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	userID := req.UserID
	if userID == "" {
		userID = CallerID(c)
	}

	if req.SessionID == "" || userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	session, err := h.service.Fail(req.SessionID, userID)
	if err != nil {
		log.Printf("COD cancellation failed for session %s: %v", req.SessionID, err)
		switch {
		case errors.Is(err, repositories.ErrSessionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		case errors.Is(err, services.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Session already confirmed",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "COD cancellation failed",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Cash on Delivery order cancelled",
		"sessionId": session.ID,
	})
}
