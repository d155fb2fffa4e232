package handler

import (
	"context"
	"errors"

	"maplemed-support-be/internal/dto"
	"maplemed-support-be/internal/pkg/logger"
	"maplemed-support-be/internal/pkg/serverutils"
	"maplemed-support-be/internal/service"
	internalWS "maplemed-support-be/internal/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ChatHandler carries support turns over a websocket. Each text frame is
// one user message; each reply is the JSON envelope the REST API returns.
// Every socket lives at most as long as the handler.
type ChatHandler struct {
	service service.ISupportService
	logger  logger.ILogger

	ctx    context.Context
	cancel context.CancelFunc
}

func NewChatHandler(service service.ISupportService, log logger.ILogger) *ChatHandler {
	ctx, cancel := context.WithCancel(context.Background())
	return &ChatHandler{service: service, logger: log, ctx: ctx, cancel: cancel}
}

// Close cancels in-flight turns, closes open sockets and refuses new ones.
func (h *ChatHandler) Close() {
	h.cancel()
}

// Done is closed once Close has been called.
func (h *ChatHandler) Done() <-chan struct{} {
	return h.ctx.Done()
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/chat", h.ServeWs)
}

func (h *ChatHandler) ServeWs(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	userID := c.Query("user_id")
	if sessionID == "" || userID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing session_id or user_id")
	}
	if h.ctx.Err() != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Server is shutting down")
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("ChatHandler", "Starting chat socket", map[string]interface{}{"session_id": sessionID, "user_id": userID})
		internalWS.ServeChat(h.ctx, conn, sessionID, userID, h.Turn(sessionID, userID), h.logger)
		h.logger.Info("ChatHandler", "Chat socket ended", map[string]interface{}{"session_id": sessionID, "user_id": userID})
	})(c)
}

// Turn returns the per-connection frame handler.
func (h *ChatHandler) Turn(sessionID, userID string) internalWS.TurnFunc {
	return func(ctx context.Context, message string) interface{} {
		req := &dto.SendMessageRequest{SessionId: sessionID, UserId: userID, Message: message}
		if err := serverutils.ValidateRequest(req); err != nil {
			return serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid message")
		}

		res, err := h.service.SendMessage(ctx, req)
		if err != nil {
			code := statusFor(err)
			msg := err.Error()
			if code == fiber.StatusInternalServerError {
				h.logger.Error("ChatHandler", "Turn failed", map[string]interface{}{"session_id": sessionID, "error": err.Error()})
				msg = "Internal server error"
			}
			return serverutils.ErrorResponse(code, msg)
		}
		return serverutils.SuccessResponse("Success send message", res)
	}
}

func statusFor(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrSessionUserMismatch):
		return fiber.StatusForbidden
	case errors.As(err, &validationErrs):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
