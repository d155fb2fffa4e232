package controller

import (
	"errors"

	"maplemed-support-be/internal/dto"
	"maplemed-support-be/internal/pkg/serverutils"
	"maplemed-support-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISupportController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	ResetSession(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	GetMood(ctx *fiber.Ctx) error
	SuggestExercises(ctx *fiber.Ctx) error
	GetResources(ctx *fiber.Ctx) error
}

type supportController struct {
	service service.ISupportService
}

func NewSupportController(service service.ISupportService) ISupportController {
	return &supportController{service: service}
}

func (c *supportController) RegisterRoutes(r fiber.Router) {
	r.Post("/sessions", c.CreateSession)
	r.Delete("/sessions/:sessionId", c.ResetSession)
	r.Post("/chat", c.SendMessage)
	r.Get("/users/:userId/mood", c.GetMood)
	r.Post("/users/:userId/exercises", c.SuggestExercises)
	r.Get("/resources", c.GetResources)
}

func (c *supportController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateSession(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *supportController) ResetSession(ctx *fiber.Ctx) error {
	if err := c.service.ResetSession(ctx.UserContext(), ctx.Params("sessionId")); err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success reset session", nil))
}

func (c *supportController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.UserContext(), &req)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *supportController) GetMood(ctx *fiber.Ctx) error {
	res, err := c.service.GetMood(ctx.UserContext(), ctx.Params("userId"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get mood summary", res))
}

func (c *supportController) SuggestExercises(ctx *fiber.Ctx) error {
	res, err := c.service.SuggestExercises(ctx.UserContext(), ctx.Params("userId"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success suggest exercises", res))
}

func (c *supportController) GetResources(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get resources", c.service.GetResources(ctx.UserContext())))
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSessionUserMismatch):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	default:
		return err
	}
}
