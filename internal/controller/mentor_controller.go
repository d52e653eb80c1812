package controller

import (
	"placement-mentor-be/internal/dto"
	"placement-mentor-be/internal/pkg/serverutils"
	"placement-mentor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMentorController interface {
	RegisterRoutes(r fiber.Router)
	OpenSession(ctx *fiber.Ctx) error
	ResetSession(ctx *fiber.Ctx) error
	CloseSession(ctx *fiber.Ctx) error
	SubmitQuestion(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
}

type mentorController struct {
	mentorService service.IMentorService
}

func NewMentorController(mentorService service.IMentorService) IMentorController {
	return &mentorController{
		mentorService: mentorService,
	}
}

func (c *mentorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/mentor/v1")
	h.Post("session", c.OpenSession)
	h.Post("session/:id/reset", c.ResetSession)
	h.Delete("session/:id", c.CloseSession)
	h.Post("session/:id/chat", c.SubmitQuestion)
	h.Get("session/:id/history", c.GetHistory)
}

func (c *mentorController) OpenSession(ctx *fiber.Ctx) error {
	var req dto.OpenSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.mentorService.OpenSession(ctx.Context(), req.Slug)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success open mentor session", res))
}

func (c *mentorController) ResetSession(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	var req dto.OpenSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.mentorService.ResetSession(ctx.Context(), sessionId, req.Slug)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reset mentor session", res))
}

func (c *mentorController) CloseSession(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	if err := c.mentorService.CloseSession(ctx.Context(), sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success close mentor session", nil))
}

func (c *mentorController) SubmitQuestion(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	var req dto.SendQuestionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.mentorService.SubmitQuestion(ctx.Context(), sessionId, req.Text)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send question", res))
}

func (c *mentorController) GetHistory(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	res, err := c.mentorService.GetHistory(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session history", res))
}
