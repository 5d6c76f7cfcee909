package controller

import (
	"marketplace-be/internal/dto"
	"marketplace-be/internal/pkg/serverutils"
	"marketplace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReturnController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	Index(ctx *fiber.Ctx) error
}

type returnController struct {
	returnService service.IReturnService
}

func NewReturnController(returnService service.IReturnService) IReturnController {
	return &returnController{
		returnService: returnService,
	}
}

func (c *returnController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/return/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Submit)
	h.Get("", c.Index)
}

func (c *returnController) Submit(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.SubmitReturnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.returnService.SubmitReturn(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success submit return request", res))
}

func (c *returnController) Index(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.returnService.GetMyReturns(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get return requests", res))
}
