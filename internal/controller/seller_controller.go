package controller

import (
	"marketplace-be/internal/pkg/serverutils"
	"marketplace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISellerController interface {
	RegisterRoutes(r fiber.Router)
	Earnings(ctx *fiber.Ctx) error
	Balance(ctx *fiber.Ctx) error
}

type sellerController struct {
	sellerService service.ISellerService
}

func NewSellerController(sellerService service.ISellerService) ISellerController {
	return &sellerController{
		sellerService: sellerService,
	}
}

func (c *sellerController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/seller/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRole("seller"))
	h.Get("earnings", c.Earnings)
	h.Get("balance", c.Balance)
}

func (c *sellerController) Earnings(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.sellerService.GetEarnings(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get earnings", res))
}

func (c *sellerController) Balance(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.sellerService.GetBalance(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get balance", res))
}
