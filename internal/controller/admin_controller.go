package controller

import (
	"marketplace-be/internal/dto"
	"marketplace-be/internal/pkg/serverutils"
	"marketplace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	ListOrders(ctx *fiber.Ctx) error
	AcceptOrder(ctx *fiber.Ctx) error
	RejectOrder(ctx *fiber.Ctx) error
	OrderTransactions(ctx *fiber.Ctx) error
	OverrideItemStatus(ctx *fiber.Ctx) error
	ListReturns(ctx *fiber.Ctx) error
	DecideReturn(ctx *fiber.Ctx) error
	ProcessRefund(ctx *fiber.Ctx) error
	Sweeps(ctx *fiber.Ctx) error
}

type adminController struct {
	orderService      service.IOrderService
	returnService     service.IReturnService
	refundService     service.IRefundService
	settlementService service.ISettlementService
}

func NewAdminController(
	orderService service.IOrderService,
	returnService service.IReturnService,
	refundService service.IRefundService,
	settlementService service.ISettlementService,
) IAdminController {
	return &adminController{
		orderService:      orderService,
		returnService:     returnService,
		refundService:     refundService,
		settlementService: settlementService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRole("admin"))
	h.Get("orders", c.ListOrders)
	h.Patch("orders/:id/accept", c.AcceptOrder)
	h.Patch("orders/:id/reject", c.RejectOrder)
	h.Get("orders/:id/transactions", c.OrderTransactions)
	h.Patch("order-items/:id/return-status", c.OverrideItemStatus)
	h.Get("returns", c.ListReturns)
	h.Patch("returns/:id", c.DecideReturn)
	h.Post("returns/:id/refund", c.ProcessRefund)
	h.Get("sweeps", c.Sweeps)
}

func (c *adminController) ListOrders(ctx *fiber.Ctx) error {
	res, err := c.orderService.GetAllOrders(ctx.Context(),
		ctx.Query("status"),
		ctx.QueryInt("page", 1),
		ctx.QueryInt("limit", 20),
	)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get orders", res))
}

func (c *adminController) AcceptOrder(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.AdminOrderDecisionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	res, err := c.orderService.AcceptOrder(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Order accepted", res))
}

func (c *adminController) RejectOrder(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.AdminOrderDecisionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	res, err := c.orderService.RejectOrder(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Order rejected", res))
}

func (c *adminController) OrderTransactions(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.refundService.GetOrderTransactions(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get transactions", res))
}

func (c *adminController) OverrideItemStatus(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.AdminReturnStatusOverrideRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.returnService.OverrideItemStatus(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Return status overridden", res))
}

func (c *adminController) ListReturns(ctx *fiber.Ctx) error {
	res, err := c.returnService.GetAllReturns(ctx.Context(), ctx.Query("status"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get return requests", res))
}

func (c *adminController) DecideReturn(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.AdminReturnDecisionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.returnService.DecideReturn(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Return request updated", res))
}

func (c *adminController) ProcessRefund(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.ProcessRefundRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.refundService.ProcessRefund(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Refund processed", res))
}

func (c *adminController) Sweeps(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get sweep history", c.settlementService.RecentSweeps()))
}
