package controller

import (
	"errors"

	"marketplace-be/internal/pkg/serverutils"
	"marketplace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICronController interface {
	RegisterRoutes(r fiber.Router)
	SettleReturns(ctx *fiber.Ctx) error
}

// cronController exposes the settlement sweep to the external scheduler.
// Authentication is a shared key header rather than a JWT: the caller is a
// machine, not a user.
type cronController struct {
	settlementService service.ISettlementService
	cronKey           string
}

func NewCronController(settlementService service.ISettlementService, cronKey string) ICronController {
	return &cronController{
		settlementService: settlementService,
		cronKey:           cronKey,
	}
}

func (c *cronController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/cron/v1")
	h.Get("settle-returns", c.SettleReturns)
	h.Post("settle-returns", c.SettleReturns)
}

// SettleReturns triggers one sweep. It always answers 200 with a summary so
// the scheduler never retries a structurally fine run; per-item failures are
// inside the summary, and an overlapping run reports zero work.
func (c *cronController) SettleReturns(ctx *fiber.Ctx) error {
	if c.cronKey == "" || ctx.Get("X-Cron-Key") != c.cronKey {
		return serverutils.NewUnauthorized("invalid cron key")
	}

	summary, err := c.settlementService.RunSweep(ctx.Context())
	if err != nil {
		if errors.Is(err, service.ErrSweepInProgress) {
			return ctx.JSON(serverutils.SuccessResponse("Sweep already running", fiber.Map{
				"skipped": true,
			}))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Sweep finished", summary))
}
