package audit

import (
	"stock-manager/core/logger"
	"stock-manager/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for listing audits.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the audit routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/audit")
	group.Get("/", h.HandlePlan)
	group.Post("/apply", h.HandleApply)
}

// HandlePlan audits both listing surfaces without repairing anything.
// @Summary Audit Listings
// @Description Compare the stock ledger against remote listings and plan repairs.
// @Tags audit
// @Produce json
// @Param fix_orphans query bool false "Plan orphan cleanup actions"
// @Param sync_drift query bool false "Plan drift sync actions"
// @Success 200 {object} Report "Audit Report"
// @Failure 502 {object} map[string]string "Remote Unavailable"
// @Router /audit [get]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	opts := reconcile.Options{
		DryRun:     true,
		FixOrphans: c.QueryBool("fix_orphans", true),
		SyncDrift:  c.QueryBool("sync_drift", true),
	}

	report, err := h.service.Plan(c.Context(), opts)
	if err != nil {
		l := logger.WithRayID(h.service.logger, c)
		l.Error("listing audit failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(report)
}

type applyRequest struct {
	FixOrphans bool `json:"fix_orphans"`
	SyncDrift  bool `json:"sync_drift"`
}

// HandleApply audits both listing surfaces and executes the planned repairs.
// @Summary Apply Listing Repairs
// @Description Audit and execute repair actions against the remote listings.
// @Tags audit
// @Accept json
// @Produce json
// @Param input body applyRequest true "Repair selection"
// @Success 200 {object} Report "Audit Report"
// @Failure 502 {object} map[string]string "Remote Unavailable"
// @Router /audit/apply [post]
func (h *Handler) HandleApply(c *fiber.Ctx) error {
	req := applyRequest{FixOrphans: true}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	opts := reconcile.Options{
		FixOrphans: req.FixOrphans,
		SyncDrift:  req.SyncDrift,
	}

	report, err := h.service.Apply(c.Context(), opts)
	if err != nil {
		l := logger.WithRayID(h.service.logger, c)
		l.Error("listing repair failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":  err.Error(),
			"report": report,
		})
	}
	return c.JSON(report)
}
