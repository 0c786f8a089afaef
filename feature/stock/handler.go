package stock

import (
	"stock-manager/core/apperror"
	"stock-manager/core/logger"
	"stock-manager/feature/stock/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the stock ledger.
type Handler struct {
	engine *Engine
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(engine *Engine, logger *zap.Logger) *Handler {
	return &Handler{engine: engine, logger: logger}
}

// RegisterRoutes registers the stock routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/stock")
	group.Get("/", h.HandleListEntries)
	group.Post("/item", h.HandleCreateItem)
	group.Post("/riven", h.HandleCreateRiven)
	group.Post("/import/auction", h.HandleImportAuction)
	group.Post("/bulk/update", h.HandleBulkUpdate)
	group.Post("/bulk/delete", h.HandleBulkDelete)
	group.Post("/:id/sell", h.HandleSell)
	group.Post("/:id/publish", h.HandlePublish)
	group.Patch("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)

	app.Get("/transactions", h.HandleListTransactions)
}

// HandleListEntries returns the stock ledger.
// @Summary List Stock Entries
// @Description List stock ledger entries, optionally filtered by kind.
// @Tags stock
// @Produce json
// @Param kind query string false "Entry kind (plain or riven)"
// @Param include_hidden query bool false "Include hidden entries"
// @Success 200 {array} models.StockEntry "Stock Entries"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /stock [get]
func (h *Handler) HandleListEntries(c *fiber.Ctx) error {
	filter := ListFilter{IncludeHidden: c.QueryBool("include_hidden")}
	if raw := c.Query("kind"); raw != "" {
		kind := models.Kind(raw)
		if kind != models.KindPlain && kind != models.KindRiven {
			return h.renderError(c, apperror.New("StockList", apperror.KindValidation, "unknown kind: %s", raw))
		}
		filter.Kind = &kind
	}

	entries, err := h.engine.ListEntries(c.Context(), filter)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(entries)
}

// HandleListTransactions returns the transaction log.
// @Summary List Transactions
// @Description List the append-only trade record, optionally filtered.
// @Tags transactions
// @Produce json
// @Param direction query string false "Trade direction (purchase or sale)"
// @Param url_name query string false "Item url name"
// @Success 200 {array} models.TransactionRecord "Transactions"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /transactions [get]
func (h *Handler) HandleListTransactions(c *fiber.Ctx) error {
	filter := TransactionFilter{URLName: c.Query("url_name")}
	if raw := c.Query("direction"); raw != "" {
		direction := models.TransactionDirection(raw)
		if direction != models.DirectionPurchase && direction != models.DirectionSale {
			return h.renderError(c, apperror.New("TransactionList", apperror.KindValidation, "unknown direction: %s", raw))
		}
		filter.Direction = &direction
	}

	records, err := h.engine.ListTransactions(c.Context(), filter)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(records)
}

// HandleCreateItem records a plain-item purchase.
// @Summary Create Stock Item
// @Description Record a plain-item purchase into the ledger.
// @Tags stock
// @Accept json
// @Produce json
// @Param input body CreateItemInput true "Purchase"
// @Success 201 {object} Result "Created Entry"
// @Failure 400 {object} map[string]string "Validation Error"
// @Router /stock/item [post]
func (h *Handler) HandleCreateItem(c *fiber.Ctx) error {
	var in CreateItemInput
	if err := c.BodyParser(&in); err != nil {
		return h.renderError(c, apperror.Wrap("StockItemCreate", apperror.KindValidation, err))
	}

	res, err := h.engine.CreateItem(c.Context(), in)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// HandleCreateRiven records a riven acquisition.
// @Summary Create Riven Entry
// @Description Record a riven acquisition into the ledger.
// @Tags stock
// @Accept json
// @Produce json
// @Param input body CreateRivenInput true "Riven"
// @Success 201 {object} Result "Created Entry"
// @Failure 400 {object} map[string]string "Validation Error"
// @Router /stock/riven [post]
func (h *Handler) HandleCreateRiven(c *fiber.Ctx) error {
	var in CreateRivenInput
	if err := c.BodyParser(&in); err != nil {
		return h.renderError(c, apperror.Wrap("StockRivenCreate", apperror.KindValidation, err))
	}

	res, err := h.engine.CreateRiven(c.Context(), in)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// HandleSell sells units of an entry.
// @Summary Sell Stock Entry
// @Description Sell units of a ledger entry and reconcile the remote listing.
// @Tags stock
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param input body SellInput true "Sale"
// @Success 200 {object} Result "Sale Result"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Insufficient Quantity"
// @Router /stock/{id}/sell [post]
func (h *Handler) HandleSell(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return h.renderError(c, apperror.New("StockEntrySell", apperror.KindValidation, "invalid entry id"))
	}
	var in SellInput
	if err := c.BodyParser(&in); err != nil {
		return h.renderError(c, apperror.Wrap("StockEntrySell", apperror.KindValidation, err))
	}

	res, err := h.engine.Sell(c.Context(), uint64(id), in)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(res)
}

// HandlePublish lists an entry on the marketplace.
// @Summary Publish Stock Entry
// @Description Create a remote sell order mirroring a plain entry.
// @Tags stock
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param input body PublishInput true "Listing"
// @Success 200 {object} Result "Publish Result"
// @Failure 400 {object} map[string]string "Validation Error"
// @Router /stock/{id}/publish [post]
func (h *Handler) HandlePublish(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return h.renderError(c, apperror.New("StockEntryPublish", apperror.KindValidation, "invalid entry id"))
	}
	var in PublishInput
	if err := c.BodyParser(&in); err != nil {
		return h.renderError(c, apperror.Wrap("StockEntryPublish", apperror.KindValidation, err))
	}

	res, err := h.engine.Publish(c.Context(), uint64(id), in)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(res)
}

// HandleUpdate patches an entry's user-editable settings.
// @Summary Update Stock Entry
// @Description Patch minimum price, list price, sub-type or visibility.
// @Tags stock
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param input body UpdateInput true "Patch"
// @Success 200 {object} Result "Updated Entry"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /stock/{id} [patch]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return h.renderError(c, apperror.New("StockEntryUpdate", apperror.KindValidation, "invalid entry id"))
	}
	var in UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return h.renderError(c, apperror.Wrap("StockEntryUpdate", apperror.KindValidation, err))
	}

	res, err := h.engine.Update(c.Context(), uint64(id), in)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(res)
}

// HandleDelete removes an entry.
// @Summary Delete Stock Entry
// @Description Remove a ledger entry and close its remote listing.
// @Tags stock
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} Result "Deleted Entry"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /stock/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return h.renderError(c, apperror.New("StockEntryDelete", apperror.KindValidation, "invalid entry id"))
	}

	res, err := h.engine.Delete(c.Context(), uint64(id))
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(res)
}

type bulkUpdateRequest struct {
	IDs   []uint64    `json:"ids"`
	Patch UpdateInput `json:"patch"`
}

// HandleBulkUpdate patches many entries in one sweep.
// @Summary Bulk Update Stock Entries
// @Description Apply the same patch to several entries; stops at the first failure.
// @Tags stock
// @Accept json
// @Produce json
// @Param input body bulkUpdateRequest true "Bulk Patch"
// @Success 200 {object} BulkResult "Bulk Result"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /stock/bulk/update [post]
func (h *Handler) HandleBulkUpdate(c *fiber.Ctx) error {
	var req bulkUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return h.renderError(c, apperror.Wrap("StockBulkUpdate", apperror.KindValidation, err))
	}
	if len(req.IDs) == 0 {
		return h.renderError(c, apperror.New("StockBulkUpdate", apperror.KindValidation, "ids must not be empty"))
	}

	res, err := h.engine.BulkUpdate(c.Context(), req.IDs, req.Patch)
	if err != nil {
		// Partial progress is part of the answer even when the sweep failed.
		return h.renderErrorWith(c, err, fiber.Map{"applied": res.Applied})
	}
	return c.JSON(res)
}

type bulkDeleteRequest struct {
	IDs []uint64 `json:"ids"`
}

// HandleBulkDelete removes many entries in one sweep.
// @Summary Bulk Delete Stock Entries
// @Description Remove several entries; stops at the first failure.
// @Tags stock
// @Accept json
// @Produce json
// @Param input body bulkDeleteRequest true "Bulk Delete"
// @Success 200 {object} BulkResult "Bulk Result"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /stock/bulk/delete [post]
func (h *Handler) HandleBulkDelete(c *fiber.Ctx) error {
	var req bulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return h.renderError(c, apperror.Wrap("StockBulkDelete", apperror.KindValidation, err))
	}
	if len(req.IDs) == 0 {
		return h.renderError(c, apperror.New("StockBulkDelete", apperror.KindValidation, "ids must not be empty"))
	}

	res, err := h.engine.BulkDelete(c.Context(), req.IDs)
	if err != nil {
		return h.renderErrorWith(c, err, fiber.Map{"applied": res.Applied})
	}
	return c.JSON(res)
}

// HandleImportAuction mirrors one remote auction into the ledger.
// @Summary Import Auction
// @Description Pull one of the trader's open remote auctions into the ledger.
// @Tags stock
// @Accept json
// @Produce json
// @Param input body ImportAuctionInput true "Import"
// @Success 201 {object} Result "Imported Entry"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /stock/import/auction [post]
func (h *Handler) HandleImportAuction(c *fiber.Ctx) error {
	var in ImportAuctionInput
	if err := c.BodyParser(&in); err != nil {
		return h.renderError(c, apperror.Wrap("StockAuctionImport", apperror.KindValidation, err))
	}
	if in.AuctionID == "" {
		return h.renderError(c, apperror.New("StockAuctionImport", apperror.KindValidation, "auction_id must not be empty"))
	}

	res, err := h.engine.ImportAuction(c.Context(), in)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *Handler) renderError(c *fiber.Ctx, err error) error {
	return h.renderErrorWith(c, err, nil)
}

func (h *Handler) renderErrorWith(c *fiber.Ctx, err error, extra fiber.Map) error {
	l := logger.WithRayID(h.logger, c)
	l.Error("stock request failed", zap.Error(err))

	body := fiber.Map{
		"error": err.Error(),
		"kind":  apperror.KindOf(err),
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(statusFor(err)).JSON(body)
}

func statusFor(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindInsufficientQuantity:
		return fiber.StatusConflict
	case apperror.KindRemoteUnavailable, apperror.KindRemoteGone:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
