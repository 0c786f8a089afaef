package stock

import (
	"context"
	"time"

	"stock-manager/core/apperror"
	"stock-manager/core/market"
	"stock-manager/core/notify"
	"stock-manager/feature/catalog"
	"stock-manager/feature/stock/models"

	"go.uber.org/zap"
)

// CatalogResolver is the read-only reference-data lookup the engine validates
// every stock action against.
type CatalogResolver interface {
	Resolve(ctx context.Context, urlName string, sub *catalog.SubType) (*catalog.ItemDescriptor, error)
	ResolveRivenWeapon(ctx context.Context, urlName string) (*catalog.RivenWeapon, error)
	ResolveAttribute(ctx context.Context, urlName string) (*catalog.AttributeDescriptor, error)
}

// ErrorRecorder receives every failed operation for the durable error log.
type ErrorRecorder interface {
	Record(err error) error
}

// Engine is the stock-to-listing reconciliation engine. For every
// stock-affecting action it mutates the ledger and the transaction log first,
// then brings the trader's remote listing in line with the new ledger state,
// then emits change notifications.
//
// Ordering is strict: remote marketplace calls are issued only after the
// local mutation has committed, so a remote failure never rolls back local
// state. Such failures are reported through Result.Warning — the caller must
// read them as "local state changed, synchronization incomplete", never as
// "nothing happened". Hard errors after a local commit (a failed transaction
// append) are returned as errors alongside a non-nil Result carrying the
// committed entry; the engine never deletes a created entry to undo a later
// failure.
type Engine struct {
	entries  EntryRepository
	txlog    TransactionLog
	resolver CatalogResolver
	market   market.Client
	notifier notify.Notifier
	errs     ErrorRecorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewEngine wires the engine with its collaborators. All dependencies are
// constructed eagerly by the caller; the engine holds no ambient state.
func NewEngine(
	entries EntryRepository,
	txlog TransactionLog,
	resolver CatalogResolver,
	marketClient market.Client,
	notifier notify.Notifier,
	errs ErrorRecorder,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		entries:  entries,
		txlog:    txlog,
		resolver: resolver,
		market:   marketClient,
		notifier: notifier,
		errs:     errs,
		logger:   logger,
		now:      time.Now,
	}
}

// Result is the outcome of a stock action.
type Result struct {
	// Entry is the affected ledger row; for terminal removals it carries the
	// final state of the deleted entry.
	Entry *models.StockEntry `json:"entry,omitempty"`
	// Warning is set when the local mutation committed but remote listing
	// synchronization did not complete.
	Warning string `json:"warning,omitempty"`
}

// CreateItemInput describes a plain-item purchase.
type CreateItemInput struct {
	// URLName is the catalog identifier of the bought item.
	URLName string `json:"url_name"`
	// Quantity is the number of units bought; must be positive.
	Quantity int64 `json:"quantity"`
	// Price is the unit price paid, in platinum.
	Price int64 `json:"price"`
	// SubType is the optional rank/variant discriminator.
	SubType *models.SubType `json:"sub_type,omitempty"`
	// MinimumPrice is an advisory floor forwarded to listings, never enforced.
	MinimumPrice *int64 `json:"minimum_price,omitempty"`
	// Report closes the matching remote buy order: the purchase was already
	// settled through the marketplace's own flow.
	Report bool `json:"report"`
}

// CreateRivenInput describes a manually entered riven acquisition.
type CreateRivenInput struct {
	// WeaponURLName is the catalog identifier of the riven's weapon.
	WeaponURLName string                  `json:"weapon_url_name"`
	ModName       string                  `json:"mod_name"`
	Rank          int64                   `json:"rank"`
	MasteryRank   int64                   `json:"mastery_rank"`
	ReRolls       int64                   `json:"re_rolls"`
	Polarity      string                  `json:"polarity"`
	Attributes    []models.RivenAttribute `json:"attributes"`
	// PurchasePrice is what was paid; zero means "no purchase to record"
	// and skips the transaction append.
	PurchasePrice int64  `json:"purchase_price"`
	MinimumPrice  *int64 `json:"minimum_price,omitempty"`
	IsHidden      bool   `json:"is_hidden"`
}

// SellInput describes a full or partial sale of an entry.
type SellInput struct {
	// Quantity is the number of units sold; rivens only ever sell one.
	Quantity int64 `json:"quantity"`
	// Price is the unit price obtained, in platinum.
	Price int64 `json:"price"`
	// Report closes the remote sell listing instead of adjusting it.
	Report bool `json:"report"`
}

// UpdateInput is a field-level patch of user-editable entry settings.
// Nil fields are left untouched.
type UpdateInput struct {
	MinimumPrice *int64              `json:"minimum_price,omitempty"`
	ListPrice    *int64              `json:"list_price,omitempty"`
	SubType      *models.SubType     `json:"sub_type,omitempty"`
	IsHidden     *bool               `json:"is_hidden,omitempty"`
	Filter       *models.MatchFilter `json:"filter,omitempty"`
}

// CreateItem validates a plain-item purchase against the catalog, inserts the
// ledger entry, appends the purchase transaction, and optionally reports the
// trade to the marketplace.
func (e *Engine) CreateItem(ctx context.Context, in CreateItemInput) (*Result, error) {
	const op = "StockItemCreate"

	if in.Quantity <= 0 {
		return nil, e.fail(apperror.New(op, apperror.KindValidation, "quantity must be positive, got %d", in.Quantity))
	}
	if in.Price < 0 {
		return nil, e.fail(apperror.New(op, apperror.KindValidation, "price must not be negative, got %d", in.Price))
	}

	item, err := e.resolver.Resolve(ctx, in.URLName, toCatalogSubType(in.SubType))
	if err != nil {
		return nil, e.fail(apperror.Wrap(op, apperror.KindOf(err), err))
	}

	entry := &models.StockEntry{
		Kind:         models.KindPlain,
		ItemID:       item.ID,
		URLName:      item.URLName,
		Name:         item.Name,
		UniqueName:   item.UniqueName,
		SubType:      in.SubType,
		Bought:       in.Quantity,
		Owned:        in.Quantity,
		MinimumPrice: in.MinimumPrice,
		IsHidden:     false,
		Status:       models.StatusLive,
	}
	entry.RecordPrice(in.Price, e.now())

	if err := e.entries.Insert(ctx, entry); err != nil {
		return nil, e.fail(apperror.Wrap(op, apperror.KindStorage, err))
	}
	e.notifier.Emit(notify.OperationCreateOrUpdate, notify.EntityStockEntry, entry)

	record := purchaseRecord(entry, models.TransactionItem, in.Quantity, in.Price, nil)
	if err := e.txlog.Append(ctx, record); err != nil {
		// The entry is committed and announced; failing the whole action
		// here surfaces the inconsistency instead of hiding an orphan row.
		return &Result{Entry: entry}, e.fail(apperror.Wrap(op, apperror.KindStorage, err))
	}
	e.notifier.Emit(notify.OperationCreateOrUpdate, notify.EntityTransaction, record)

	result := &Result{Entry: entry}
	if in.Report {
		if err := e.market.CloseOrder(ctx, entry.URLName, market.OrderTypeBuy); err != nil {
			result.Warning = e.warn(op, "closing remote buy order failed", err)
		}
	}
	return result, nil
}

// CreateRiven validates the weapon and every attribute against the catalog,
// inserts the riven entry, and appends the purchase transaction unless the
// purchase price is zero.
func (e *Engine) CreateRiven(ctx context.Context, in CreateRivenInput) (*Result, error) {
	const op = "StockRivenCreate"

	weapon, err := e.resolver.ResolveRivenWeapon(ctx, in.WeaponURLName)
	if err != nil {
		return nil, e.fail(apperror.Wrap(op, apperror.KindOf(err), err))
	}
	for _, attr := range in.Attributes {
		if _, err := e.resolver.ResolveAttribute(ctx, attr.URLName); err != nil {
			return nil, e.fail(apperror.Wrap(op, apperror.KindOf(err), err))
		}
	}

	entry := &models.StockEntry{
		Kind:         models.KindRiven,
		ItemID:       weapon.ID,
		URLName:      weapon.URLName,
		Name:         weapon.Name,
		UniqueName:   weapon.UniqueName,
		Bought:       1,
		Owned:        1,
		MinimumPrice: in.MinimumPrice,
		IsHidden:     in.IsHidden,
		Status:       models.StatusLive,
		Riven: &models.RivenDetail{
			ModName:     in.ModName,
			Rank:        in.Rank,
			MasteryRank: in.MasteryRank,
			ReRolls:     in.ReRolls,
			Polarity:    in.Polarity,
			Attributes:  in.Attributes,
		},
	}
	if in.PurchasePrice > 0 {
		entry.RecordPrice(in.PurchasePrice, e.now())
	}

	if err := e.entries.Insert(ctx, entry); err != nil {
		return nil, e.fail(apperror.Wrap(op, apperror.KindStorage, err))
	}
	e.notifier.Emit(notify.OperationCreateOrUpdate, notify.EntityStockEntry, entry)

	if in.PurchasePrice == 0 {
		return &Result{Entry: entry}, nil
	}

	record := purchaseRecord(entry, models.TransactionRiven, 1, in.PurchasePrice, rivenSnapshot(entry.Riven))
	if err := e.txlog.Append(ctx, record); err != nil {
		return &Result{Entry: entry}, e.fail(apperror.Wrap(op, apperror.KindStorage, err))
	}
	e.notifier.Emit(notify.OperationCreateOrUpdate, notify.EntityTransaction, record)

	return &Result{Entry: entry}, nil
}

// Sell decrements an entry by the sold quantity, appends the sale
// transaction, and reconciles the remote listing with the surviving
// quantity. Selling the last unit removes the entry.
func (e *Engine) Sell(ctx context.Context, id uint64, in SellInput) (*Result, error) {
	const op = "StockEntrySell"

	if in.Quantity <= 0 {
		return nil, e.fail(apperror.New(op, apperror.KindValidation, "quantity must be positive, got %d", in.Quantity))
	}

	entry, err := e.entries.Get(ctx, id)
	if err != nil {
		return nil, e.fail(apperror.Wrap(op, apperror.KindOf(err), err))
	}
	if entry.IsRiven() && in.Quantity != 1 {
		return nil, e.fail(apperror.New(op, apperror.KindValidation, "rivens sell exactly one unit, got %d", in.Quantity))
	}
	if entry.Owned < in.Quantity {
		return nil, e.fail(apperror.New(op, apperror.KindInsufficientQuantity,
			"owned %d, requested %d", entry.Owned, in.Quantity))
	}

	entry.Owned -= in.Quantity
	entry.RecordPrice(in.Price, e.now())

	if entry.Owned == 0 {
		if _, err := e.entries.Delete(ctx, entry.ID); err != nil {
			return nil, e.fail(apperror.Wrap(op, apperror.KindOf(err), err))
		}
		e.notifier.Emit(notify.OperationDelete, notify.EntityStockEntry, map[string]any{"id": entry.ID})
	} else {
		if err := e.entries.Update(ctx, entry); err != nil {
			return nil, e.fail(apperror.Wrap(op, apperror.KindOf(err), err))
		}
		e.notifier.Emit(notify.OperationCreateOrUpdate, notify.EntityStockEntry, entry)
	}

	// The sale is recorded regardless of whether the entry survives.
	record := saleRecord(entry, in.Quantity, in.Price)
	if err := e.txlog.Append(ctx, record); err != nil {
		return &Result{Entry: entry}, e.fail(apperror.Wrap(op, apperror.KindStorage, err))
	}
	e.notifier.Emit(notify.OperationCreateOrUpdate, notify.EntityTransaction, record)

	result := &Result{Entry: entry}
	result.Warning = e.syncListingAfterSell(ctx, op, entry, in.Report)
	return result, nil
}

// Delete removes an entry unconditionally. The remote listing, when one
// exists, is closed best-effort afterwards; its outcome never blocks the
// local delete.
func (e *Engine) Delete(ctx context.Context, id uint64) (*Result, error) {
	const op = "StockEntryDelete"

	entry, err := e.entries.Delete(ctx, id)
	if err != nil {
		return nil, e.fail(apperror.Wrap(op, apperror.KindOf(err), err))
	}
	e.notifier.Emit(notify.OperationDelete, notify.EntityStockEntry, map[string]any{"id": entry.ID})

	result := &Result{Entry: entry}
	result.Warning = e.removeRemoteListing(ctx, op, entry)
	return result, nil
}

// Update applies a field-level patch to one entry. No remote listing
// synchronization happens here; pricing hints are advisory only.
func (e *Engine) Update(ctx context.Context, id uint64, in UpdateInput) (*Result, error) {
	const op = "StockEntryUpdate"

	entry, err := e.entries.Get(ctx, id)
	if err != nil {
		return nil, e.fail(apperror.Wrap(op, apperror.KindOf(err), err))
	}
	applyPatch(entry, in)

	if err := e.entries.Update(ctx, entry); err != nil {
		return nil, e.fail(apperror.Wrap(op, apperror.KindOf(err), err))
	}
	e.notifier.Emit(notify.OperationCreateOrUpdate, notify.EntityStockEntry, entry)

	return &Result{Entry: entry}, nil
}

// ListEntries returns ledger entries matching the filter.
func (e *Engine) ListEntries(ctx context.Context, filter ListFilter) ([]models.StockEntry, error) {
	return e.entries.List(ctx, filter)
}

// ListTransactions returns the audit trail matching the filter.
func (e *Engine) ListTransactions(ctx context.Context, filter TransactionFilter) ([]models.TransactionRecord, error) {
	return e.txlog.List(ctx, filter)
}

// syncListingAfterSell reconciles the remote listing after a sale. With the
// report flag the listing is closed through the marketplace's own flow;
// otherwise the open sell listing is deleted (sold out) or its quantity
// updated. The engine never creates a listing here.
func (e *Engine) syncListingAfterSell(ctx context.Context, op string, entry *models.StockEntry, report bool) string {
	if report {
		if entry.IsRiven() {
			return e.removeRemoteListing(ctx, op, entry)
		}
		if err := e.market.CloseOrder(ctx, entry.URLName, market.OrderTypeSell); err != nil {
			return e.warn(op, "closing remote sell order failed", err)
		}
		return ""
	}

	if entry.IsRiven() {
		if entry.Owned == 0 {
			return e.removeRemoteListing(ctx, op, entry)
		}
		return ""
	}

	orders, err := e.market.MyOrders(ctx)
	if err != nil {
		return e.warn(op, "fetching remote orders failed", err)
	}
	order := orders.FindSell(entry.URLName)
	if order == nil {
		return ""
	}

	if entry.Owned == 0 {
		if _, err := e.market.DeleteOrder(ctx, order.ID); err != nil {
			if apperror.IsKind(err, apperror.KindRemoteGone) {
				e.logger.Info("remote sell order already gone", zap.String("op", op), zap.String("order_id", order.ID))
				return ""
			}
			return e.warn(op, "deleting remote sell order failed", err)
		}
		return ""
	}

	if _, err := e.market.UpdateOrder(ctx, order.ID, order.Platinum, entry.Owned, order.Visible); err != nil {
		return e.warn(op, "updating remote sell order quantity failed", err)
	}
	if entry.RemoteListingID == nil {
		entry.RemoteListingID = &order.ID
		if err := e.entries.Update(ctx, entry); err != nil {
			return e.warn(op, "recording remote listing id failed", err)
		}
	}
	return ""
}

// removeRemoteListing requests deletion of whatever remote listing mirrors
// the entry. An already-absent listing is the desired end state and is
// treated as success.
func (e *Engine) removeRemoteListing(ctx context.Context, op string, entry *models.StockEntry) string {
	if entry.IsRiven() {
		if entry.RemoteListingID == nil {
			return ""
		}
		if _, err := e.market.DeleteAuction(ctx, *entry.RemoteListingID); err != nil {
			if apperror.IsKind(err, apperror.KindRemoteGone) {
				e.logger.Info("remote auction already gone",
					zap.String("op", op), zap.String("auction_id", *entry.RemoteListingID))
				return ""
			}
			return e.warn(op, "deleting remote auction failed", err)
		}
		e.notifier.Emit(notify.OperationDelete, notify.EntityListing, map[string]any{"id": *entry.RemoteListingID})
		return ""
	}

	orders, err := e.market.MyOrders(ctx)
	if err != nil {
		return e.warn(op, "fetching remote orders failed", err)
	}
	order := orders.FindSell(entry.URLName)
	if order == nil {
		return ""
	}
	if _, err := e.market.DeleteOrder(ctx, order.ID); err != nil {
		if apperror.IsKind(err, apperror.KindRemoteGone) {
			e.logger.Info("remote sell order already gone", zap.String("op", op), zap.String("order_id", order.ID))
			return ""
		}
		return e.warn(op, "deleting remote sell order failed", err)
	}
	e.notifier.Emit(notify.OperationDelete, notify.EntityListing, map[string]any{"id": order.ID})
	return ""
}

// fail records the error in the durable error log before returning it.
func (e *Engine) fail(err error) error {
	if err == nil {
		return nil
	}
	if recErr := e.errs.Record(err); recErr != nil {
		e.logger.Error("error log write failed", zap.Error(recErr))
	}
	return err
}

// warn records and logs a post-commit synchronization failure and renders it
// for the caller. The triggering action still succeeds.
func (e *Engine) warn(op, msg string, err error) string {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		kind = apperror.KindRemoteUnavailable
	}
	e.fail(apperror.Wrap(op, kind, err))
	e.logger.Warn(msg, zap.String("op", op), zap.Error(err))
	return msg + ": " + err.Error()
}

func applyPatch(entry *models.StockEntry, in UpdateInput) {
	if in.MinimumPrice != nil {
		entry.MinimumPrice = in.MinimumPrice
	}
	if in.ListPrice != nil {
		entry.ListPrice = in.ListPrice
	}
	if in.SubType != nil {
		entry.SubType = in.SubType
	}
	if in.IsHidden != nil {
		entry.IsHidden = *in.IsHidden
	}
	if in.Filter != nil && entry.Riven != nil {
		entry.Riven.Filter = in.Filter
	}
}

func toCatalogSubType(s *models.SubType) *catalog.SubType {
	if s == nil {
		return nil
	}
	return &catalog.SubType{Rank: s.Rank, Variant: s.Variant}
}

func purchaseRecord(entry *models.StockEntry, kind models.TransactionItemKind, quantity, price int64, extra models.Extra) *models.TransactionRecord {
	return &models.TransactionRecord{
		ItemID:     entry.ItemID,
		URLName:    entry.URLName,
		Name:       entry.Name,
		UniqueName: entry.UniqueName,
		Kind:       kind,
		Direction:  models.DirectionPurchase,
		Quantity:   quantity,
		UnitPrice:  price,
		SubType:    entry.SubType,
		Extra:      extra,
	}
}

func saleRecord(entry *models.StockEntry, quantity, price int64) *models.TransactionRecord {
	kind := models.TransactionItem
	var extra models.Extra
	if entry.IsRiven() {
		kind = models.TransactionRiven
		extra = rivenSnapshot(entry.Riven)
	}
	return &models.TransactionRecord{
		ItemID:     entry.ItemID,
		URLName:    entry.URLName,
		Name:       entry.Name,
		UniqueName: entry.UniqueName,
		Kind:       kind,
		Direction:  models.DirectionSale,
		Quantity:   quantity,
		UnitPrice:  price,
		SubType:    entry.SubType,
		Extra:      extra,
	}
}

// rivenSnapshot freezes the riven's rolled state into a transaction extra.
func rivenSnapshot(detail *models.RivenDetail) models.Extra {
	if detail == nil {
		return nil
	}
	return models.Extra{
		"mod_name":     detail.ModName,
		"rank":         detail.Rank,
		"mastery_rank": detail.MasteryRank,
		"re_rolls":     detail.ReRolls,
		"polarity":     detail.Polarity,
		"attributes":   detail.Attributes,
	}
}
