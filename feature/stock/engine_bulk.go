package stock

import (
	"context"

	"stock-manager/core/apperror"
	"stock-manager/core/market"
	"stock-manager/core/notify"
	"stock-manager/feature/stock/models"
)

// BulkResult reports how far a sequential bulk action progressed.
type BulkResult struct {
	// Applied counts the entries mutated before the action stopped.
	Applied int `json:"applied"`
	// Warnings collects per-entry remote synchronization failures.
	Warnings []string `json:"warnings,omitempty"`
}

// BulkUpdate applies the same patch to every listed entry, in order. The
// action stops at the first failure; entries already patched stay patched.
// The caller learns how far it got through BulkResult.Applied.
func (e *Engine) BulkUpdate(ctx context.Context, ids []uint64, in UpdateInput) (*BulkResult, error) {
	result := &BulkResult{}
	for _, id := range ids {
		if _, err := e.Update(ctx, id, in); err != nil {
			return result, err
		}
		result.Applied++
	}
	return result, nil
}

// BulkDelete removes every listed entry, in order, stopping at the first
// failure. Remote listing cleanup failures per entry are collected as
// warnings and do not stop the sweep.
func (e *Engine) BulkDelete(ctx context.Context, ids []uint64) (*BulkResult, error) {
	result := &BulkResult{}
	for _, id := range ids {
		res, err := e.Delete(ctx, id)
		if err != nil {
			return result, err
		}
		result.Applied++
		if res.Warning != "" {
			result.Warnings = append(result.Warnings, res.Warning)
		}
	}
	return result, nil
}

// ImportAuctionInput describes pulling one of the trader's own remote
// auctions into the ledger.
type ImportAuctionInput struct {
	// AuctionID is the remote auction to import.
	AuctionID string `json:"auction_id"`
	// Bought is what was originally paid for the riven; zero means unknown
	// and skips the purchase transaction.
	Bought int64 `json:"bought"`
}

// ImportAuction mirrors one of the trader's open remote auctions into the
// ledger as a riven entry. The auction list is fetched fresh so a stale
// snapshot can never import a closed auction.
func (e *Engine) ImportAuction(ctx context.Context, in ImportAuctionInput) (*Result, error) {
	const op = "StockAuctionImport"

	auctions, err := e.market.MyAuctions(ctx)
	if err != nil {
		return nil, e.fail(apperror.Wrap(op, apperror.KindOf(err), err))
	}
	var auction *market.Auction
	for i := range auctions {
		// Closed auctions still show up in the listing until the remote
		// prunes them; they are dead listings, not importable stock.
		if auctions[i].ID == in.AuctionID && !auctions[i].Closed {
			auction = &auctions[i]
			break
		}
	}
	if auction == nil {
		return nil, e.fail(apperror.New(op, apperror.KindNotFound, "auction not found: %s", in.AuctionID))
	}

	weapon, err := e.resolver.ResolveRivenWeapon(ctx, auction.Item.WeaponURLName)
	if err != nil {
		return nil, e.fail(apperror.Wrap(op, apperror.KindOf(err), err))
	}

	attrs := make([]models.RivenAttribute, 0, len(auction.Item.Attributes))
	for _, a := range auction.Item.Attributes {
		if _, err := e.resolver.ResolveAttribute(ctx, a.URLName); err != nil {
			return nil, e.fail(apperror.Wrap(op, apperror.KindOf(err), err))
		}
		attrs = append(attrs, models.RivenAttribute{
			URLName:  a.URLName,
			Positive: a.Positive,
			Value:    a.Value,
		})
	}

	listPrice := auction.StartingPrice
	entry := &models.StockEntry{
		Kind:            models.KindRiven,
		ItemID:          weapon.ID,
		URLName:         weapon.URLName,
		Name:            weapon.Name,
		UniqueName:      weapon.UniqueName,
		Bought:          1,
		Owned:           1,
		ListPrice:       &listPrice,
		Status:          models.StatusLive,
		RemoteListingID: &auction.ID,
		Riven: &models.RivenDetail{
			ModName:     auction.Item.Name,
			Rank:        auction.Item.ModRank,
			MasteryRank: auction.Item.MasteryLevel,
			ReRolls:     auction.Item.ReRolls,
			Polarity:    auction.Item.Polarity,
			Attributes:  attrs,
		},
	}
	if in.Bought > 0 {
		entry.RecordPrice(in.Bought, e.now())
	}

	if err := e.entries.Insert(ctx, entry); err != nil {
		return nil, e.fail(apperror.Wrap(op, apperror.KindStorage, err))
	}
	e.notifier.Emit(notify.OperationCreateOrUpdate, notify.EntityStockEntry, entry)

	if in.Bought == 0 {
		return &Result{Entry: entry}, nil
	}

	record := purchaseRecord(entry, models.TransactionRiven, 1, in.Bought, rivenSnapshot(entry.Riven))
	if err := e.txlog.Append(ctx, record); err != nil {
		return &Result{Entry: entry}, e.fail(apperror.Wrap(op, apperror.KindStorage, err))
	}
	e.notifier.Emit(notify.OperationCreateOrUpdate, notify.EntityTransaction, record)

	return &Result{Entry: entry}, nil
}

// PublishInput sets the listing price for a new remote sell order.
type PublishInput struct {
	// Platinum is the asking price per unit.
	Platinum int64 `json:"platinum"`
}

// Publish creates a remote sell order mirroring a plain entry and records the
// listing id. Riven entries trade as auctions and cannot be published here.
func (e *Engine) Publish(ctx context.Context, id uint64, in PublishInput) (*Result, error) {
	const op = "StockEntryPublish"

	if in.Platinum <= 0 {
		return nil, e.fail(apperror.New(op, apperror.KindValidation, "platinum must be positive, got %d", in.Platinum))
	}

	entry, err := e.entries.Get(ctx, id)
	if err != nil {
		return nil, e.fail(apperror.Wrap(op, apperror.KindOf(err), err))
	}
	if entry.IsRiven() {
		return nil, e.fail(apperror.New(op, apperror.KindValidation, "riven entries trade as auctions, not orders"))
	}
	if entry.Owned <= 0 {
		return nil, e.fail(apperror.New(op, apperror.KindInsufficientQuantity, "nothing owned to list"))
	}

	spec := market.OrderSpec{
		ItemID:   entry.ItemID,
		Platinum: in.Platinum,
		Quantity: entry.Owned,
		Visible:  !entry.IsHidden,
		Type:     market.OrderTypeSell,
	}
	if entry.SubType != nil && entry.SubType.Rank != nil {
		spec.Rank = entry.SubType.Rank
	}

	order, err := e.market.CreateOrder(ctx, spec)
	if err != nil {
		return nil, e.fail(apperror.Wrap(op, apperror.KindOf(err), err))
	}
	e.notifier.Emit(notify.OperationCreateOrUpdate, notify.EntityListing, order)

	entry.ListPrice = &in.Platinum
	entry.RemoteListingID = &order.ID
	entry.Status = models.StatusLive

	result := &Result{Entry: entry}
	if err := e.entries.Update(ctx, entry); err != nil {
		// The remote order exists either way; surface the bookkeeping gap
		// instead of failing what the marketplace already accepted.
		result.Warning = e.warn(op, "recording remote listing id failed", err)
	}
	e.notifier.Emit(notify.OperationCreateOrUpdate, notify.EntityStockEntry, entry)
	return result, nil
}
