package audit

import (
	"context"
	"fmt"

	"stock-manager/core/apperror"
	"stock-manager/core/market"
	"stock-manager/core/reconcile"
	"stock-manager/feature/stock"
	"stock-manager/feature/stock/models"
)

// ordersAdapter audits plain-item ledger entries against the trader's open
// sell orders. Entities are keyed by item url name: the marketplace allows at
// most one open sell order per item, and the engine keeps at most one ledger
// entry listed per item.
type ordersAdapter struct {
	entries stock.EntryRepository
	market  market.Client
}

func (a *ordersAdapter) Name() string {
	return "orders"
}

func (a *ordersAdapter) LoadLedgerIndex(ctx context.Context) (map[string]reconcile.LedgerItem, error) {
	kind := models.KindPlain
	entries, err := a.entries.List(ctx, stock.ListFilter{Kind: &kind, IncludeHidden: true})
	if err != nil {
		return nil, err
	}

	index := make(map[string]reconcile.LedgerItem, len(entries))
	for i := range entries {
		// Only entries that claim a remote listing participate; unlisted
		// stock legitimately has no order.
		if entries[i].RemoteListingID != nil {
			index[entries[i].URLName] = &entries[i]
		}
	}
	return index, nil
}

func (a *ordersAdapter) LoadRemoteIndex(ctx context.Context) (map[string]reconcile.RemoteItem, error) {
	orders, err := a.market.MyOrders(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]reconcile.RemoteItem, len(orders.SellOrders))
	for i := range orders.SellOrders {
		order := &orders.SellOrders[i]
		if order.Item != nil {
			index[order.Item.URLName] = order
		}
	}
	return index, nil
}

func (a *ordersAdapter) ResolveName(ledger reconcile.LedgerItem, remote reconcile.RemoteItem) string {
	if entry, ok := ledger.(*models.StockEntry); ok {
		return entry.Name
	}
	if order, ok := remote.(*market.Order); ok && order.Item != nil {
		return order.Item.Name
	}
	return ""
}

func (a *ordersAdapter) CompareFields(ledger reconcile.LedgerItem, remote reconcile.RemoteItem) []string {
	entry := ledger.(*models.StockEntry)
	order := remote.(*market.Order)

	mismatch := []string{}
	if entry.Owned != order.Quantity {
		mismatch = append(mismatch, fmt.Sprintf("quantity: ledger=%d remote=%d", entry.Owned, order.Quantity))
	}
	if entry.ListPrice != nil && *entry.ListPrice != order.Platinum {
		mismatch = append(mismatch, fmt.Sprintf("platinum: ledger=%d remote=%d", *entry.ListPrice, order.Platinum))
	}
	if entry.IsHidden == order.Visible {
		mismatch = append(mismatch, fmt.Sprintf("visible: ledger=%t remote=%t", !entry.IsHidden, order.Visible))
	}
	return mismatch
}

func (a *ordersAdapter) GetMetadata(ledger reconcile.LedgerItem, remote reconcile.RemoteItem) map[string]string {
	meta := map[string]string{"surface": "orders"}
	if entry, ok := ledger.(*models.StockEntry); ok {
		meta["entry_id"] = fmt.Sprintf("%d", entry.ID)
	}
	if order, ok := remote.(*market.Order); ok {
		meta["order_id"] = order.ID
	}
	return meta
}

func (a *ordersAdapter) DeleteRemote(ctx context.Context, key string) error {
	orders, err := a.market.MyOrders(ctx)
	if err != nil {
		return err
	}
	order := orders.FindSell(key)
	if order == nil {
		return nil
	}
	if _, err := a.market.DeleteOrder(ctx, order.ID); err != nil {
		if apperror.IsKind(err, apperror.KindRemoteGone) {
			return nil
		}
		return err
	}
	return nil
}

func (a *ordersAdapter) UnlinkLedger(ctx context.Context, key string) error {
	entry, err := a.findEntryByURLName(ctx, key)
	if err != nil || entry == nil {
		return err
	}
	entry.RemoteListingID = nil
	return a.entries.Update(ctx, entry)
}

func (a *ordersAdapter) SyncRemote(ctx context.Context, key string, ledger reconcile.LedgerItem) error {
	entry, ok := ledger.(*models.StockEntry)
	if !ok {
		return fmt.Errorf("unexpected ledger item for %s", key)
	}

	orders, err := a.market.MyOrders(ctx)
	if err != nil {
		return err
	}
	order := orders.FindSell(key)
	if order == nil {
		return nil
	}

	platinum := order.Platinum
	if entry.ListPrice != nil {
		platinum = *entry.ListPrice
	}
	_, err = a.market.UpdateOrder(ctx, order.ID, platinum, entry.Owned, !entry.IsHidden)
	return err
}

func (a *ordersAdapter) findEntryByURLName(ctx context.Context, urlName string) (*models.StockEntry, error) {
	kind := models.KindPlain
	entries, err := a.entries.List(ctx, stock.ListFilter{Kind: &kind, IncludeHidden: true})
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].URLName == urlName {
			return &entries[i], nil
		}
	}
	return nil, nil
}

// auctionsAdapter audits riven ledger entries against the trader's open
// auctions, keyed by the remote auction id.
type auctionsAdapter struct {
	entries stock.EntryRepository
	market  market.Client
}

func (a *auctionsAdapter) Name() string {
	return "auctions"
}

func (a *auctionsAdapter) LoadLedgerIndex(ctx context.Context) (map[string]reconcile.LedgerItem, error) {
	kind := models.KindRiven
	entries, err := a.entries.List(ctx, stock.ListFilter{Kind: &kind, IncludeHidden: true})
	if err != nil {
		return nil, err
	}

	index := make(map[string]reconcile.LedgerItem)
	for i := range entries {
		if entries[i].RemoteListingID != nil {
			index[*entries[i].RemoteListingID] = &entries[i]
		}
	}
	return index, nil
}

func (a *auctionsAdapter) LoadRemoteIndex(ctx context.Context) (map[string]reconcile.RemoteItem, error) {
	auctions, err := a.market.MyAuctions(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]reconcile.RemoteItem, len(auctions))
	for i := range auctions {
		if auctions[i].Closed {
			continue
		}
		index[auctions[i].ID] = &auctions[i]
	}
	return index, nil
}

func (a *auctionsAdapter) ResolveName(ledger reconcile.LedgerItem, remote reconcile.RemoteItem) string {
	if entry, ok := ledger.(*models.StockEntry); ok {
		if entry.Riven != nil {
			return entry.Name + " " + entry.Riven.ModName
		}
		return entry.Name
	}
	if auction, ok := remote.(*market.Auction); ok {
		return auction.Item.WeaponURLName + " " + auction.Item.Name
	}
	return ""
}

func (a *auctionsAdapter) CompareFields(ledger reconcile.LedgerItem, remote reconcile.RemoteItem) []string {
	entry := ledger.(*models.StockEntry)
	auction := remote.(*market.Auction)

	mismatch := []string{}
	if entry.ListPrice != nil && *entry.ListPrice != auction.StartingPrice {
		mismatch = append(mismatch, fmt.Sprintf("starting_price: ledger=%d remote=%d", *entry.ListPrice, auction.StartingPrice))
	}
	if entry.Riven != nil && entry.Riven.ReRolls != auction.Item.ReRolls {
		mismatch = append(mismatch, fmt.Sprintf("re_rolls: ledger=%d remote=%d", entry.Riven.ReRolls, auction.Item.ReRolls))
	}
	return mismatch
}

func (a *auctionsAdapter) GetMetadata(ledger reconcile.LedgerItem, remote reconcile.RemoteItem) map[string]string {
	meta := map[string]string{"surface": "auctions"}
	if entry, ok := ledger.(*models.StockEntry); ok {
		meta["entry_id"] = fmt.Sprintf("%d", entry.ID)
	}
	return meta
}

func (a *auctionsAdapter) DeleteRemote(ctx context.Context, key string) error {
	if _, err := a.market.DeleteAuction(ctx, key); err != nil {
		if apperror.IsKind(err, apperror.KindRemoteGone) {
			return nil
		}
		return err
	}
	return nil
}

func (a *auctionsAdapter) UnlinkLedger(ctx context.Context, key string) error {
	kind := models.KindRiven
	entries, err := a.entries.List(ctx, stock.ListFilter{Kind: &kind, IncludeHidden: true})
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].RemoteListingID != nil && *entries[i].RemoteListingID == key {
			entries[i].RemoteListingID = nil
			return a.entries.Update(ctx, &entries[i])
		}
	}
	return nil
}

func (a *auctionsAdapter) SyncRemote(ctx context.Context, key string, ledger reconcile.LedgerItem) error {
	// The marketplace has no auction update call; drifted auctions are
	// reported but repaired by hand.
	return fmt.Errorf("auction %s cannot be synced remotely", key)
}
