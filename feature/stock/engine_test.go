package stock_test

import (
	"context"
	"errors"
	"testing"

	"stock-manager/core/apperror"
	"stock-manager/core/market"
	marketmocks "stock-manager/core/market/mocks"
	"stock-manager/core/notify"
	notifymocks "stock-manager/core/notify/mocks"
	"stock-manager/feature/catalog"
	"stock-manager/feature/stock"
	"stock-manager/feature/stock/mocks"
	"stock-manager/feature/stock/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorderStub struct {
	recorded []error
}

func (r *recorderStub) Record(err error) error {
	r.recorded = append(r.recorded, err)
	return nil
}

type fixture struct {
	entries  *mocks.EntryRepository
	txlog    *mocks.TransactionLog
	resolver *mocks.CatalogResolver
	market   *marketmocks.Client
	notifier *notifymocks.Notifier
	recorder *recorderStub
	engine   *stock.Engine
}

func newFixture() *fixture {
	f := &fixture{
		entries:  new(mocks.EntryRepository),
		txlog:    new(mocks.TransactionLog),
		resolver: new(mocks.CatalogResolver),
		market:   new(marketmocks.Client),
		notifier: new(notifymocks.Notifier),
		recorder: &recorderStub{},
	}
	f.engine = stock.NewEngine(f.entries, f.txlog, f.resolver, f.market, f.notifier, f.recorder, zap.NewNop())
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.entries.AssertExpectations(t)
	f.txlog.AssertExpectations(t)
	f.resolver.AssertExpectations(t)
	f.market.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func (f *fixture) allowNotifications() {
	f.notifier.On("Emit", mock.Anything, mock.Anything, mock.Anything).Maybe()
}

func lithDescriptor() *catalog.ItemDescriptor {
	return &catalog.ItemDescriptor{
		ID:         "54a74454e779892d5e5155d5",
		URLName:    "lith_g1_relic",
		Name:       "Lith G1 Relic",
		UniqueName: "/Lotus/Types/Game/Projections/T1VoidProjection",
	}
}

func TestCreateItemRecordsEntryAndPurchase(t *testing.T) {
	f := newFixture()
	f.allowNotifications()

	f.resolver.On("Resolve", mock.Anything, "lith_g1_relic", (*catalog.SubType)(nil)).
		Return(lithDescriptor(), nil)
	f.entries.On("Insert", mock.Anything, mock.MatchedBy(func(e *models.StockEntry) bool {
		return e.Kind == models.KindPlain &&
			e.URLName == "lith_g1_relic" &&
			e.Owned == 3 && e.Bought == 3 &&
			len(e.PriceHistory) == 1 && e.PriceHistory[0].Price == 10
	})).Return(nil)
	f.txlog.On("Append", mock.Anything, mock.MatchedBy(func(r *models.TransactionRecord) bool {
		return r.Direction == models.DirectionPurchase &&
			r.Kind == models.TransactionItem &&
			r.Quantity == 3 && r.UnitPrice == 10
	})).Return(nil)

	res, err := f.engine.CreateItem(context.Background(), stock.CreateItemInput{
		URLName:  "lith_g1_relic",
		Quantity: 3,
		Price:    10,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Entry)
	assert.Empty(t, res.Warning)
	f.assertExpectations(t)
}

func TestCreateItemRejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture()

	_, err := f.engine.CreateItem(context.Background(), stock.CreateItemInput{
		URLName:  "lith_g1_relic",
		Quantity: 0,
		Price:    10,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	// Validation failures reach the durable error log too.
	assert.Len(t, f.recorder.recorded, 1)
	f.entries.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateItemReportClosesBuyOrder(t *testing.T) {
	f := newFixture()
	f.allowNotifications()

	f.resolver.On("Resolve", mock.Anything, "lith_g1_relic", (*catalog.SubType)(nil)).
		Return(lithDescriptor(), nil)
	f.entries.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.txlog.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.market.On("CloseOrder", mock.Anything, "lith_g1_relic", market.OrderTypeBuy).Return(nil)

	res, err := f.engine.CreateItem(context.Background(), stock.CreateItemInput{
		URLName:  "lith_g1_relic",
		Quantity: 1,
		Price:    8,
		Report:   true,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Warning)
	f.assertExpectations(t)
}

func TestCreateItemRemoteFailureIsWarningNotError(t *testing.T) {
	f := newFixture()
	f.allowNotifications()

	f.resolver.On("Resolve", mock.Anything, "lith_g1_relic", (*catalog.SubType)(nil)).
		Return(lithDescriptor(), nil)
	f.entries.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.txlog.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.market.On("CloseOrder", mock.Anything, "lith_g1_relic", market.OrderTypeBuy).
		Return(apperror.New("MarketCloseOrder", apperror.KindRemoteUnavailable, "remote returned 503"))

	res, err := f.engine.CreateItem(context.Background(), stock.CreateItemInput{
		URLName:  "lith_g1_relic",
		Quantity: 1,
		Price:    8,
		Report:   true,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Entry)
	assert.NotEmpty(t, res.Warning)
	assert.NotEmpty(t, f.recorder.recorded)
}

func TestSellPartialUpdatesRemoteQuantity(t *testing.T) {
	f := newFixture()
	f.allowNotifications()

	listingID := "order-1"
	f.entries.On("Get", mock.Anything, uint64(7)).Return(&models.StockEntry{
		ID: 7, Kind: models.KindPlain, URLName: "lith_g1_relic",
		Owned: 5, Bought: 5, RemoteListingID: &listingID,
	}, nil)
	f.entries.On("Update", mock.Anything, mock.MatchedBy(func(e *models.StockEntry) bool {
		return e.Owned == 3
	})).Return(nil)
	f.txlog.On("Append", mock.Anything, mock.MatchedBy(func(r *models.TransactionRecord) bool {
		return r.Direction == models.DirectionSale && r.Quantity == 2 && r.UnitPrice == 12
	})).Return(nil)
	f.market.On("MyOrders", mock.Anything).Return(&market.Orders{
		SellOrders: []market.Order{{
			ID: "order-1", Platinum: 12, Quantity: 5, Visible: true,
			Type: market.OrderTypeSell,
			Item: &market.OrderItem{URLName: "lith_g1_relic"},
		}},
	}, nil)
	f.market.On("UpdateOrder", mock.Anything, "order-1", int64(12), int64(3), true).
		Return(&market.Order{ID: "order-1", Quantity: 3}, nil)

	res, err := f.engine.Sell(context.Background(), 7, stock.SellInput{Quantity: 2, Price: 12})
	require.NoError(t, err)
	assert.Empty(t, res.Warning)
	assert.Equal(t, int64(3), res.Entry.Owned)
	f.assertExpectations(t)
}

func TestSellLastUnitDeletesEntryAndOrder(t *testing.T) {
	f := newFixture()

	f.entries.On("Get", mock.Anything, uint64(7)).Return(&models.StockEntry{
		ID: 7, Kind: models.KindPlain, URLName: "lith_g1_relic", Owned: 2, Bought: 2,
	}, nil)
	f.entries.On("Delete", mock.Anything, uint64(7)).
		Return(&models.StockEntry{ID: 7, Kind: models.KindPlain, URLName: "lith_g1_relic"}, nil)
	f.txlog.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.market.On("MyOrders", mock.Anything).Return(&market.Orders{
		SellOrders: []market.Order{{
			ID: "order-1", Type: market.OrderTypeSell,
			Item: &market.OrderItem{URLName: "lith_g1_relic"},
		}},
	}, nil)
	f.market.On("DeleteOrder", mock.Anything, "order-1").Return(&market.Order{ID: "order-1"}, nil)

	// Exactly one ledger delete event, alongside the transaction event.
	f.notifier.On("Emit", notify.OperationDelete, notify.EntityStockEntry, mock.Anything).Once()
	f.notifier.On("Emit", notify.OperationCreateOrUpdate, notify.EntityTransaction, mock.Anything).Once()

	res, err := f.engine.Sell(context.Background(), 7, stock.SellInput{Quantity: 2, Price: 15})
	require.NoError(t, err)
	assert.Empty(t, res.Warning)
	assert.Equal(t, int64(0), res.Entry.Owned)
	f.assertExpectations(t)
}

func TestSellInsufficientQuantityMutatesNothing(t *testing.T) {
	f := newFixture()

	f.entries.On("Get", mock.Anything, uint64(7)).Return(&models.StockEntry{
		ID: 7, Kind: models.KindPlain, URLName: "lith_g1_relic", Owned: 1,
	}, nil)

	_, err := f.engine.Sell(context.Background(), 7, stock.SellInput{Quantity: 4, Price: 12})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInsufficientQuantity, apperror.KindOf(err))
	f.entries.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.entries.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.txlog.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestSellRivenRequiresSingleUnit(t *testing.T) {
	f := newFixture()

	f.entries.On("Get", mock.Anything, uint64(3)).Return(&models.StockEntry{
		ID: 3, Kind: models.KindRiven, Owned: 1,
		Riven: &models.RivenDetail{ModName: "critacan"},
	}, nil)

	_, err := f.engine.Sell(context.Background(), 3, stock.SellInput{Quantity: 2, Price: 400})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestSellRivenDeletesAuctionAfterLocalCommit(t *testing.T) {
	f := newFixture()
	f.allowNotifications()

	auctionID := "auction-9"
	f.entries.On("Get", mock.Anything, uint64(3)).Return(&models.StockEntry{
		ID: 3, Kind: models.KindRiven, URLName: "torid", Owned: 1, Bought: 1,
		RemoteListingID: &auctionID,
		Riven:           &models.RivenDetail{ModName: "critacan"},
	}, nil)
	f.entries.On("Delete", mock.Anything, uint64(3)).Return(&models.StockEntry{
		ID: 3, Kind: models.KindRiven, URLName: "torid",
		RemoteListingID: &auctionID,
		Riven:           &models.RivenDetail{ModName: "critacan"},
	}, nil)
	f.txlog.On("Append", mock.Anything, mock.MatchedBy(func(r *models.TransactionRecord) bool {
		return r.Kind == models.TransactionRiven && r.Direction == models.DirectionSale
	})).Return(nil)
	f.market.On("DeleteAuction", mock.Anything, "auction-9").Return(&market.Auction{ID: "auction-9"}, nil)

	res, err := f.engine.Sell(context.Background(), 3, stock.SellInput{Quantity: 1, Price: 400})
	require.NoError(t, err)
	assert.Empty(t, res.Warning)
	f.assertExpectations(t)
}

func TestDeleteTreatsAbsentRemoteListingAsSuccess(t *testing.T) {
	f := newFixture()
	f.allowNotifications()

	auctionID := "auction-9"
	f.entries.On("Delete", mock.Anything, uint64(3)).Return(&models.StockEntry{
		ID: 3, Kind: models.KindRiven, URLName: "torid",
		RemoteListingID: &auctionID,
		Riven:           &models.RivenDetail{ModName: "critacan"},
	}, nil)
	f.market.On("DeleteAuction", mock.Anything, "auction-9").
		Return(nil, apperror.New("MarketDeleteAuction", apperror.KindRemoteGone, "listing already absent on remote"))

	res, err := f.engine.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, res.Warning)
	// The already-absent listing is the desired end state, not a failure.
	assert.Empty(t, f.recorder.recorded)
}

func TestDeleteUnknownEntryIsNotFound(t *testing.T) {
	f := newFixture()

	f.entries.On("Delete", mock.Anything, uint64(99)).
		Return(nil, apperror.New("LedgerGet", apperror.KindNotFound, "stock entry not found: 99"))

	_, err := f.engine.Delete(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestBulkUpdateStopsAtFirstFailureKeepingProgress(t *testing.T) {
	f := newFixture()
	f.allowNotifications()

	price := int64(30)
	in := stock.UpdateInput{MinimumPrice: &price}

	f.entries.On("Get", mock.Anything, uint64(1)).
		Return(&models.StockEntry{ID: 1, Kind: models.KindPlain, Owned: 1}, nil)
	f.entries.On("Get", mock.Anything, uint64(2)).
		Return(nil, apperror.New("LedgerGet", apperror.KindNotFound, "stock entry not found: 2"))
	f.entries.On("Update", mock.Anything, mock.MatchedBy(func(e *models.StockEntry) bool {
		return e.ID == 1 && e.MinimumPrice != nil && *e.MinimumPrice == 30
	})).Return(nil)

	res, err := f.engine.BulkUpdate(context.Background(), []uint64{1, 2, 3}, in)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	// The first patch stays applied; id 3 is never touched.
	assert.Equal(t, 1, res.Applied)
	f.entries.AssertNotCalled(t, "Get", mock.Anything, uint64(3))
}

func TestBulkDeleteCollectsRemoteWarnings(t *testing.T) {
	f := newFixture()
	f.allowNotifications()

	auctionID := "auction-1"
	f.entries.On("Delete", mock.Anything, uint64(1)).Return(&models.StockEntry{
		ID: 1, Kind: models.KindRiven, RemoteListingID: &auctionID,
		Riven: &models.RivenDetail{},
	}, nil)
	f.entries.On("Delete", mock.Anything, uint64(2)).Return(&models.StockEntry{
		ID: 2, Kind: models.KindRiven,
		Riven: &models.RivenDetail{},
	}, nil)
	f.market.On("DeleteAuction", mock.Anything, "auction-1").
		Return(nil, apperror.New("MarketDeleteAuction", apperror.KindRemoteUnavailable, "remote returned 500"))

	res, err := f.engine.BulkDelete(context.Background(), []uint64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Applied)
	assert.Len(t, res.Warnings, 1)
}

func TestImportAuctionMirrorsRemoteState(t *testing.T) {
	f := newFixture()
	f.allowNotifications()

	f.market.On("MyAuctions", mock.Anything).Return([]market.Auction{{
		ID:            "auction-42",
		StartingPrice: 500,
		Visible:       true,
		Item: market.AuctionItem{
			Type:          "riven",
			WeaponURLName: "torid",
			Name:          "critacan",
			ModRank:       8,
			ReRolls:       12,
			MasteryLevel:  14,
			Polarity:      "madurai",
			Attributes: []market.AuctionAttribute{
				{URLName: "critical_chance", Positive: true, Value: 120.5},
				{URLName: "damage_vs_corpus", Positive: false, Value: -44.2},
			},
		},
	}}, nil)
	f.resolver.On("ResolveRivenWeapon", mock.Anything, "torid").Return(&catalog.RivenWeapon{
		ID: "torid-id", URLName: "torid", Name: "Torid", RivenType: "riven",
	}, nil)
	f.resolver.On("ResolveAttribute", mock.Anything, "critical_chance").
		Return(&catalog.AttributeDescriptor{URLName: "critical_chance"}, nil)
	f.resolver.On("ResolveAttribute", mock.Anything, "damage_vs_corpus").
		Return(&catalog.AttributeDescriptor{URLName: "damage_vs_corpus"}, nil)
	f.entries.On("Insert", mock.Anything, mock.MatchedBy(func(e *models.StockEntry) bool {
		return e.Kind == models.KindRiven &&
			e.RemoteListingID != nil && *e.RemoteListingID == "auction-42" &&
			e.Riven != nil && len(e.Riven.Attributes) == 2 &&
			e.Riven.ReRolls == 12
	})).Return(nil)
	f.txlog.On("Append", mock.Anything, mock.MatchedBy(func(r *models.TransactionRecord) bool {
		return r.Direction == models.DirectionPurchase && r.UnitPrice == 300
	})).Return(nil)

	res, err := f.engine.ImportAuction(context.Background(), stock.ImportAuctionInput{
		AuctionID: "auction-42",
		Bought:    300,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Entry)
	f.assertExpectations(t)
}

func TestImportAuctionZeroBoughtSkipsTransaction(t *testing.T) {
	f := newFixture()
	f.allowNotifications()

	f.market.On("MyAuctions", mock.Anything).Return([]market.Auction{{
		ID:   "auction-42",
		Item: market.AuctionItem{WeaponURLName: "torid", Name: "critacan"},
	}}, nil)
	f.resolver.On("ResolveRivenWeapon", mock.Anything, "torid").
		Return(&catalog.RivenWeapon{ID: "torid-id", URLName: "torid"}, nil)
	f.entries.On("Insert", mock.Anything, mock.Anything).Return(nil)

	_, err := f.engine.ImportAuction(context.Background(), stock.ImportAuctionInput{AuctionID: "auction-42"})
	require.NoError(t, err)
	f.txlog.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestImportAuctionIgnoresClosedAuctions(t *testing.T) {
	f := newFixture()

	f.market.On("MyAuctions", mock.Anything).Return([]market.Auction{{
		ID:     "auction-42",
		Closed: true,
		Item:   market.AuctionItem{WeaponURLName: "torid", Name: "critacan"},
	}}, nil)

	_, err := f.engine.ImportAuction(context.Background(), stock.ImportAuctionInput{AuctionID: "auction-42"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	f.entries.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestImportAuctionUnknownIDIsNotFound(t *testing.T) {
	f := newFixture()

	f.market.On("MyAuctions", mock.Anything).Return([]market.Auction{}, nil)

	_, err := f.engine.ImportAuction(context.Background(), stock.ImportAuctionInput{AuctionID: "missing"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestPublishCreatesOrderAndRecordsListingID(t *testing.T) {
	f := newFixture()
	f.allowNotifications()

	rank := int64(8)
	f.entries.On("Get", mock.Anything, uint64(7)).Return(&models.StockEntry{
		ID: 7, Kind: models.KindPlain, ItemID: "item-id", URLName: "lith_g1_relic",
		Owned: 4, SubType: &models.SubType{Rank: &rank},
	}, nil)
	f.market.On("CreateOrder", mock.Anything, mock.MatchedBy(func(spec market.OrderSpec) bool {
		return spec.ItemID == "item-id" && spec.Platinum == 20 && spec.Quantity == 4 &&
			spec.Type == market.OrderTypeSell && spec.Rank != nil && *spec.Rank == 8
	})).Return(&market.Order{ID: "order-7", Platinum: 20, Quantity: 4}, nil)
	f.entries.On("Update", mock.Anything, mock.MatchedBy(func(e *models.StockEntry) bool {
		return e.RemoteListingID != nil && *e.RemoteListingID == "order-7"
	})).Return(nil)

	res, err := f.engine.Publish(context.Background(), 7, stock.PublishInput{Platinum: 20})
	require.NoError(t, err)
	assert.Empty(t, res.Warning)
	f.assertExpectations(t)
}

func TestPublishRejectsRivenEntries(t *testing.T) {
	f := newFixture()

	f.entries.On("Get", mock.Anything, uint64(3)).Return(&models.StockEntry{
		ID: 3, Kind: models.KindRiven, Owned: 1, Riven: &models.RivenDetail{},
	}, nil)

	_, err := f.engine.Publish(context.Background(), 3, stock.PublishInput{Platinum: 100})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	f.market.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestPublishBelowMinimumPriceIsAllowed(t *testing.T) {
	f := newFixture()
	f.allowNotifications()

	// The minimum price is a pricing hint for the trader, not a floor the
	// engine enforces. The asked platinum goes to the marketplace as-is.
	minimum := int64(25)
	f.entries.On("Get", mock.Anything, uint64(7)).Return(&models.StockEntry{
		ID: 7, Kind: models.KindPlain, ItemID: "item-id", URLName: "lith_g1_relic",
		Owned: 4, MinimumPrice: &minimum,
	}, nil)
	f.market.On("CreateOrder", mock.Anything, mock.MatchedBy(func(spec market.OrderSpec) bool {
		return spec.Platinum == 20 && spec.Quantity == 4
	})).Return(&market.Order{ID: "order-7", Platinum: 20, Quantity: 4}, nil)
	f.entries.On("Update", mock.Anything, mock.Anything).Return(nil)

	res, err := f.engine.Publish(context.Background(), 7, stock.PublishInput{Platinum: 20})
	require.NoError(t, err)
	assert.Empty(t, res.Warning)
	f.assertExpectations(t)
}

func TestCreateRivenValidatesEveryAttribute(t *testing.T) {
	f := newFixture()

	f.resolver.On("ResolveRivenWeapon", mock.Anything, "torid").
		Return(&catalog.RivenWeapon{ID: "torid-id", URLName: "torid"}, nil)
	f.resolver.On("ResolveAttribute", mock.Anything, "critical_chance").
		Return(&catalog.AttributeDescriptor{URLName: "critical_chance"}, nil)
	f.resolver.On("ResolveAttribute", mock.Anything, "bogus").
		Return(nil, apperror.New("CatalogResolveAttribute", apperror.KindValidation, "unknown attribute: bogus"))

	_, err := f.engine.CreateRiven(context.Background(), stock.CreateRivenInput{
		WeaponURLName: "torid",
		ModName:       "critacan",
		Attributes: []models.RivenAttribute{
			{URLName: "critical_chance", Positive: true, Value: 120.5},
			{URLName: "bogus", Positive: true, Value: 1},
		},
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	f.entries.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateRivenZeroPriceSkipsTransaction(t *testing.T) {
	f := newFixture()
	f.allowNotifications()

	f.resolver.On("ResolveRivenWeapon", mock.Anything, "torid").
		Return(&catalog.RivenWeapon{ID: "torid-id", URLName: "torid", Name: "Torid"}, nil)
	f.entries.On("Insert", mock.Anything, mock.MatchedBy(func(e *models.StockEntry) bool {
		return e.Kind == models.KindRiven && e.Owned == 1 && e.Bought == 1 &&
			len(e.PriceHistory) == 0
	})).Return(nil)

	res, err := f.engine.CreateRiven(context.Background(), stock.CreateRivenInput{
		WeaponURLName: "torid",
		ModName:       "critacan",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Entry)
	f.txlog.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestTransactionAppendFailureKeepsCommittedEntry(t *testing.T) {
	f := newFixture()
	f.allowNotifications()

	f.resolver.On("Resolve", mock.Anything, "lith_g1_relic", (*catalog.SubType)(nil)).
		Return(lithDescriptor(), nil)
	f.entries.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.txlog.On("Append", mock.Anything, mock.Anything).
		Return(errors.New("disk full"))

	res, err := f.engine.CreateItem(context.Background(), stock.CreateItemInput{
		URLName:  "lith_g1_relic",
		Quantity: 2,
		Price:    10,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindStorage, apperror.KindOf(err))
	// The ledger entry stays; the error flags the gap in the audit trail.
	require.NotNil(t, res)
	assert.NotNil(t, res.Entry)
	f.entries.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
