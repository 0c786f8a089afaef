package audit

import (
	"context"
	"testing"

	"stock-manager/core/apperror"
	"stock-manager/core/market"
	marketmocks "stock-manager/core/market/mocks"
	"stock-manager/core/reconcile"
	"stock-manager/feature/stock"
	"stock-manager/feature/stock/mocks"
	"stock-manager/feature/stock/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*Service, *mocks.EntryRepository, *marketmocks.Client) {
	t.Helper()
	entries := new(mocks.EntryRepository)
	client := new(marketmocks.Client)
	// TTL zero keeps every audit fresh; tests never share snapshots.
	svc := NewService(entries, client, 0, zap.NewNop())
	return svc, entries, client
}

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }

func TestOrdersAuditFlagsOrphansAndDrift(t *testing.T) {
	svc, entries, client := newTestService(t)

	plainKind := models.KindPlain
	entries.On("List", mock.Anything, stock.ListFilter{Kind: &plainKind, IncludeHidden: true}).
		Return([]models.StockEntry{
			{ID: 1, Kind: models.KindPlain, URLName: "lith_g1_relic", Name: "Lith G1 Relic",
				Owned: 3, ListPrice: int64Ptr(12), RemoteListingID: strPtr("order-1")},
			{ID: 2, Kind: models.KindPlain, URLName: "neo_n1_relic", Name: "Neo N1 Relic",
				Owned: 2, RemoteListingID: strPtr("order-2")},
		}, nil)
	rivenKind := models.KindRiven
	entries.On("List", mock.Anything, stock.ListFilter{Kind: &rivenKind, IncludeHidden: true}).
		Return([]models.StockEntry{}, nil)

	client.On("MyOrders", mock.Anything).Return(&market.Orders{
		SellOrders: []market.Order{
			// Quantity drift against entry 1.
			{ID: "order-1", Platinum: 12, Quantity: 5, Visible: true,
				Item: &market.OrderItem{URLName: "lith_g1_relic", Name: "Lith G1 Relic"}},
			// Orphan: no ledger entry for this item.
			{ID: "order-9", Platinum: 30, Quantity: 1, Visible: true,
				Item: &market.OrderItem{URLName: "axi_a1_relic", Name: "Axi A1 Relic"}},
		},
	}, nil)
	client.On("MyAuctions", mock.Anything).Return([]market.Auction{}, nil)

	report, err := svc.Plan(context.Background(), reconcile.Options{FixOrphans: true, SyncDrift: true})
	require.NoError(t, err)

	summary := report.Orders.Summary
	assert.Equal(t, 3, summary.TotalEntries)
	assert.Equal(t, 1, summary.OrphanedRemote)
	// Entry 2 claims a listing that no longer exists.
	assert.Equal(t, 1, summary.MissingRemote)
	assert.Equal(t, 1, summary.Mismatches)

	byType := map[reconcile.ActionType]string{}
	for _, action := range report.Orders.Actions {
		byType[action.Type] = action.Key
	}
	assert.Equal(t, "axi_a1_relic", byType[reconcile.ActionDeleteRemote])
	assert.Equal(t, "neo_n1_relic", byType[reconcile.ActionUnlinkLedger])
	assert.Equal(t, "lith_g1_relic", byType[reconcile.ActionSyncRemote])
}

func TestOrdersUnlistedStockIsNotAudited(t *testing.T) {
	svc, entries, client := newTestService(t)

	plainKind := models.KindPlain
	entries.On("List", mock.Anything, stock.ListFilter{Kind: &plainKind, IncludeHidden: true}).
		Return([]models.StockEntry{
			// No RemoteListingID: stock the trader never listed.
			{ID: 1, Kind: models.KindPlain, URLName: "lith_g1_relic", Owned: 3},
		}, nil)
	rivenKind := models.KindRiven
	entries.On("List", mock.Anything, stock.ListFilter{Kind: &rivenKind, IncludeHidden: true}).
		Return([]models.StockEntry{}, nil)
	client.On("MyOrders", mock.Anything).Return(&market.Orders{}, nil)
	client.On("MyAuctions", mock.Anything).Return([]market.Auction{}, nil)

	report, err := svc.Plan(context.Background(), reconcile.Options{FixOrphans: true})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Orders.Summary.TotalEntries)
	assert.Empty(t, report.Orders.Actions)
}

func TestAuctionsAuditUnlinksVanishedListing(t *testing.T) {
	svc, entries, client := newTestService(t)

	plainKind := models.KindPlain
	entries.On("List", mock.Anything, stock.ListFilter{Kind: &plainKind, IncludeHidden: true}).
		Return([]models.StockEntry{}, nil)
	rivenKind := models.KindRiven
	entries.On("List", mock.Anything, stock.ListFilter{Kind: &rivenKind, IncludeHidden: true}).
		Return([]models.StockEntry{
			{ID: 3, Kind: models.KindRiven, URLName: "torid", Name: "Torid",
				RemoteListingID: strPtr("auction-9"),
				Riven:           &models.RivenDetail{ModName: "critacan"}},
		}, nil)
	client.On("MyOrders", mock.Anything).Return(&market.Orders{}, nil)
	client.On("MyAuctions", mock.Anything).Return([]market.Auction{}, nil)

	// Unlink writes the cleared reference back.
	entries.On("Update", mock.Anything, mock.MatchedBy(func(e *models.StockEntry) bool {
		return e.ID == 3 && e.RemoteListingID == nil
	})).Return(nil)

	report, err := svc.Apply(context.Background(), reconcile.Options{FixOrphans: true})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Auctions.Summary.MissingRemote)
	assert.Equal(t, 1, report.Executed)
	entries.AssertExpectations(t)
}

func TestAuctionsDeleteRemoteSwallowsAlreadyGone(t *testing.T) {
	adapter := &auctionsAdapter{
		entries: new(mocks.EntryRepository),
		market:  newGoneClient(t),
	}

	err := adapter.DeleteRemote(context.Background(), "auction-9")
	assert.NoError(t, err)
}

func newGoneClient(t *testing.T) *marketmocks.Client {
	t.Helper()
	client := new(marketmocks.Client)
	client.On("DeleteAuction", mock.Anything, "auction-9").
		Return(nil, apperror.New("MarketDeleteAuction", apperror.KindRemoteGone, "listing already absent on remote"))
	return client
}

func TestClosedAuctionsAreIgnored(t *testing.T) {
	client := new(marketmocks.Client)
	client.On("MyAuctions", mock.Anything).Return([]market.Auction{
		{ID: "auction-1", Closed: true, Item: market.AuctionItem{WeaponURLName: "torid"}},
		{ID: "auction-2", Closed: false, Item: market.AuctionItem{WeaponURLName: "torid"}},
	}, nil)

	adapter := &auctionsAdapter{entries: new(mocks.EntryRepository), market: client}
	index, err := adapter.LoadRemoteIndex(context.Background())
	require.NoError(t, err)
	assert.Len(t, index, 1)
	assert.Contains(t, index, "auction-2")
}
