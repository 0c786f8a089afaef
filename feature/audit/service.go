package audit

import (
	"context"
	"time"

	"stock-manager/core/market"
	"stock-manager/core/reconcile"
	"stock-manager/feature/stock"

	"go.uber.org/zap"
)

// Report is the combined audit output across both listing surfaces.
type Report struct {
	Orders   *reconcile.AuditPlan `json:"orders"`
	Auctions *reconcile.AuditPlan `json:"auctions"`
	// Executed counts repairs applied across both surfaces.
	Executed int `json:"executed"`
}

// Service runs listing audits over the order book and the auction list.
type Service struct {
	orders   *reconcile.Spec
	auctions *reconcile.Spec
	logger   *zap.Logger
}

// NewService creates the audit service over both listing surfaces.
func NewService(entries stock.EntryRepository, marketClient market.Client, cacheTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		orders: &reconcile.Spec{
			Adapter:  &ordersAdapter{entries: entries, market: marketClient},
			CacheTTL: cacheTTL,
		},
		auctions: &reconcile.Spec{
			Adapter:  &auctionsAdapter{entries: entries, market: marketClient},
			CacheTTL: cacheTTL,
		},
		logger: logger,
	}
}

// Plan audits both surfaces and returns plans without executing repairs.
func (s *Service) Plan(ctx context.Context, opts reconcile.Options) (*Report, error) {
	opts.Confirmed = false

	ordersPlan, err := reconcile.AuditWithPlan(ctx, s.orders, opts)
	if err != nil {
		return nil, err
	}
	auctionsPlan, err := reconcile.AuditWithPlan(ctx, s.auctions, opts)
	if err != nil {
		return nil, err
	}

	return &Report{Orders: ordersPlan, Auctions: auctionsPlan}, nil
}

// Apply audits both surfaces and executes the planned repairs. A failure on
// the orders surface still lets the auctions surface run; the first error is
// returned alongside whatever was repaired.
func (s *Service) Apply(ctx context.Context, opts reconcile.Options) (*Report, error) {
	opts.Confirmed = true
	opts.DryRun = false

	report := &Report{}

	ordersPlan, ordersExecuted, ordersErr := reconcile.AuditAndApply(ctx, s.orders, opts)
	report.Orders = ordersPlan
	report.Executed += ordersExecuted

	auctionsPlan, auctionsExecuted, auctionsErr := reconcile.AuditAndApply(ctx, s.auctions, opts)
	report.Auctions = auctionsPlan
	report.Executed += auctionsExecuted

	if ordersErr != nil {
		return report, ordersErr
	}
	return report, auctionsErr
}

// Sweep runs the scheduled dry audit and logs what drifted. It never mutates.
func (s *Service) Sweep(ctx context.Context) {
	report, err := s.Plan(ctx, reconcile.Options{FixOrphans: true, SyncDrift: true})
	if err != nil {
		s.logger.Warn("listing audit sweep failed", zap.Error(err))
		return
	}

	s.logger.Info("listing audit sweep finished",
		zap.Int("orders_total", report.Orders.Summary.TotalEntries),
		zap.Int("orders_orphaned", report.Orders.Summary.OrphanedRemote),
		zap.Int("orders_missing", report.Orders.Summary.MissingRemote),
		zap.Int("orders_drift", report.Orders.Summary.Mismatches),
		zap.Int("auctions_total", report.Auctions.Summary.TotalEntries),
		zap.Int("auctions_orphaned", report.Auctions.Summary.OrphanedRemote),
		zap.Int("auctions_missing", report.Auctions.Summary.MissingRemote),
		zap.Int("auctions_drift", report.Auctions.Summary.Mismatches),
	)
}
