package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"stock-manager/core/config"
	"stock-manager/core/database"
	"stock-manager/core/logger"
	"stock-manager/core/market"
	"stock-manager/core/reconcile"
	"stock-manager/feature/audit"
	"stock-manager/feature/stock"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	auditFixOrphans bool
	auditSyncDrift  bool
	auditDryRun     bool
	auditYes        bool
	auditJSON       bool
)

// auditCmd performs a one-shot listing audit with optional repairs.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit the stock ledger against remote marketplace listings",
	Long: `Compares the local stock ledger against the trader's open remote
listings (orders and auctions) and reports orphans and drift.

Examples:
  # Report only
  audit

  # Plan and apply orphan cleanup (with interactive confirmation)
  audit --fix-orphans

  # Also push quantity/price drift back to the remote listings
  audit --fix-orphans --sync-drift --yes`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().BoolVar(&auditFixOrphans, "fix-orphans", false, "Delete orphaned remote listings and unlink stale ledger references")
	auditCmd.Flags().BoolVar(&auditSyncDrift, "sync-drift", false, "Update drifted remote listings from the ledger state")
	auditCmd.Flags().BoolVar(&auditDryRun, "dry-run", false, "Force dry-run (no repairs even with --yes)")
	auditCmd.Flags().BoolVar(&auditYes, "yes", false, "Auto-confirm repairs (non-interactive)")
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "Print the full report as JSON on stdout")

	RootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	l.Info("Starting listing audit")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// No caching for one-shot audits; stale snapshots would hide repairs.
	svc := audit.NewService(stock.NewEntryRepository(db), market.NewClient(cfg.Market), 0, l)

	opts := reconcile.Options{
		FixOrphans: auditFixOrphans,
		SyncDrift:  auditSyncDrift,
		DryRun:     auditDryRun,
	}

	report, err := svc.Plan(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to plan audit: %w", err)
	}

	if auditJSON {
		raw, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		fmt.Println(string(raw))
	} else {
		printAuditReport(l, "orders", report.Orders)
		printAuditReport(l, "auctions", report.Auctions)
	}

	if !auditFixOrphans && !auditSyncDrift {
		l.Info("No repairs requested. Use --fix-orphans or --sync-drift to repair.")
		return nil
	}

	totalActions := len(report.Orders.Actions) + len(report.Auctions.Actions)
	if totalActions == 0 {
		l.Info("No repairs required based on current flags.")
		return nil
	}

	if auditDryRun {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	if !confirmRepairs() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	applied, err := svc.Apply(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to apply repairs: %w", err)
	}
	l.Info("Successfully executed repairs", zap.Int("count", applied.Executed))

	return nil
}

// printAuditReport prints a formatted audit report using the logger.
func printAuditReport(l *zap.Logger, surface string, plan *reconcile.AuditPlan) {
	s := plan.Summary

	l.Info("Audit report",
		zap.String("surface", surface),
		zap.Int("total_entries", s.TotalEntries),
		zap.Int("missing_remote", s.MissingRemote),
		zap.Int("orphaned_remote", s.OrphanedRemote),
		zap.Int("mismatches", s.Mismatches),
	)

	if len(plan.Actions) == 0 {
		return
	}

	l.Info("Planned repairs",
		zap.String("surface", surface),
		zap.Int("total_actions", len(plan.Actions)),
	)

	maxShow := 5
	if len(plan.Actions) < maxShow {
		maxShow = len(plan.Actions)
	}
	for i := 0; i < maxShow; i++ {
		action := plan.Actions[i]
		l.Info("Sample repair",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.String("reason", action.Reason),
		)
	}
	if len(plan.Actions) > maxShow {
		l.Info("Additional repairs not shown", zap.Int("count", len(plan.Actions)-maxShow))
	}
}

// confirmRepairs prompts the user for confirmation or uses the --yes flag.
func confirmRepairs() bool {
	if auditYes {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm repairs against the remote marketplace: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
