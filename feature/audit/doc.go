// Package audit periodically compares the stock ledger against the trader's
// remote marketplace listings and reports or repairs whatever drifted apart:
// orphaned listings nothing in the ledger backs, ledger entries pointing at
// vanished listings, and quantity or price drift.
package audit
