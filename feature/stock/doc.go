// Package stock implements the stock ledger and its reconciliation engine:
// every purchase, sale and removal mutates the local ledger and transaction
// log first, then brings the trader's remote marketplace listing in line with
// the new local state. The ledger is the single source of truth; remote
// listings only mirror it.
package stock
