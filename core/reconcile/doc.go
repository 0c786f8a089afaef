// Package reconcile provides the generic audit engine that compares the
// local stock ledger against the trader's remote marketplace listings and
// plans repair actions for whatever drifted apart. Surface-specific logic
// (the order book, the auction list) plugs in through the Adapter interface.
package reconcile
