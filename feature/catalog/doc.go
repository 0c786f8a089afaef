// Package catalog resolves stable item identifiers to canonical descriptors.
//
// The catalogs (tradeable items, riven-capable weapons, riven attributes) are
// static reference data published as JSON objects in the storage bucket. The
// Resolver fetches each object on first use, indexes it by url name, and
// keeps the index in a TTL cache so repeated resolves during a burst of stock
// actions don't re-fetch from storage.
//
// The resolver is strictly read-only. Every failure it reports is a
// user-input class error (NotFound for unknown identifiers, Validation for
// impossible sub-types and attributes), and the reconciliation engine aborts
// the whole action before any ledger or transaction mutation when resolution
// fails.
package catalog
