// Package models defines the persistent entities of the stock feature: the
// stock ledger rows and the append-only transaction log.
//
// Variant-specific riven fields live in a dedicated RivenDetail sub-structure
// that is present exactly when the entry's Kind is riven, so a plain item can
// never carry half a riven and vice versa. Structured sub-values (sub-type,
// price history, riven detail, transaction extras) are serialized into JSON
// columns via driver.Valuer / sql.Scanner implementations.
package models
