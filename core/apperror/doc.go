// Package apperror defines the structured error taxonomy shared by every
// operation in the Stock Manager.
//
// Each error carries the name of the originating operation (e.g. "StockItemSell")
// and a Kind that callers can branch on without inspecting message text.
//
// # Kinds
//
//   - Validation: unknown item, sub-type or attribute; malformed input. Raised
//     before any mutation has happened.
//   - NotFound: a referenced entry, auction or listing does not exist.
//   - InsufficientQuantity: a sell exceeds the owned amount.
//   - RemoteUnavailable: the marketplace could not be reached; local state has
//     already been committed.
//   - RemoteGone: the remote listing is already absent. The engine treats this
//     as success.
//   - Storage: ledger or transaction-log persistence failure.
//
// # Usage
//
//	if err := repo.Get(ctx, id); err != nil {
//	    return apperror.Wrap("StockItemSell", apperror.KindNotFound, err)
//	}
//
//	if apperror.IsKind(err, apperror.KindRemoteGone) {
//	    // already closed on the remote side, nothing to do
//	}
package apperror
