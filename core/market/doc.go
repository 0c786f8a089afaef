// Package market implements the listing-mirror adapter over the external
// marketplace's "my open orders" and "my open auctions" surface.
//
// The reconciliation engine never talks to the marketplace directly; it
// consumes the Client interface defined here. The adapter owns two concerns:
//
//   - Wire plumbing: bearer-token auth, hardened HTTP transport, the payload
//     envelope of the API.
//   - Error classification: transport failures become KindRemoteUnavailable,
//     and the marketplace's "already gone" code (app.form.not_exist, or a
//     plain 404) becomes KindRemoteGone. Callers branch on kinds, never on
//     message text.
//
// Listing state on the remote side is external state the engine only
// reflects; it is never a source of truth for quantity or price.
package market
