// Package notify delivers "state changed" events to interested consumers
// (typically a UI) after each successful reconciliation step.
//
// All notifiers are constructed eagerly at process start and injected into
// the engine as explicit dependencies; there is no lazily-initialized or
// globally shared notifier state. Emission is strictly fire-and-forget: a
// failed or slow delivery never blocks or fails the stock action that
// triggered it.
//
// # Implementations
//
//   - LogNotifier: writes events to the zap application log.
//   - WebhookNotifier: POSTs events to a configured endpoint on a background
//     goroutine, logging delivery failures.
//   - Multi: fans events out to several notifiers.
package notify
