// Package approval provides helpers over raw pending-approval records: the
// effective submission key used for idempotency and lookup, and the
// per-run filter applied before pending items are stored.
package approval
