// Package controller owns the mutable session state of one timeline view:
// it orchestrates journal and pending-approval loads against injected
// sources and drives the approval-submission protocol with per-key
// idempotency, audit logging and snapshot notification.
package controller
