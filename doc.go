// Package nightledger wires the timeline review surface for one agent run:
// an HTTP client or demo fixtures as data sources, a decision-log sink and
// the timeline controller that owns session state and drives the
// approval-submission protocol.
package nightledger
