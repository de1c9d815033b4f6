// Package shipment contains the Shipment aggregate and its value objects:
// the seven-stage delivery sequence, the per-stage time budget (StagePlan)
// and the append-only status history.
//
// A shipment is driven externally: the progression scheduler accrues time
// and advances stages on its tick, and an incident resolver applies the
// cancelled/resumed outcome of an incident. The aggregate enforces the
// ordering rules (no progress while on hold, at most one incident offer,
// monotonically advancing stages) regardless of who calls it.
package shipment
