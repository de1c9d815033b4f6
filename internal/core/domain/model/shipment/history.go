package shipment

import "time"

// HistoryEntry is one record in a shipment's append-only status history:
// the status text that became current and when it did. The history gains
// exactly one entry per observable status change (creation, each stage
// transition, incident declaration, incident outcome).
type HistoryEntry struct {
	Status string
	At     time.Time
}
