// Package services provides domain services of the shipment tracking system:
// logic that belongs to the domain but not to a single aggregate.
//
// The package includes:
//   - DurationAllocator: partitions a randomly drawn total delivery time into
//     the per-stage time budget of a new shipment.
package services
