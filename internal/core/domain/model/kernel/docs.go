// Package kernel contains the shared value objects of the domain model:
// the UUID used as storage identity and the TrackingID used as the external
// shipment identifier. Both are immutable and must be created through their
// constructor functions; zero values fail validation.
package kernel
