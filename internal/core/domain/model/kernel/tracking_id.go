package kernel

import (
	"fmt"
	"math/rand/v2"

	"tracking/internal/pkg/errs"
)

// Bounds of the 8-digit tracking number space. The space is small enough
// that collisions are possible at scale, so callers creating shipments must
// retry on a duplicate-tracking store error.
const (
	trackingIDMin = 10_000_000
	trackingIDMax = 99_999_999
)

// ErrTrackingIDIsNotConstructed indicates that a TrackingID was not created
// through one of the constructor functions.
var ErrTrackingIDIsNotConstructed = errs.NewValueIsRequiredError(
	"TrackingID must be created via NewRandomTrackingID or TrackingIDFromString")

// TrackingID is the external identifier of a shipment: an 8-digit decimal
// number, immutable once assigned. It is the key customers use to look up
// their shipment, distinct from the internal storage UUID.
type TrackingID struct {
	value string
}

// NewRandomTrackingID draws a fresh tracking number from the 8-digit space.
// Uniqueness is not guaranteed here; the shipment store enforces it and the
// caller regenerates on collision.
func NewRandomTrackingID() TrackingID {
	n := trackingIDMin + rand.IntN(trackingIDMax-trackingIDMin+1)
	return TrackingID{value: fmt.Sprintf("%d", n)}
}

// TrackingIDFromString parses a tracking number from its textual form.
// The input must be exactly 8 decimal digits with a non-zero leading digit.
func TrackingIDFromString(s string) (TrackingID, error) {
	if len(s) != 8 {
		return TrackingID{}, errs.NewValueIsInvalidErrorWithCause("trackingID",
			fmt.Errorf("%q is not an 8-digit tracking number", s))
	}
	for i, r := range s {
		if r < '0' || r > '9' || (i == 0 && r == '0') {
			return TrackingID{}, errs.NewValueIsInvalidErrorWithCause("trackingID",
				fmt.Errorf("%q is not an 8-digit tracking number", s))
		}
	}
	return TrackingID{value: s}, nil
}

// String returns the tracking number as printed on the label.
func (t TrackingID) String() string {
	return t.value
}

// IsEqual reports whether two tracking identifiers are the same.
func (t TrackingID) IsEqual(other TrackingID) bool {
	return t.value == other.value
}

// Validate returns ErrTrackingIDIsNotConstructed for the zero value.
func (t TrackingID) Validate() error {
	if t.value == "" {
		return ErrTrackingIDIsNotConstructed
	}
	return nil
}
