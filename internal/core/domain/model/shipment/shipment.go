package shipment

import (
	"errors"
	"fmt"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
	// created through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New(
		"Shipment must be created via NewShipment or RestoreShipment constructor")

	// ErrShipmentOnHold rejects time accounting and stage transitions while an
	// incident is pending resolution.
	ErrShipmentOnHold = errors.New("shipment is on hold pending incident resolution")

	// ErrShipmentFinished rejects mutation of a shipment in its terminal state.
	ErrShipmentFinished = errors.New("shipment is already finished")

	// ErrIncidentNotDue is returned when an incident is declared on a shipment
	// that is not eligible for one right now.
	ErrIncidentNotDue = errors.New("incident is not due for this shipment")

	// ErrIncidentNotDeclared is returned when an incident outcome is applied to
	// a shipment that never had an incident declared.
	ErrIncidentNotDeclared = errors.New("no incident was declared for this shipment")
)

// CancelledStatus is the terminal status text of a cancelled delivery.
const CancelledStatus = "delivery cancelled"

// Bounds of the incident delay drawn when an incident is declared.
const (
	MinIncidentDelayDays = 1
	MaxIncidentDelayDays = 9
)

// IncidentStatus returns the status text announcing a declared incident with
// the estimated delay in days.
func IncidentStatus(days int) string {
	return fmt.Sprintf("incident declared, delay=%d days", days)
}

// Shipment is the aggregate root of the tracking domain. It progresses
// through the seven delivery stages on a fixed time budget, may be put on
// hold once by a randomly offered incident at the transit stage, and ends
// either delivered or cancelled.
//
// Invariants:
//   - the current stage index only ever moves forward
//   - the stage plan is fixed at creation and never changes
//   - while on hold, neither time-in-stage nor the stage itself advances
//   - an incident is offered at most once (incidentChecked guards this)
//   - reaching the terminal stage marks the shipment finished
//   - history is append-only and gains one entry per status change
type Shipment struct {
	id          kernel.UUID
	tracking    kernel.TrackingID
	client      string
	quantity    int
	destination string

	status       string
	history      []HistoryEntry
	currentStage Stage
	plan         StagePlan
	timeInStage  float64

	onHold           bool
	incidentDecision bool
	incidentChecked  bool
	finished         bool
	archived         bool

	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewShipment creates a shipment at the first delivery stage with a fresh
// history. The incident decision is drawn by the caller (the create handler)
// and fixed for the shipment's lifetime.
func NewShipment(
	id kernel.UUID,
	tracking kernel.TrackingID,
	client string,
	quantity int,
	destination string,
	plan StagePlan,
	incidentDecision bool,
	now time.Time,
) (*Shipment, error) {
	if err := errors.Join(
		id.Validate(),
		tracking.Validate(),
		plan.Validate(),
		validateClient(client),
		validateQuantity(quantity),
		validateDestination(destination),
	); err != nil {
		return nil, err
	}

	s := &Shipment{
		id:               id,
		tracking:         tracking,
		client:           client,
		quantity:         quantity,
		destination:      destination,
		status:           StageOrderConfirmed.Label(),
		currentStage:     StageOrderConfirmed,
		plan:             plan,
		incidentDecision: incidentDecision,
		createdAt:        now,
		guard:            guard.NewConstructorGuard(),
	}
	s.appendHistory(s.status, now)

	return s, nil
}

// Snapshot is the persisted form of a shipment. Storage adapters convert
// between this flat structure and the aggregate via RestoreShipment and
// Shipment.Snapshot.
type Snapshot struct {
	ID               kernel.UUID
	Tracking         kernel.TrackingID
	Client           string
	Quantity         int
	Destination      string
	Status           string
	History          []HistoryEntry
	CurrentStage     Stage
	Plan             StagePlan
	TimeInStage      float64
	OnHold           bool
	IncidentDecision bool
	IncidentChecked  bool
	Finished         bool
	Archived         bool
	CreatedAt        time.Time
}

// RestoreShipment reconstructs an aggregate from its persisted snapshot.
func RestoreShipment(snap Snapshot) (*Shipment, error) {
	if err := errors.Join(
		snap.ID.Validate(),
		snap.Tracking.Validate(),
		snap.CurrentStage.Validate(),
		snap.Plan.Validate(),
	); err != nil {
		return nil, err
	}

	history := make([]HistoryEntry, len(snap.History))
	copy(history, snap.History)

	return &Shipment{
		id:               snap.ID,
		tracking:         snap.Tracking,
		client:           snap.Client,
		quantity:         snap.Quantity,
		destination:      snap.Destination,
		status:           snap.Status,
		history:          history,
		currentStage:     snap.CurrentStage,
		plan:             snap.Plan,
		timeInStage:      snap.TimeInStage,
		onHold:           snap.OnHold,
		incidentDecision: snap.IncidentDecision,
		incidentChecked:  snap.IncidentChecked,
		finished:         snap.Finished,
		archived:         snap.Archived,
		createdAt:        snap.CreatedAt,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Snapshot returns the shipment's persisted form.
func (s *Shipment) Snapshot() Snapshot {
	history := make([]HistoryEntry, len(s.history))
	copy(history, s.history)

	return Snapshot{
		ID:               s.id,
		Tracking:         s.tracking,
		Client:           s.client,
		Quantity:         s.quantity,
		Destination:      s.destination,
		Status:           s.status,
		History:          history,
		CurrentStage:     s.currentStage,
		Plan:             s.plan,
		TimeInStage:      s.timeInStage,
		OnHold:           s.onHold,
		IncidentDecision: s.incidentDecision,
		IncidentChecked:  s.incidentChecked,
		Finished:         s.finished,
		Archived:         s.archived,
		CreatedAt:        s.createdAt,
	}
}

// Validate ensures the Shipment was created through a constructor.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// IsEqual compares two shipments by tracking identifier.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.tracking.IsEqual(other.tracking)
}

// AccrueTime adds the scheduler's tick delta (in ticks) to the time spent in
// the current stage. Rejected while on hold or finished: held shipments must
// not accumulate progress, which is what pauses them during an incident.
func (s *Shipment) AccrueTime(delta float64) error {
	if delta < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delta",
			fmt.Errorf("%f is negative", delta))
	}
	if s.onHold {
		return ErrShipmentOnHold
	}
	if s.finished {
		return ErrShipmentFinished
	}
	s.timeInStage += delta
	return nil
}

// StageComplete reports whether the shipment has spent its budget for the
// current stage and is due to advance.
func (s *Shipment) StageComplete() bool {
	return s.timeInStage >= float64(s.plan.Duration(s.currentStage))
}

// AdvanceStage moves the shipment to the next delivery stage: updates the
// status, resets time-in-stage and appends a history entry. Reaching the
// terminal stage also marks the shipment finished.
func (s *Shipment) AdvanceStage(now time.Time) error {
	if s.onHold {
		return ErrShipmentOnHold
	}
	if s.finished {
		return ErrShipmentFinished
	}

	next, err := s.currentStage.Next()
	if err != nil {
		return err
	}

	s.currentStage = next
	s.status = next.Label()
	s.timeInStage = 0
	s.appendHistory(s.status, now)

	if next.IsLast() {
		s.finished = true
	}
	return nil
}

// IncidentDue reports whether the scheduler should offer an incident now:
// the shipment is at the transit stage, was drawn eligible at creation, and
// the offer has not been made yet.
func (s *Shipment) IncidentDue() bool {
	return s.currentStage == StageInTransit &&
		s.incidentDecision &&
		!s.incidentChecked &&
		!s.onHold &&
		!s.finished
}

// DeclareIncident puts the shipment on hold with the drawn delay and marks
// the incident offer as consumed, so a second offer can never happen.
func (s *Shipment) DeclareIncident(days int, now time.Time) error {
	if days < MinIncidentDelayDays || days > MaxIncidentDelayDays {
		return errs.NewValueIsOutOfRangeError("days", days, MinIncidentDelayDays, MaxIncidentDelayDays)
	}
	if !s.IncidentDue() {
		return ErrIncidentNotDue
	}

	s.incidentChecked = true
	s.onHold = true
	s.status = IncidentStatus(days)
	s.appendHistory(s.status, now)
	return nil
}

// ResolveCancelled applies the fatal incident outcome: the delivery is
// cancelled and the shipment is finished. The hold flag is left untouched;
// cancellation is terminal so it no longer matters.
func (s *Shipment) ResolveCancelled(now time.Time) error {
	if !s.incidentChecked {
		return ErrIncidentNotDeclared
	}

	s.status = CancelledStatus
	s.finished = true
	s.appendHistory(s.status, now)
	return nil
}

// ResolveResumed applies the benign incident outcome: the hold is lifted and
// the shipment continues in transit. Time spent on hold was never accrued,
// so progression picks up where it stopped.
func (s *Shipment) ResolveResumed(now time.Time) error {
	if !s.incidentChecked {
		return ErrIncidentNotDeclared
	}

	s.status = StageInTransit.Label()
	s.onHold = false
	s.appendHistory(s.status, now)
	return nil
}

// CloseOut finishes a shipment already sitting at the terminal stage.
// It is not a status change, so no history entry is appended.
func (s *Shipment) CloseOut() error {
	if !s.currentStage.IsLast() {
		return errs.NewValueIsInvalidErrorWithCause("stage",
			fmt.Errorf("%s is not the terminal stage", s.currentStage))
	}
	s.finished = true
	return nil
}

// Archive hides the shipment from listings and scheduling. Archiving never
// fails: a shipment may be archived in any state, including mid-incident.
func (s *Shipment) Archive() {
	s.archived = true
}

// ID returns the storage identity of the shipment.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// Tracking returns the external tracking identifier.
func (s *Shipment) Tracking() kernel.TrackingID {
	return s.tracking
}

// Client returns the name of the ordering client.
func (s *Shipment) Client() string {
	return s.client
}

// Quantity returns the ordered quantity.
func (s *Shipment) Quantity() int {
	return s.quantity
}

// Destination returns the delivery destination.
func (s *Shipment) Destination() string {
	return s.destination
}

// Status returns the current customer-facing status text.
func (s *Shipment) Status() string {
	return s.status
}

// History returns a copy of the append-only status history.
func (s *Shipment) History() []HistoryEntry {
	history := make([]HistoryEntry, len(s.history))
	copy(history, s.history)
	return history
}

// CurrentStage returns the delivery stage the shipment is in.
func (s *Shipment) CurrentStage() Stage {
	return s.currentStage
}

// Plan returns the immutable per-stage time budget.
func (s *Shipment) Plan() StagePlan {
	return s.plan
}

// TimeInStage returns the ticks accumulated in the current stage.
func (s *Shipment) TimeInStage() float64 {
	return s.timeInStage
}

// IsOnHold reports whether an incident is pending resolution.
func (s *Shipment) IsOnHold() bool {
	return s.onHold
}

// IncidentDecision reports whether the shipment was drawn incident-eligible
// at creation.
func (s *Shipment) IncidentDecision() bool {
	return s.incidentDecision
}

// IncidentChecked reports whether the one-time incident offer was consumed.
func (s *Shipment) IncidentChecked() bool {
	return s.incidentChecked
}

// IsFinished reports whether the shipment reached a terminal state.
func (s *Shipment) IsFinished() bool {
	return s.finished
}

// IsArchived reports whether the shipment is hidden from scheduling.
func (s *Shipment) IsArchived() bool {
	return s.archived
}

// CreatedAt returns the creation timestamp.
func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Shipment) appendHistory(status string, at time.Time) {
	s.history = append(s.history, HistoryEntry{Status: status, At: at})
}

func validateClient(client string) error {
	if client == "" {
		return errs.NewValueIsRequiredError("client")
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}

func validateDestination(destination string) error {
	if destination == "" {
		return errs.NewValueIsRequiredError("destination")
	}
	return nil
}
