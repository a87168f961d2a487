package order

import "fmt"

// Status is the closed set of order states. An order only ever moves one
// step forward along the fulfillment sequence, or to StatusCancelled from
// any non-terminal state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusPaid       Status = "paid"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// fulfillmentSteps is the forward sequence, in order. StatusCancelled sits
// outside it.
var fulfillmentSteps = [...]Status{
	StatusPending,
	StatusPaid,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCompleted,
}

// ParseStatus validates a raw string against the closed set.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPaid, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// StepIndex is the position in the fulfillment sequence, or -1 for
// StatusCancelled.
func (s Status) StepIndex() int {
	for i, step := range fulfillmentSteps {
		if s == step {
			return i
		}
	}
	return -1
}

// Progress is the display percentage for the tracking timeline. Cancelled
// orders show no progress.
func (s Status) Progress() float64 {
	idx := s.StepIndex()
	if idx < 0 {
		return 0
	}
	return float64(idx+1) / float64(len(fulfillmentSteps)) * 100
}

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanCancel reports whether the order may still be cancelled.
func (s Status) CanCancel() bool {
	return !s.Terminal()
}

// CanTransitionTo enforces the machine: one explicit step forward, or a
// cancellation of a non-terminal order. Skipping steps is rejected.
func (s Status) CanTransitionTo(next Status) bool {
	if next == StatusCancelled {
		return s.CanCancel()
	}

	from, to := s.StepIndex(), next.StepIndex()
	if from < 0 || to < 0 {
		return false
	}
	return to == from+1
}

// Next returns the following fulfillment step, or false when the order is
// at the end of the sequence or cancelled.
func (s Status) Next() (Status, bool) {
	idx := s.StepIndex()
	if idx < 0 || idx == len(fulfillmentSteps)-1 {
		return "", false
	}
	return fulfillmentSteps[idx+1], true
}
