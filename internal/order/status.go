package order

// Status is the order lifecycle state.
type Status string

const (
	StatusPending     Status = "pending"
	StatusOnHold      Status = "on-hold"
	StatusReadyToShip Status = "ready-to-ship"
	StatusShipped     Status = "shipped"
	StatusDelivered   Status = "delivered"
	StatusCancelled   Status = "cancelled"
)

// transitions maps each status to the statuses it may move into.
var transitions = map[Status][]Status{
	StatusPending:     {StatusOnHold, StatusReadyToShip, StatusCancelled},
	StatusOnHold:      {StatusPending, StatusReadyToShip, StatusCancelled},
	StatusReadyToShip: {StatusShipped, StatusCancelled},
	StatusShipped:     {StatusDelivered},
	StatusDelivered:   {},
	StatusCancelled:   {},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Cancellable reports whether the order can still be cancelled, i.e. it has
// not shipped.
func (s Status) Cancellable() bool {
	return s.CanTransitionTo(StatusCancelled)
}

// cancellableStatuses is the CAS guard list used by the repositories.
var cancellableStatuses = []Status{StatusPending, StatusOnHold, StatusReadyToShip}

// predecessorsOf returns every status allowed to move into next.
func predecessorsOf(next Status) []Status {
	out := make([]Status, 0, 3)
	for s, targets := range transitions {
		for _, t := range targets {
			if t == next {
				out = append(out, s)
			}
		}
	}
	return out
}
